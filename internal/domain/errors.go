package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrParseIncomplete marks treatment sections that degraded to defaults.
	// It is informational; the parser never fails outright.
	ErrParseIncomplete = errors.New("treatment parse incomplete")

	// ErrLLMRepairFailed covers timeouts, non-JSON responses and repairs
	// that still fail validation. The pipeline recovers from it by falling
	// through to the minimal fallback tier.
	ErrLLMRepairFailed = errors.New("llm repair failed")

	// ErrRepairExhausted means every repair tier ran and the fallback
	// manifest was used. Surfaced as a warning, never as an error.
	ErrRepairExhausted = errors.New("repair tiers exhausted")

	// ErrGraphIntegrity flags a cycle or dangling reference in a decomposed
	// job graph. Decomposition is pure, so this is a logic defect and is
	// treated as fatal.
	ErrGraphIntegrity = errors.New("job graph integrity violation")
)
