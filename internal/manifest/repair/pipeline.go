// Package repair makes broken manifests valid. It runs three tiers in a fixed
// order (deterministic fixups, bounded LLM repair, minimal fallback) and
// always returns a schema-valid manifest. Every degradation along the way is
// recorded on the manifest's warnings.
package repair

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"clipforge/internal/domain"
	"clipforge/internal/manifest/schema"
)

// State names the repair tiers. Transitions only ever move forward:
// Validated -> DeterministicRepairApplied -> LLMRepairApplied ->
// MinimalFallback.
type State string

const (
	StateValidated                  State = "validated"
	StateDeterministicRepairApplied State = "deterministic_repair_applied"
	StateLLMRepairApplied           State = "llm_repair_applied"
	StateMinimalFallback            State = "minimal_fallback"
)

// Next returns the state the pipeline moves to when the current tier did not
// produce a valid manifest. MinimalFallback is terminal.
func Next(s State) State {
	switch s {
	case StateValidated:
		return StateDeterministicRepairApplied
	case StateDeterministicRepairApplied:
		return StateLLMRepairApplied
	default:
		return StateMinimalFallback
	}
}

// Options configures a Pipeline.
type Options struct {
	// Completer enables the LLM tier; nil skips straight from deterministic
	// repair to the minimal fallback.
	Completer  Completer
	LLMTimeout time.Duration
	Logger     *zerolog.Logger
}

// Pipeline orchestrates the repair tiers over a single manifest.
type Pipeline struct {
	completer  Completer
	llmTimeout time.Duration
	logger     zerolog.Logger
}

// New constructs a repair pipeline.
func New(opts Options) *Pipeline {
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	timeout := opts.LLMTimeout
	if timeout <= 0 {
		timeout = llmRepairTimeout
	}
	return &Pipeline{
		completer:  opts.Completer,
		llmTimeout: timeout,
		logger:     logger,
	}
}

// Run repairs the manifest in place, tier by tier, until it validates. The
// returned manifest is always schema-valid; the only error condition is the
// minimal fallback itself failing validation, which indicates a programming
// error rather than bad input.
func (p *Pipeline) Run(ctx context.Context, m *domain.ProductionManifest, rc Context) (*domain.ProductionManifest, State, error) {
	state := StateValidated
	if res := schema.Validate(m); res.Valid {
		return m, state, nil
	}

	state = Next(state)
	Deterministic(m)
	res := schema.Validate(m)
	if res.Valid {
		p.logger.Debug().Str("manifest", m.ID).Msg("repair: deterministic tier produced a valid manifest")
		return m, state, nil
	}

	state = Next(state)
	if p.completer != nil {
		repaired, err := repairWithLLM(ctx, p.completer, m, res.Errors, rc, p.llmTimeout)
		if err == nil {
			repaired.Warn("manifest repaired by language model")
			p.logger.Debug().Str("manifest", repaired.ID).Msg("repair: llm tier produced a valid manifest")
			return repaired, state, nil
		}
		p.logger.Warn().Err(err).Str("manifest", m.ID).Msg("repair: llm tier failed, falling back")
		m.Warn("llm repair failed, falling back to minimal manifest")
	}

	state = Next(state)
	fb := Minimal(m)
	if fbRes := schema.Validate(fb); !fbRes.Valid {
		return nil, state, fmt.Errorf("minimal fallback manifest failed validation: %s", fbRes.Errors[0].Error())
	}
	p.logger.Warn().Str("manifest", fb.ID).Msg("repair: using minimal fallback manifest")
	return fb, state, nil
}
