package repair

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"clipforge/internal/domain"
	"clipforge/internal/manifest/schema"
	"clipforge/internal/providers/llm"
)

// Completer is the text-completion function the LLM tier depends on. The
// returned text is untrusted and must survive strict JSON parsing before it
// is considered at all.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts llm.Options) (string, error)
}

const (
	llmRepairTimeout     = 10 * time.Second
	llmRepairTemperature = 0.1
	llmRepairMaxTokens   = 8192
)

// Context carries treatment-derived references handed to the LLM tier so the
// model repairs toward the author's intent instead of inventing content.
type Context struct {
	Treatment string
	Title     string
	Tone      string
}

func repairWithLLM(ctx context.Context, completer Completer, m *domain.ProductionManifest, errs []schema.ValidationError, rc Context, timeout time.Duration) (*domain.ProductionManifest, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal manifest: %v", domain.ErrLLMRepairFailed, err)
	}

	if timeout <= 0 {
		timeout = llmRepairTimeout
	}
	text, err := completer.Complete(ctx, buildRepairPrompt(raw, errs, rc), llm.Options{
		Temperature: llmRepairTemperature,
		MaxTokens:   llmRepairMaxTokens,
		Timeout:     timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLLMRepairFailed, err)
	}

	fragment := llm.ExtractJSONFragment(text)
	if fragment == "" {
		return nil, fmt.Errorf("%w: response contained no JSON", domain.ErrLLMRepairFailed)
	}

	var repaired domain.ProductionManifest
	dec := json.NewDecoder(strings.NewReader(fragment))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&repaired); err != nil {
		return nil, fmt.Errorf("%w: response is not a manifest: %v", domain.ErrLLMRepairFailed, err)
	}

	// Identity and provenance are never the model's to change.
	repaired.ID = m.ID
	repaired.UserID = m.UserID
	repaired.SourceRefs = m.SourceRefs
	repaired.Warnings = mergeWarnings(m.Warnings, repaired.Warnings)

	if res := schema.Validate(&repaired); !res.Valid {
		return nil, fmt.Errorf("%w: repaired manifest still invalid (%d errors)", domain.ErrLLMRepairFailed, len(res.Errors))
	}
	return &repaired, nil
}

func buildRepairPrompt(manifestJSON []byte, errs []schema.ValidationError, rc Context) string {
	sb := &strings.Builder{}
	sb.WriteString("You repair video production manifests. Respond strictly with the corrected manifest as a single JSON object, no commentary.\n\n")
	sb.WriteString("JSON Schema the manifest must satisfy:\n")
	sb.WriteString(schema.Document())
	sb.WriteString("\n\nValidation errors to fix:\n")
	for _, e := range errs {
		fmt.Fprintf(sb, "- %s: %s\n", e.Path, e.Message)
	}
	if rc.Title != "" {
		fmt.Fprintf(sb, "\nProduction title: %s\n", rc.Title)
	}
	if rc.Tone != "" {
		fmt.Fprintf(sb, "\nDesired tone: %s\n", rc.Tone)
	}
	if rc.Treatment != "" {
		fmt.Fprintf(sb, "\nOriginal treatment for reference:\n%s\n", rc.Treatment)
	}
	sb.WriteString("\nInvalid manifest:\n")
	sb.Write(manifestJSON)
	sb.WriteString("\n\nKeep scene content as close to the original as the schema allows. Scene durations must sum to metadata.durationSeconds.")
	return sb.String()
}

func mergeWarnings(base, extra []string) []string {
	out := append([]string{}, base...)
	seen := make(map[string]bool, len(base))
	for _, w := range base {
		seen[w] = true
	}
	for _, w := range extra {
		if !seen[w] {
			out = append(out, w)
			seen[w] = true
		}
	}
	return out
}
