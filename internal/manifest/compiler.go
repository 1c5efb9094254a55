// Package manifest exposes the full treatment-to-manifest compilation flow:
// deterministic parsing, repair to schema validity, and job decomposition.
package manifest

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"clipforge/internal/catalog"
	"clipforge/internal/domain"
	"clipforge/internal/manifest/decompose"
	"clipforge/internal/manifest/repair"
	"clipforge/internal/manifest/schema"
	"clipforge/internal/manifest/treatment"
)

// CompilerOptions configures a Compiler.
type CompilerOptions struct {
	Pipeline          *repair.Pipeline
	RenderCallbackURL string
	Logger            *zerolog.Logger
}

// Compiler turns treatments into validated manifests with job graphs.
type Compiler struct {
	pipeline    *repair.Pipeline
	callbackURL string
	logger      zerolog.Logger
}

// Result is what a compilation hands back to the caller: the valid manifest
// (jobs included), the repair tier that produced it, and a static price
// estimate for the job graph.
type Result struct {
	Manifest           *domain.ProductionManifest `json:"manifest"`
	State              repair.State               `json:"repairState"`
	EstimatedCostCents int                        `json:"estimatedCostCents"`
}

// NewCompiler constructs a Compiler. A nil pipeline gets a default one with
// no LLM tier.
func NewCompiler(opts CompilerOptions) *Compiler {
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	pipeline := opts.Pipeline
	if pipeline == nil {
		pipeline = repair.New(repair.Options{})
	}
	return &Compiler{
		pipeline:    pipeline,
		callbackURL: opts.RenderCallbackURL,
		logger:      logger,
	}
}

// Compile parses the treatment, repairs the resulting manifest to validity,
// decomposes it into a job graph and re-validates the whole. The returned
// manifest always satisfies the schema and every structural invariant.
func (c *Compiler) Compile(ctx context.Context, treatmentText string, hints treatment.Hints) (*Result, error) {
	draft := treatment.Parse(treatmentText, hints)
	m := draft.Manifest()
	if draft.Voice != nil {
		voice := catalog.MatchVoice(draft.Voice.Provider, draft.Voice.Style, draft.Voice.Gender)
		m.Audio.TTSDefaults = domain.TTSDefaults{
			Provider: voice.Provider,
			Voice:    voice.VoiceID,
			Gender:   voice.Gender,
			Language: m.Metadata.Language,
		}
	}

	repaired, state, err := c.pipeline.Run(ctx, m, repair.Context{
		Treatment: treatmentText,
		Title:     draft.Title,
		Tone:      draft.Tone,
	})
	if err != nil {
		return nil, fmt.Errorf("repair manifest: %w", err)
	}

	jobs := decompose.Jobs(repaired, c.callbackURL)
	if err := decompose.VerifyGraph(jobs); err != nil {
		return nil, err
	}
	repaired.Jobs = jobs

	if res := schema.Validate(repaired); !res.Valid {
		return nil, fmt.Errorf("decomposed manifest failed validation: %s", res.Errors[0].Error())
	}

	counts := map[string]int{}
	for _, j := range jobs {
		counts[string(j.Type)]++
	}
	cost := catalog.EstimateCents(counts)

	c.logger.Info().
		Str("manifest", repaired.ID).
		Str("state", string(state)).
		Int("scenes", len(repaired.Scenes)).
		Int("jobs", len(repaired.Jobs)).
		Int("estimatedCostCents", cost).
		Msg("compile: manifest ready")

	return &Result{Manifest: repaired, State: state, EstimatedCostCents: cost}, nil
}
