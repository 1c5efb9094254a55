package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"clipforge/internal/domain"
	"clipforge/internal/infra"
	"clipforge/internal/manifest"
	"clipforge/internal/providers/tts"
)

// Synthesizer executes a tts_generate job payload against the external
// speech service. It is optional; without it voice preview returns 503.
type Synthesizer interface {
	Synthesize(ctx context.Context, payload map[string]any) (*tts.Result, error)
}

// App bundles the dependencies the HTTP handlers need.
type App struct {
	Logger    infra.Logger
	Compiler  *manifest.Compiler
	Manifests domain.ManifestRepository
	TTS       Synthesizer
}

// NewApp constructs the handler container.
func NewApp(logger infra.Logger, compiler *manifest.Compiler, manifests domain.ManifestRepository, synth Synthesizer) *App {
	return &App{Logger: logger, Compiler: compiler, Manifests: manifests, TTS: synth}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) jsonError(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"error": msg})
}
