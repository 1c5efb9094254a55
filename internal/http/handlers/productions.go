package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"clipforge/internal/domain"
	"clipforge/internal/manifest/treatment"
)

type createProductionRequest struct {
	Treatment string `json:"treatment"`
	Hints     struct {
		TotalDurationSeconds float64 `json:"totalDurationSeconds"`
		Profile              string  `json:"profile"`
		Language             string  `json:"language"`
		AspectRatio          string  `json:"aspectRatio"`
		Platform             string  `json:"platform"`
		Tone                 string  `json:"tone"`
		UserID               string  `json:"userId"`
	} `json:"hints"`
}

// CreateProduction compiles a treatment into a validated manifest with its
// job graph, persists it and returns it together with any repair warnings.
func (a *App) CreateProduction(w http.ResponseWriter, r *http.Request) {
	var req createProductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Treatment) == "" {
		a.jsonError(w, http.StatusBadRequest, "treatment is required")
		return
	}
	if req.Hints.TotalDurationSeconds <= 0 {
		a.jsonError(w, http.StatusBadRequest, "hints.totalDurationSeconds must be positive")
		return
	}

	result, err := a.Compiler.Compile(r.Context(), req.Treatment, treatment.Hints{
		TotalDurationSeconds: req.Hints.TotalDurationSeconds,
		Profile:              req.Hints.Profile,
		Language:             req.Hints.Language,
		AspectRatio:          req.Hints.AspectRatio,
		Platform:             req.Hints.Platform,
		Tone:                 req.Hints.Tone,
		UserID:               req.Hints.UserID,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("productions: compile failed")
		a.jsonError(w, http.StatusInternalServerError, "failed to compile production")
		return
	}

	if a.Manifests != nil {
		if err := a.Manifests.Create(r.Context(), result.Manifest, string(result.State)); err != nil {
			a.Logger.Error().Err(err).Str("manifest", result.Manifest.ID).Msg("productions: persist failed")
			a.jsonError(w, http.StatusInternalServerError, "failed to persist manifest")
			return
		}
	}

	a.json(w, http.StatusCreated, result)
}

// ListProductions returns a user's recent manifests, newest first.
func (a *App) ListProductions(w http.ResponseWriter, r *http.Request) {
	if a.Manifests == nil {
		a.jsonError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		a.jsonError(w, http.StatusBadRequest, "userId is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	manifests, err := a.Manifests.ListByUser(r.Context(), userID, limit)
	if err != nil {
		a.Logger.Error().Err(err).Str("user", userID).Msg("productions: list failed")
		a.jsonError(w, http.StatusInternalServerError, "failed to list manifests")
		return
	}
	if manifests == nil {
		manifests = []domain.ProductionManifest{}
	}
	a.json(w, http.StatusOK, map[string]any{"productions": manifests})
}

// GetProduction returns one stored manifest by id.
func (a *App) GetProduction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if a.Manifests == nil {
		a.jsonError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}
	m, err := a.Manifests.GetByID(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		a.jsonError(w, http.StatusNotFound, "manifest not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("manifest", id).Msg("productions: load failed")
		a.jsonError(w, http.StatusInternalServerError, "failed to load manifest")
		return
	}
	a.json(w, http.StatusOK, m)
}
