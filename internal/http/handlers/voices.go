package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type voicePreviewRequest struct {
	SceneID  string `json:"sceneId"`
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Voice    string `json:"voice"`
	Language string `json:"language"`
}

// VoicePreview synthesizes a single narration line so users can audition a
// voice before compiling a full production. The request mirrors the
// tts_generate job payload surface.
func (a *App) VoicePreview(w http.ResponseWriter, r *http.Request) {
	if a.TTS == nil {
		a.jsonError(w, http.StatusServiceUnavailable, "voice preview not configured")
		return
	}

	var req voicePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		a.jsonError(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := a.TTS.Synthesize(r.Context(), map[string]any{
		"sceneId":  req.SceneID,
		"text":     req.Text,
		"provider": req.Provider,
		"voice":    req.Voice,
		"language": req.Language,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("voices: preview synthesis failed")
		a.jsonError(w, http.StatusBadGateway, "synthesis failed")
		return
	}
	a.json(w, http.StatusOK, result)
}
