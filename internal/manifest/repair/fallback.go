package repair

import (
	"github.com/google/uuid"

	"clipforge/internal/catalog"
	"clipforge/internal/domain"
	"clipforge/internal/manifest/decompose"
)

// FallbackWarning is recorded on every minimal fallback manifest.
const FallbackWarning = "Used minimal fallback manifest due to validation failures"

const fallbackAssetID = "asset_fallback_bg"

// Minimal synthesizes the guaranteed-valid degraded manifest: a single scene
// spanning the requested duration, one generated background asset, and the
// job pair to produce and render it. It keeps the broken manifest's identity
// and warnings but none of its content, and makes no external calls.
func Minimal(m *domain.ProductionManifest) *domain.ProductionManifest {
	id := m.ID
	if id == "" {
		id = uuid.NewString()
	}

	fb := &domain.ProductionManifest{
		ID:         id,
		UserID:     m.UserID,
		SourceRefs: append([]string{}, m.SourceRefs...),
		Metadata:   m.Metadata,
		Assets:     map[string]domain.Asset{},
		Warnings:   append(append([]string{}, m.Warnings...), FallbackWarning),
	}
	// Normalize metadata without touching the original manifest.
	fillMetadata(fb)

	fb.Scenes = []domain.Scene{{
		ID:              "s1",
		StartAtSec:      0,
		DurationSeconds: fb.Metadata.DurationSeconds,
		Purpose:         "full production",
		Narration:       "",
		Visuals: []domain.Visual{{
			Type:    "image",
			AssetID: fallbackAssetID,
			Prompt:  "abstract background matching the production mood",
			Source:  domain.VisualSourceGenerated,
		}},
		Effects: []string{},
	}}
	fb.Assets[fallbackAssetID] = domain.Asset{
		ID:            fallbackAssetID,
		Source:        domain.VisualSourceGenerated,
		Role:          "background",
		Status:        domain.AssetStatusPending,
		RequiredEdits: []string{},
	}

	voice := catalog.DefaultVoice(fb.Metadata.Language)
	fb.Audio = domain.Audio{
		TTSDefaults: domain.TTSDefaults{
			Provider: voice.Provider,
			Voice:    voice.VoiceID,
			Gender:   voice.Gender,
			Language: fb.Metadata.Language,
		},
		Music: domain.Music{CueMap: map[string]string{}},
	}

	profile := catalog.ProfileByID(fb.Metadata.Profile)
	fb.Visuals = domain.VisualStyle{DefaultStyle: profile.DefaultStyle, ColorPalette: profile.ColorPalette}
	fb.Effects = domain.EffectRules{
		AllowedTransitions: append([]string{}, profile.AllowedTransitions...),
		DefaultTransition:  profile.DefaultTransition,
	}
	fb.Consistency = domain.Consistency{CharacterFaces: "none", VoiceTone: profile.VoiceTone}

	fb.Jobs = decompose.Jobs(fb, "")
	return fb
}
