package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// VoicePreference is a narration voice hint extracted from the treatment.
type VoicePreference struct {
	Provider string `json:"provider"`
	Style    string `json:"style"`
	Gender   string `json:"gender"`
}

// DraftScene is a scene as the treatment parser saw it, before any repair.
// Exactly one of DurationSeconds / DurationWeight is meaningful: scenes with
// no explicit duration carry a normalized weight instead.
type DraftScene struct {
	Purpose           string   `json:"purpose"`
	Narration         string   `json:"narration"`
	VisualDescription string   `json:"visualDescription"`
	Effects           []string `json:"effects"`
	DurationSeconds   float64  `json:"durationSeconds"`
	DurationWeight    float64  `json:"durationWeight"`
}

// DraftManifest is the unvalidated output of the treatment parser. Keeping it
// a distinct type from ProductionManifest prevents pre-repair data from being
// passed where validated data is expected.
type DraftManifest struct {
	Title                string           `json:"title"`
	UserID               string           `json:"userId"`
	Intent               string           `json:"intent"`
	Language             string           `json:"language"`
	Platform             string           `json:"platform"`
	AspectRatio          string           `json:"aspectRatio"`
	Profile              string           `json:"profile"`
	Tone                 string           `json:"tone"`
	TotalDurationSeconds float64          `json:"totalDurationSeconds"`
	Scenes               []DraftScene     `json:"scenes"`
	Voice                *VoicePreference `json:"voice,omitempty"`
	Warnings             []string         `json:"warnings"`
}

// Manifest expands the draft into a ProductionManifest candidate. The result
// is deliberately incomplete where the treatment was silent; the repair
// pipeline owns filling the gaps and must run before the manifest is used.
func (d DraftManifest) Manifest() *ProductionManifest {
	m := &ProductionManifest{
		ID:         uuid.NewString(),
		UserID:     d.UserID,
		SourceRefs: []string{},
		Metadata: Metadata{
			Intent:          d.Intent,
			DurationSeconds: d.TotalDurationSeconds,
			AspectRatio:     d.AspectRatio,
			Platform:        d.Platform,
			Language:        d.Language,
			Profile:         d.Profile,
		},
		Assets:   map[string]Asset{},
		Jobs:     []Job{},
		Warnings: append([]string{}, d.Warnings...),
	}

	for i, ds := range d.Scenes {
		scene := Scene{
			ID:              fmt.Sprintf("s%d", i+1),
			DurationSeconds: ds.DurationSeconds,
			DurationWeight:  ds.DurationWeight,
			Purpose:         ds.Purpose,
			Narration:       ds.Narration,
			Visuals:         []Visual{},
			Effects:         append([]string{}, ds.Effects...),
		}
		if ds.VisualDescription != "" {
			assetID := fmt.Sprintf("asset_%s_1", scene.ID)
			scene.Visuals = append(scene.Visuals, Visual{
				Type:    "image",
				AssetID: assetID,
				Prompt:  ds.VisualDescription,
				Source:  VisualSourceGenerated,
			})
			m.Assets[assetID] = Asset{
				ID:            assetID,
				Source:        VisualSourceGenerated,
				Role:          "scene_visual",
				Status:        AssetStatusPending,
				RequiredEdits: []string{},
			}
		}
		m.Scenes = append(m.Scenes, scene)
	}

	return m
}
