// Package decompose turns a validated manifest into the job graph external
// executors consume. The graph shape is a pure function of the manifest; only
// the generated job ids vary between runs.
package decompose

import (
	"fmt"

	"github.com/google/uuid"

	"clipforge/internal/domain"
)

// Jobs emits one TTS job per narrated scene, one asset-generation job per
// generated visual, and exactly one render job depending on all of them. It
// is safe to re-run against repaired or fallback manifests.
func Jobs(m *domain.ProductionManifest, callbackURL string) []domain.Job {
	var jobs []domain.Job
	var contentIDs []string

	for _, scene := range m.Scenes {
		if scene.Narration == "" {
			continue
		}
		job := domain.Job{
			ID:       "tts-" + uuid.NewString(),
			Type:     domain.JobTypeTTS,
			Priority: domain.PriorityContent,
			Payload: map[string]any{
				"sceneId":  scene.ID,
				"text":     scene.Narration,
				"provider": m.Audio.TTSDefaults.Provider,
				"voice":    m.Audio.TTSDefaults.Voice,
				"language": m.Audio.TTSDefaults.Language,
			},
			DependsOn:   []string{},
			RetryPolicy: domain.ContentRetryPolicy(),
		}
		jobs = append(jobs, job)
		contentIDs = append(contentIDs, job.ID)
	}

	for _, scene := range m.Scenes {
		for _, visual := range scene.Visuals {
			if visual.Source != domain.VisualSourceGenerated {
				continue
			}
			job := domain.Job{
				ID:       "img-" + uuid.NewString(),
				Type:     domain.JobTypeImage,
				Priority: domain.PriorityContent,
				Payload: map[string]any{
					"resultAssetId": visual.AssetID,
					"prompt":        generationPrompt(m, scene, visual),
					"style":         m.Visuals.DefaultStyle,
					"aspectRatio":   m.Metadata.AspectRatio,
					"quality":       "standard",
				},
				DependsOn:   []string{},
				RetryPolicy: domain.ContentRetryPolicy(),
			}
			jobs = append(jobs, job)
			contentIDs = append(contentIDs, job.ID)
		}
	}

	render := domain.Job{
		ID:       "render-" + uuid.NewString(),
		Type:     domain.JobTypeRender,
		Priority: domain.PriorityRender,
		Payload: map[string]any{
			"manifestId":  m.ID,
			"renderSpec":  renderSpec(m),
			"callbackUrl": callbackURL,
		},
		DependsOn:   append([]string{}, contentIDs...),
		RetryPolicy: domain.RenderRetryPolicy(),
	}
	jobs = append(jobs, render)

	return jobs
}

func generationPrompt(m *domain.ProductionManifest, scene domain.Scene, visual domain.Visual) string {
	prompt := visual.Prompt
	if prompt == "" {
		prompt = scene.Purpose
	}
	if m.Visuals.DefaultStyle != "" {
		prompt = fmt.Sprintf("%s, %s", prompt, m.Visuals.DefaultStyle)
	}
	if m.Visuals.ColorPalette != "" {
		prompt = fmt.Sprintf("%s, %s palette", prompt, m.Visuals.ColorPalette)
	}
	return prompt
}

func renderSpec(m *domain.ProductionManifest) map[string]any {
	sceneOrder := make([]string, 0, len(m.Scenes))
	for _, s := range m.Scenes {
		sceneOrder = append(sceneOrder, s.ID)
	}
	return map[string]any{
		"sceneOrder":        sceneOrder,
		"durationSeconds":   m.Metadata.DurationSeconds,
		"aspectRatio":       m.Metadata.AspectRatio,
		"platform":          m.Metadata.Platform,
		"defaultTransition": m.Effects.DefaultTransition,
	}
}
