package repair

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"clipforge/internal/catalog"
	"clipforge/internal/domain"
)

// Safe defaults for required metadata fields.
const (
	DefaultIntent          = "video"
	DefaultLanguage        = "en"
	DefaultPlatform        = "social"
	DefaultAspectRatio     = "Smart Auto"
	DefaultDurationSeconds = 30.0
)

// Deterministic applies the rule-based repair tier in place: metadata
// defaults, duration-weight resolution, proportional rescaling, structural
// defaults and vocabulary cleanup. It is pure (no external calls), never
// fails, and is idempotent: a second run finds nothing left to change.
func Deterministic(m *domain.ProductionManifest) {
	fillStructural(m)
	fillMetadata(m)
	cleanScenes(m)
	resolveWeights(m)
	rescaleDurations(m)
	alignTimeline(m)
	fillAudio(m)
	fillStyle(m)
}

func fillStructural(m *domain.ProductionManifest) {
	if m.ID == "" {
		m.ID = uuid.NewString()
		m.Warn("manifest id missing, generated a new one")
	}
	if m.SourceRefs == nil {
		m.SourceRefs = []string{}
	}
	if m.Assets == nil {
		m.Assets = map[string]domain.Asset{}
	}
	if m.Jobs == nil {
		m.Jobs = []domain.Job{}
	}
	if m.Warnings == nil {
		m.Warnings = []string{}
	}
	if m.Audio.Music.CueMap == nil {
		m.Audio.Music.CueMap = map[string]string{}
	}
	for k, a := range m.Assets {
		if a.RequiredEdits == nil {
			a.RequiredEdits = []string{}
			m.Assets[k] = a
		}
	}
}

func fillMetadata(m *domain.ProductionManifest) {
	md := &m.Metadata
	fill := func(field *string, value, name string) {
		if strings.TrimSpace(*field) == "" {
			*field = value
			m.Warn(fmt.Sprintf("metadata.%s missing, defaulted to %q", name, value))
		}
	}
	fill(&md.Intent, DefaultIntent, "intent")
	fill(&md.Language, DefaultLanguage, "language")
	fill(&md.Platform, DefaultPlatform, "platform")
	fill(&md.AspectRatio, DefaultAspectRatio, "aspectRatio")
	fill(&md.Profile, catalog.DefaultProfileID, "profile")
	if !catalog.KnownProfile(md.Profile) {
		m.Warn(fmt.Sprintf("metadata.profile %q not in catalog, defaulted to %q", md.Profile, catalog.DefaultProfileID))
		md.Profile = catalog.DefaultProfileID
	}
	if md.DurationSeconds <= 0 {
		md.DurationSeconds = DefaultDurationSeconds
		m.Warn(fmt.Sprintf("metadata.durationSeconds not positive, clamped to %.0fs", DefaultDurationSeconds))
	}
}

// cleanScenes fixes scene ids, drops dangling visual references and strips
// effects outside the allowed vocabulary. Assets are never fabricated here.
func cleanScenes(m *domain.ProductionManifest) {
	renumber := false
	seen := map[string]bool{}
	for _, s := range m.Scenes {
		if s.ID == "" || seen[s.ID] {
			renumber = true
			break
		}
		seen[s.ID] = true
	}
	if renumber {
		for i := range m.Scenes {
			m.Scenes[i].ID = fmt.Sprintf("s%d", i+1)
		}
		m.Warn("scene ids missing or duplicated, renumbered sequentially")
	}

	for i := range m.Scenes {
		scene := &m.Scenes[i]
		if scene.Visuals == nil {
			scene.Visuals = []domain.Visual{}
		}
		if scene.Effects == nil {
			scene.Effects = []string{}
		}

		kept := scene.Visuals[:0]
		for _, v := range scene.Visuals {
			if v.AssetID == "" {
				m.Warn(fmt.Sprintf("scene %s: dropped visual without asset reference", scene.ID))
				continue
			}
			if _, ok := m.Assets[v.AssetID]; !ok {
				m.Warn(fmt.Sprintf("scene %s: dropped visual referencing unknown asset %q", scene.ID, v.AssetID))
				continue
			}
			kept = append(kept, v)
		}
		scene.Visuals = kept

		effects := scene.Effects[:0]
		for _, e := range scene.Effects {
			if catalog.IsAllowedEffect(e) {
				effects = append(effects, e)
			} else {
				m.Warn(fmt.Sprintf("scene %s: removed unknown effect %q", scene.ID, e))
			}
		}
		scene.Effects = effects
	}
}

// resolveWeights converts duration weights into absolute durations by
// splitting whatever the explicitly timed scenes leave of the requested
// total. Weights are cleared afterwards so the pass is idempotent.
func resolveWeights(m *domain.ProductionManifest) {
	var weightSum, explicit float64
	for _, s := range m.Scenes {
		if s.DurationWeight > 0 && s.DurationSeconds <= 0 {
			weightSum += s.DurationWeight
		} else {
			explicit += s.DurationSeconds
		}
	}
	if weightSum <= 0 {
		for i := range m.Scenes {
			m.Scenes[i].DurationWeight = 0
		}
		return
	}

	remaining := m.Metadata.DurationSeconds - explicit
	for i := range m.Scenes {
		s := &m.Scenes[i]
		if s.DurationWeight > 0 && s.DurationSeconds <= 0 {
			if remaining > 0 {
				s.DurationSeconds = roundSec(remaining * s.DurationWeight / weightSum)
			}
			if s.DurationSeconds < domain.MinSceneDuration {
				s.DurationSeconds = domain.MinSceneDuration
			}
		}
		s.DurationWeight = 0
	}
}

// rescaleDurations scales scene durations proportionally so they sum to the
// requested total, with the last scene absorbing the rounding remainder.
func rescaleDurations(m *domain.ProductionManifest) {
	if len(m.Scenes) == 0 {
		return
	}
	total := m.Metadata.DurationSeconds
	sum := m.SceneDurationSum()
	if math.Abs(sum-total) <= domain.DurationTolerance {
		return
	}

	if sum <= 0 {
		share := roundSec(total / float64(len(m.Scenes)))
		for i := range m.Scenes {
			m.Scenes[i].DurationSeconds = share
		}
	} else {
		factor := total / sum
		for i := range m.Scenes {
			scaled := roundSec(m.Scenes[i].DurationSeconds * factor)
			if scaled < domain.MinSceneDuration {
				scaled = domain.MinSceneDuration
			}
			m.Scenes[i].DurationSeconds = scaled
		}
	}

	var head float64
	for _, s := range m.Scenes[:len(m.Scenes)-1] {
		head += s.DurationSeconds
	}
	last := roundSec(total - head)
	if last < domain.MinSceneDuration {
		last = domain.MinSceneDuration
	}
	m.Scenes[len(m.Scenes)-1].DurationSeconds = last
	m.Warn(fmt.Sprintf("scene durations rescaled to match requested total of %.2fs", total))
}

// alignTimeline recomputes startAtSec cumulatively so the timeline has no
// gaps or overlaps.
func alignTimeline(m *domain.ProductionManifest) {
	var cursor float64
	for i := range m.Scenes {
		m.Scenes[i].StartAtSec = roundSec(cursor)
		cursor += m.Scenes[i].DurationSeconds
	}
}

func fillAudio(m *domain.ProductionManifest) {
	tts := &m.Audio.TTSDefaults
	if tts.Language == "" {
		tts.Language = m.Metadata.Language
	}
	if tts.Provider == "" || tts.Voice == "" {
		v := catalog.DefaultVoice(tts.Language)
		if tts.Provider == "" {
			tts.Provider = v.Provider
		}
		if tts.Voice == "" {
			tts.Voice = v.VoiceID
		}
		if tts.Gender == "" {
			tts.Gender = v.Gender
		}
		m.Warn("audio.ttsDefaults incomplete, filled from voice catalog")
	}
}

func fillStyle(m *domain.ProductionManifest) {
	profile := catalog.ProfileByID(m.Metadata.Profile)
	if m.Visuals.DefaultStyle == "" {
		m.Visuals.DefaultStyle = profile.DefaultStyle
	}
	if m.Visuals.ColorPalette == "" {
		m.Visuals.ColorPalette = profile.ColorPalette
	}
	if len(m.Effects.AllowedTransitions) == 0 {
		m.Effects.AllowedTransitions = append([]string{}, profile.AllowedTransitions...)
	}
	if m.Effects.DefaultTransition == "" {
		m.Effects.DefaultTransition = profile.DefaultTransition
	}
	if m.Consistency.CharacterFaces == "" {
		m.Consistency.CharacterFaces = "none"
	}
	if m.Consistency.VoiceTone == "" {
		m.Consistency.VoiceTone = profile.VoiceTone
	}
}

func roundSec(v float64) float64 {
	return math.Round(v*100) / 100
}
