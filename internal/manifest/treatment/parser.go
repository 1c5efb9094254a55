// Package treatment turns loosely structured scene-plan text into a draft
// manifest. Parsing is deterministic and total: malformed input degrades to
// defaults, it never fails. Schema validation happens later, in repair.
package treatment

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"clipforge/internal/domain"
)

// Hints carries the numeric and contextual inputs that accompany a treatment.
type Hints struct {
	TotalDurationSeconds float64
	Profile              string
	Language             string
	AspectRatio          string
	Platform             string
	Tone                 string
	UserID               string
}

var (
	sceneHeadRe = regexp.MustCompile(`(?i)^\s*(?:#+\s*)?scene\s+(\d+)\s*:?\s*(.*)$`)
	purposeRe   = regexp.MustCompile(`(?i)\[\s*purpose\s*:\s*([^\]]+)\]`)
	fieldRe     = regexp.MustCompile(`(?i)^\s*(duration|narration|visuals|effects)\s*[:=]\s*(.*)$`)
	voiceRe     = regexp.MustCompile(`(?im)voice\s*:\s*\[?\s*([A-Za-z0-9_\- ]+?)\s*/\s*style\s*:\s*([^\]\r\n]+?)\]?\s*$`)
	durationRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([A-Za-z]*)`)
)

// Parse scans the treatment text and returns a draft manifest. Scene ids are
// assigned sequentially in order of appearance regardless of the numbering in
// the source text.
func Parse(treatment string, hints Hints) domain.DraftManifest {
	draft := domain.DraftManifest{
		UserID:               hints.UserID,
		Intent:               "video",
		Language:             hints.Language,
		Platform:             hints.Platform,
		AspectRatio:          hints.AspectRatio,
		Profile:              hints.Profile,
		Tone:                 hints.Tone,
		TotalDurationSeconds: hints.TotalDurationSeconds,
		Warnings:             []string{},
	}

	lines := strings.Split(strings.ReplaceAll(treatment, "\r\n", "\n"), "\n")

	var current *domain.DraftScene
	var currentField string
	flush := func() {
		if current != nil {
			draft.Scenes = append(draft.Scenes, *current)
		}
		current = nil
		currentField = ""
	}

	for _, line := range lines {
		if m := sceneHeadRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &domain.DraftScene{Effects: []string{}}
			rest := m[2]
			if pm := purposeRe.FindStringSubmatch(rest); pm != nil {
				current.Purpose = strings.TrimSpace(pm[1])
			} else if trimmed := strings.TrimSpace(rest); trimmed != "" {
				current.Purpose = trimmed
			}
			continue
		}

		if draft.Title == "" && current == nil {
			if t := titleFromLine(line); t != "" {
				draft.Title = t
				continue
			}
		}

		if current == nil {
			continue
		}

		if fm := fieldRe.FindStringSubmatch(line); fm != nil {
			key := strings.ToLower(fm[1])
			value := strings.TrimSpace(fm[2])
			currentField = key
			switch key {
			case "duration":
				if secs, ok := parseDurationValue(value); ok {
					current.DurationSeconds = secs
				}
			case "narration":
				current.Narration = value
			case "visuals":
				current.VisualDescription = value
			case "effects":
				current.Effects = parseEffects(value)
			}
			continue
		}

		// Continuation lines extend the narration or visuals block.
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			switch currentField {
			case "narration":
				current.Narration = joinText(current.Narration, trimmed)
			case "visuals":
				current.VisualDescription = joinText(current.VisualDescription, trimmed)
			}
		}
	}
	flush()

	if vm := voiceRe.FindStringSubmatch(treatment); vm != nil {
		style := strings.TrimSpace(vm[2])
		draft.Voice = &domain.VoicePreference{
			Provider: strings.ToLower(strings.TrimSpace(vm[1])),
			Style:    style,
			Gender:   inferGender(style),
		}
	}

	normalizeWeights(&draft)

	if len(draft.Scenes) == 0 {
		draft.Warnings = append(draft.Warnings, "treatment parse incomplete: no scene headings found")
	}
	if draft.Title == "" {
		draft.Title = fallbackTitle(draft)
		draft.Warnings = append(draft.Warnings, "treatment parse incomplete: no title line found")
	}

	return draft
}

func titleFromLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	trimmed = strings.TrimLeft(trimmed, "# ")
	if idx := strings.Index(strings.ToLower(trimmed), "title:"); idx == 0 {
		trimmed = strings.TrimSpace(trimmed[len("title:"):])
	}
	// A stray field line before the first scene is not a title.
	if fieldRe.MatchString(trimmed) || voiceRe.MatchString(trimmed) {
		return ""
	}
	return trimmed
}

func fallbackTitle(draft domain.DraftManifest) string {
	caser := cases.Title(language.Und)
	if len(draft.Scenes) > 0 && draft.Scenes[0].Purpose != "" {
		return caser.String(draft.Scenes[0].Purpose)
	}
	return "Untitled Production"
}

func parseDurationValue(value string) (float64, bool) {
	m := durationRe.FindStringSubmatch(value)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	unit := strings.ToLower(m[2])
	switch {
	case unit == "" || strings.HasPrefix(unit, "s"):
		return n, true
	case strings.HasPrefix(unit, "m"):
		return n * 60, true
	default:
		return n, true
	}
}

func parseEffects(value string) []string {
	value = strings.Trim(strings.TrimSpace(value), "[]")
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	effects := make([]string, 0, len(parts))
	for _, p := range parts {
		if e := strings.ToLower(strings.TrimSpace(p)); e != "" {
			effects = append(effects, e)
		}
	}
	return effects
}

// inferGender checks "female" before "male" since the former contains the
// latter as a substring.
func inferGender(style string) string {
	lower := strings.ToLower(style)
	if strings.Contains(lower, "female") {
		return "female"
	}
	if strings.Contains(lower, "male") {
		return "male"
	}
	return ""
}

// normalizeWeights assigns each duration-less scene an equal share of a unit
// weight so repair can distribute the requested total proportionally.
func normalizeWeights(draft *domain.DraftManifest) {
	missing := 0
	for _, s := range draft.Scenes {
		if s.DurationSeconds <= 0 {
			missing++
		}
	}
	if missing == 0 {
		return
	}
	weight := 1.0 / float64(missing)
	for i := range draft.Scenes {
		if draft.Scenes[i].DurationSeconds <= 0 {
			draft.Scenes[i].DurationWeight = weight
		}
	}
}

func joinText(base, next string) string {
	if base == "" {
		return next
	}
	return base + " " + next
}
