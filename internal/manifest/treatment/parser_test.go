package treatment

import "testing"

const sampleTreatment = `Title: Coffee Origins

Voice: [ElevenLabs / Style: warm female narrator]

Scene 1: [Purpose: hook]
Duration: 5 seconds
Narration: Ever wondered where your coffee comes from?
Visuals: steaming espresso cup on a rustic table
Effects: [fade, zoom]

Scene 2: [Purpose: explain]
Narration: It starts on shaded hillsides near the equator.
Visuals: coffee farm on a misty hillside

Scene 3: [Purpose: cta]
Duration: 10s
Narration: Follow for part two.
`

func sampleHints() Hints {
	return Hints{
		TotalDurationSeconds: 60,
		Language:             "en",
		Platform:             "social",
		AspectRatio:          "9:16",
		Profile:              "educational_explainer",
		UserID:               "u1",
	}
}

func TestParseScenes(t *testing.T) {
	draft := Parse(sampleTreatment, sampleHints())

	if draft.Title != "Coffee Origins" {
		t.Fatalf("Title = %q, want %q", draft.Title, "Coffee Origins")
	}
	if len(draft.Scenes) != 3 {
		t.Fatalf("scene count = %d, want 3", len(draft.Scenes))
	}

	s1 := draft.Scenes[0]
	if s1.Purpose != "hook" {
		t.Fatalf("scene 1 purpose = %q, want %q", s1.Purpose, "hook")
	}
	if s1.DurationSeconds != 5 {
		t.Fatalf("scene 1 duration = %v, want 5", s1.DurationSeconds)
	}
	if s1.Narration != "Ever wondered where your coffee comes from?" {
		t.Fatalf("scene 1 narration = %q", s1.Narration)
	}
	if s1.VisualDescription != "steaming espresso cup on a rustic table" {
		t.Fatalf("scene 1 visuals = %q", s1.VisualDescription)
	}
	if len(s1.Effects) != 2 || s1.Effects[0] != "fade" || s1.Effects[1] != "zoom" {
		t.Fatalf("scene 1 effects = %v, want [fade zoom]", s1.Effects)
	}

	if draft.Scenes[2].DurationSeconds != 10 {
		t.Fatalf("scene 3 duration = %v, want 10", draft.Scenes[2].DurationSeconds)
	}
}

func TestParseDurationWeightForMissingDurations(t *testing.T) {
	draft := Parse(sampleTreatment, sampleHints())

	s2 := draft.Scenes[1]
	if s2.DurationSeconds != 0 {
		t.Fatalf("scene 2 duration = %v, want 0", s2.DurationSeconds)
	}
	if s2.DurationWeight != 1.0 {
		t.Fatalf("scene 2 weight = %v, want 1.0", s2.DurationWeight)
	}
	if draft.Scenes[0].DurationWeight != 0 {
		t.Fatalf("scene 1 weight = %v, want 0", draft.Scenes[0].DurationWeight)
	}
}

func TestParseSplitsWeightAcrossMissingScenes(t *testing.T) {
	text := "Scene 1: [Purpose: a]\nNarration: one\n\nScene 2: [Purpose: b]\nNarration: two\n"
	draft := Parse(text, sampleHints())

	if len(draft.Scenes) != 2 {
		t.Fatalf("scene count = %d, want 2", len(draft.Scenes))
	}
	for i, s := range draft.Scenes {
		if s.DurationWeight != 0.5 {
			t.Fatalf("scene %d weight = %v, want 0.5", i+1, s.DurationWeight)
		}
	}
}

func TestParseVoicePreference(t *testing.T) {
	draft := Parse(sampleTreatment, sampleHints())

	if draft.Voice == nil {
		t.Fatal("Voice = nil, want preference")
	}
	if draft.Voice.Provider != "elevenlabs" {
		t.Fatalf("Voice.Provider = %q, want %q", draft.Voice.Provider, "elevenlabs")
	}
	if draft.Voice.Style != "warm female narrator" {
		t.Fatalf("Voice.Style = %q", draft.Voice.Style)
	}
	if draft.Voice.Gender != "female" {
		t.Fatalf("Voice.Gender = %q, want %q", draft.Voice.Gender, "female")
	}
}

func TestParseInfersMaleGender(t *testing.T) {
	text := "Voice: [Google / Style: deep male documentary]\n\nScene 1: [Purpose: hook]\nNarration: hi\n"
	draft := Parse(text, sampleHints())

	if draft.Voice == nil || draft.Voice.Gender != "male" {
		t.Fatalf("Voice = %+v, want male gender", draft.Voice)
	}
}

func TestParseRenumbersSourceNumbering(t *testing.T) {
	text := "Scene 7: [Purpose: first]\nNarration: a\n\nScene 2: [Purpose: second]\nNarration: b\n"
	draft := Parse(text, sampleHints())

	if len(draft.Scenes) != 2 {
		t.Fatalf("scene count = %d, want 2", len(draft.Scenes))
	}
	m := draft.Manifest()
	if m.Scenes[0].ID != "s1" || m.Scenes[1].ID != "s2" {
		t.Fatalf("scene ids = %q, %q, want s1, s2", m.Scenes[0].ID, m.Scenes[1].ID)
	}
	if m.Scenes[0].Purpose != "first" {
		t.Fatalf("order not preserved: first scene purpose = %q", m.Scenes[0].Purpose)
	}
}

func TestParseNarrationContinuationLines(t *testing.T) {
	text := "Scene 1: [Purpose: hook]\nNarration: line one\nline two\nVisuals: a cup\n"
	draft := Parse(text, sampleHints())

	if draft.Scenes[0].Narration != "line one line two" {
		t.Fatalf("narration = %q, want joined lines", draft.Scenes[0].Narration)
	}
	if draft.Scenes[0].VisualDescription != "a cup" {
		t.Fatalf("visuals = %q, want %q", draft.Scenes[0].VisualDescription, "a cup")
	}
}

func TestParseMalformedInputNeverFails(t *testing.T) {
	for _, input := range []string{"", "   \n\n", "no scenes here", "Scene : broken\nDuration: abc\nEffects: [,]"} {
		draft := Parse(input, Hints{TotalDurationSeconds: 30})
		if draft.Title == "" && len(draft.Scenes) == 0 {
			// Either a title or the parse-incomplete warning must surface.
			if len(draft.Warnings) == 0 {
				t.Fatalf("input %q: no warnings on degraded parse", input)
			}
		}
		for _, s := range draft.Scenes {
			if s.Effects == nil {
				t.Fatalf("input %q: nil effects", input)
			}
		}
	}
}

func TestParseMinutesUnit(t *testing.T) {
	text := "Scene 1: [Purpose: hook]\nDuration: 2 minutes\nNarration: hi\n"
	draft := Parse(text, sampleHints())

	if draft.Scenes[0].DurationSeconds != 120 {
		t.Fatalf("duration = %v, want 120", draft.Scenes[0].DurationSeconds)
	}
}

func TestParseFallbackTitleFromPurpose(t *testing.T) {
	text := "Scene 1: [Purpose: morning routine]\nNarration: hi\n"
	draft := Parse(text, sampleHints())

	if draft.Title != "Morning Routine" {
		t.Fatalf("Title = %q, want %q", draft.Title, "Morning Routine")
	}
}
