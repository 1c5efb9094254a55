package repair

import (
	"encoding/json"
	"testing"

	"clipforge/internal/catalog"
	"clipforge/internal/domain"
	"clipforge/internal/manifest/schema"
)

func draftedManifest() *domain.ProductionManifest {
	return &domain.ProductionManifest{
		ID:     "man-1",
		UserID: "u1",
		Metadata: domain.Metadata{
			Intent: "video", DurationSeconds: 60, AspectRatio: "9:16",
			Platform: "social", Language: "en", Profile: "educational_explainer",
		},
		Scenes: []domain.Scene{
			{ID: "s1", DurationSeconds: 30, Purpose: "hook", Narration: "a", Visuals: []domain.Visual{}, Effects: []string{}},
			{ID: "s2", DurationSeconds: 25, Purpose: "explain", Narration: "b", Visuals: []domain.Visual{}, Effects: []string{}},
			{ID: "s3", DurationSeconds: 15, Purpose: "cta", Narration: "c", Visuals: []domain.Visual{}, Effects: []string{}},
		},
	}
}

func TestDeterministicRescalesDurationsProportionally(t *testing.T) {
	m := draftedManifest() // 30+25+15 = 70s against a requested 60s

	Deterministic(m)

	want := []float64{25.71, 21.43, 12.86}
	for i, w := range want {
		if m.Scenes[i].DurationSeconds != w {
			t.Fatalf("scene %d duration = %v, want %v", i+1, m.Scenes[i].DurationSeconds, w)
		}
	}
	if sum := m.SceneDurationSum(); sum != 60 {
		t.Fatalf("duration sum = %v, want 60", sum)
	}
	if m.Scenes[1].StartAtSec != 25.71 || m.Scenes[2].StartAtSec != 47.14 {
		t.Fatalf("timeline not aligned: %v, %v", m.Scenes[1].StartAtSec, m.Scenes[2].StartAtSec)
	}
}

func TestDeterministicFillsMissingMetadata(t *testing.T) {
	m := draftedManifest()
	m.Metadata.Language = ""
	m.Metadata.Intent = ""

	Deterministic(m)

	if m.Metadata.Language != DefaultLanguage {
		t.Fatalf("language = %q, want %q", m.Metadata.Language, DefaultLanguage)
	}
	if m.Metadata.Intent != DefaultIntent {
		t.Fatalf("intent = %q, want %q", m.Metadata.Intent, DefaultIntent)
	}
	if len(m.Warnings) == 0 {
		t.Fatal("no warnings recorded for defaulted metadata")
	}
}

func TestDeterministicReplacesUnknownProfile(t *testing.T) {
	m := draftedManifest()
	m.Metadata.Profile = "does_not_exist"

	Deterministic(m)

	if m.Metadata.Profile != catalog.DefaultProfileID {
		t.Fatalf("profile = %q, want %q", m.Metadata.Profile, catalog.DefaultProfileID)
	}
}

func TestDeterministicResolvesDurationWeights(t *testing.T) {
	m := draftedManifest()
	m.Scenes = []domain.Scene{
		{ID: "s1", DurationSeconds: 20, Purpose: "a", Visuals: []domain.Visual{}, Effects: []string{}},
		{ID: "s2", DurationWeight: 1, Purpose: "b", Visuals: []domain.Visual{}, Effects: []string{}},
	}

	Deterministic(m)

	if m.Scenes[1].DurationSeconds != 40 {
		t.Fatalf("weighted scene duration = %v, want 40", m.Scenes[1].DurationSeconds)
	}
	if m.Scenes[1].DurationWeight != 0 {
		t.Fatalf("weight not cleared: %v", m.Scenes[1].DurationWeight)
	}
}

func TestDeterministicDropsDanglingVisualsAndUnknownEffects(t *testing.T) {
	m := draftedManifest()
	m.Scenes[0].Visuals = []domain.Visual{
		{Type: "image", AssetID: "ghost", Source: domain.VisualSourceGenerated},
	}
	m.Scenes[0].Effects = []string{"fade", "explode"}

	Deterministic(m)

	if len(m.Scenes[0].Visuals) != 0 {
		t.Fatalf("dangling visual kept: %v", m.Scenes[0].Visuals)
	}
	if len(m.Scenes[0].Effects) != 1 || m.Scenes[0].Effects[0] != "fade" {
		t.Fatalf("effects = %v, want [fade]", m.Scenes[0].Effects)
	}
	if len(m.Assets) != 0 {
		t.Fatalf("assets fabricated: %v", m.Assets)
	}
}

func TestDeterministicRenumbersDuplicateSceneIDs(t *testing.T) {
	m := draftedManifest()
	m.Scenes[1].ID = "s1"

	Deterministic(m)

	if m.Scenes[0].ID != "s1" || m.Scenes[1].ID != "s2" || m.Scenes[2].ID != "s3" {
		t.Fatalf("scene ids = %q/%q/%q", m.Scenes[0].ID, m.Scenes[1].ID, m.Scenes[2].ID)
	}
}

func TestDeterministicProducesValidManifest(t *testing.T) {
	m := draftedManifest()

	Deterministic(m)

	if res := schema.Validate(m); !res.Valid {
		t.Fatalf("repaired manifest invalid: %v", res.Errors)
	}
}

func TestDeterministicIsIdempotent(t *testing.T) {
	m := draftedManifest()
	m.Metadata.Language = ""
	m.Scenes[1].DurationWeight = 0.3

	Deterministic(m)
	first, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	Deterministic(m)
	second, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if string(first) != string(second) {
		t.Fatalf("second run changed the manifest:\nfirst:  %s\nsecond: %s", first, second)
	}
}
