package schema

import (
	"strings"
	"testing"

	"clipforge/internal/domain"
)

func validManifest() *domain.ProductionManifest {
	return &domain.ProductionManifest{
		ID:         "man-1",
		UserID:     "u1",
		SourceRefs: []string{},
		Metadata: domain.Metadata{
			Intent: "video", DurationSeconds: 30, AspectRatio: "9:16",
			Platform: "social", Language: "en", Profile: "educational_explainer",
		},
		Scenes: []domain.Scene{
			{
				ID: "s1", StartAtSec: 0, DurationSeconds: 12, Purpose: "hook",
				Narration: "opening line",
				Visuals: []domain.Visual{
					{Type: "image", AssetID: "asset_s1_1", Prompt: "a cup", Source: domain.VisualSourceGenerated},
				},
				Effects: []string{"fade"},
			},
			{
				ID: "s2", StartAtSec: 12, DurationSeconds: 18, Purpose: "cta",
				Narration: "closing line",
				Visuals:   []domain.Visual{},
				Effects:   []string{},
			},
		},
		Assets: map[string]domain.Asset{
			"asset_s1_1": {
				ID: "asset_s1_1", Source: domain.VisualSourceGenerated,
				Role: "scene_visual", Status: domain.AssetStatusPending,
				RequiredEdits: []string{},
			},
		},
		Audio: domain.Audio{
			TTSDefaults: domain.TTSDefaults{Provider: "elevenlabs", Voice: "rachel", Gender: "female", Language: "en"},
			Music:       domain.Music{CueMap: map[string]string{}},
		},
		Visuals: domain.VisualStyle{DefaultStyle: "clean flat illustration", ColorPalette: "soft neutrals"},
		Effects: domain.EffectRules{
			AllowedTransitions: []string{"cut", "fade", "zoom"},
			DefaultTransition:  "fade",
		},
		Consistency: domain.Consistency{CharacterFaces: "locked", VoiceTone: "warm"},
		Jobs:        []domain.Job{},
		Warnings:    []string{},
	}
}

func hasErrorAt(res Result, path string) bool {
	for _, e := range res.Errors {
		if e.Path == path {
			return true
		}
	}
	return false
}

func TestValidateAcceptsCompleteManifest(t *testing.T) {
	res := Validate(validManifest())
	if !res.Valid {
		t.Fatalf("valid manifest rejected: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("errors on valid manifest: %v", res.Errors)
	}
}

func TestValidateReportsMissingLanguage(t *testing.T) {
	m := validManifest()
	m.Metadata.Language = ""

	res := Validate(m)
	if res.Valid {
		t.Fatal("manifest without language accepted")
	}
	if !hasErrorAt(res, "/metadata/language") {
		t.Fatalf("no error at /metadata/language: %v", res.Errors)
	}
}

func TestValidateReportsDanglingAssetReference(t *testing.T) {
	m := validManifest()
	m.Scenes[0].Visuals[0].AssetID = "asset_missing"

	res := Validate(m)
	if res.Valid {
		t.Fatal("dangling asset reference accepted")
	}
	if !hasErrorAt(res, "/scenes/0/visuals/0/assetId") {
		t.Fatalf("no error at /scenes/0/visuals/0/assetId: %v", res.Errors)
	}
}

func TestValidateReportsDurationDrift(t *testing.T) {
	m := validManifest()
	m.Scenes[1].DurationSeconds = 10 // sum 22 vs requested 30

	res := Validate(m)
	if res.Valid {
		t.Fatal("duration drift accepted")
	}
	if !hasErrorAt(res, "/scenes") {
		t.Fatalf("no conservation error at /scenes: %v", res.Errors)
	}
}

func TestValidateToleratesRoundingDrift(t *testing.T) {
	m := validManifest()
	m.Scenes[1].DurationSeconds = 18.05 // within the 0.1s tolerance

	res := Validate(m)
	if hasErrorAt(res, "/scenes") {
		t.Fatalf("rounding drift rejected: %v", res.Errors)
	}
}

func TestValidateReportsTimelineGap(t *testing.T) {
	m := validManifest()
	m.Scenes[1].StartAtSec = 15

	res := Validate(m)
	if !hasErrorAt(res, "/scenes/1/startAtSec") {
		t.Fatalf("no error at /scenes/1/startAtSec: %v", res.Errors)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	m := validManifest()
	m.Metadata.Language = ""
	m.Metadata.Platform = ""
	m.Scenes[0].Visuals[0].AssetID = "asset_missing"
	m.Scenes[1].StartAtSec = 15

	res := Validate(m)
	if res.Valid {
		t.Fatal("broken manifest accepted")
	}
	for _, path := range []string{
		"/metadata/language",
		"/metadata/platform",
		"/scenes/0/visuals/0/assetId",
		"/scenes/1/startAtSec",
	} {
		if !hasErrorAt(res, path) {
			t.Fatalf("missing error at %s, got %v", path, res.Errors)
		}
	}
}

func TestValidateErrorsAreSortedByPath(t *testing.T) {
	m := validManifest()
	m.Consistency.VoiceTone = ""
	m.Metadata.Intent = ""

	res := Validate(m)
	for i := 1; i < len(res.Errors); i++ {
		if res.Errors[i-1].Path > res.Errors[i].Path {
			t.Fatalf("errors not sorted: %v", res.Errors)
		}
	}
}

func TestValidateReportsJobGraphViolations(t *testing.T) {
	m := validManifest()
	m.Jobs = []domain.Job{
		{
			ID: "render-1", Type: domain.JobTypeRender,
			Payload:     map[string]any{},
			Priority:    domain.PriorityRender,
			DependsOn:   []string{"ghost"},
			RetryPolicy: domain.RenderRetryPolicy(),
		},
	}

	res := Validate(m)
	if !hasErrorAt(res, "/jobs/0/dependsOn/0") {
		t.Fatalf("no error at /jobs/0/dependsOn/0: %v", res.Errors)
	}
}

func TestValidateRejectsZeroValueManifest(t *testing.T) {
	res := Validate(&domain.ProductionManifest{})
	if res.Valid {
		t.Fatal("zero-value manifest accepted")
	}
	// Nil slices marshal to null, which the schema rejects alongside the
	// empty required strings.
	if len(res.Errors) < 3 {
		t.Fatalf("expected a batch of violations, got %v", res.Errors)
	}
}

func TestValidateNilManifest(t *testing.T) {
	res := Validate(nil)
	if res.Valid {
		t.Fatal("nil manifest accepted")
	}
}

func TestDocumentExposesSchema(t *testing.T) {
	doc := Document()
	if !strings.Contains(doc, "ProductionManifest") {
		t.Fatalf("schema document looks wrong: %.80s", doc)
	}
}
