// Package schema validates production manifests against the declared JSON
// Schema plus the cross-reference rules the schema language cannot express.
// Validation always collects every violation so the repair pipeline has full
// diagnostic context.
package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"clipforge/internal/domain"
	"clipforge/internal/manifest/decompose"
)

//go:embed manifest.schema.json
var schemaJSON string

var compiled = jsonschema.MustCompileString("manifest.schema.json", schemaJSON)

// ValidationError is one field-level violation.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Result reports the outcome of a full validation pass.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// Document returns the raw JSON Schema text, used when asking the LLM tier
// to repair a manifest.
func Document() string {
	return schemaJSON
}

// Validate checks the manifest against the JSON Schema and the structural
// invariants (duration conservation, scene ordering, asset references, job
// graph integrity). It never short-circuits on the first failure.
func Validate(m *domain.ProductionManifest) Result {
	var errs []ValidationError

	if m == nil {
		return Result{Valid: false, Errors: []ValidationError{{Path: "/", Message: "manifest is nil"}}}
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return Result{Valid: false, Errors: []ValidationError{{Path: "/", Message: fmt.Sprintf("marshal manifest: %v", err)}}}
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Result{Valid: false, Errors: []ValidationError{{Path: "/", Message: fmt.Sprintf("decode manifest: %v", err)}}}
	}

	if err := compiled.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			errs = append(errs, flatten(ve)...)
		} else {
			errs = append(errs, ValidationError{Path: "/", Message: err.Error()})
		}
	}

	errs = append(errs, crossChecks(m)...)

	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Path < errs[j].Path })
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// flatten walks the cause tree and keeps only leaf violations; intermediate
// nodes repeat what their children already say.
func flatten(ve *jsonschema.ValidationError) []ValidationError {
	if len(ve.Causes) == 0 {
		path := ve.InstanceLocation
		if path == "" {
			path = "/"
		}
		return []ValidationError{{Path: path, Message: ve.Message}}
	}
	var out []ValidationError
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}

func crossChecks(m *domain.ProductionManifest) []ValidationError {
	var errs []ValidationError

	if len(m.Scenes) > 0 && m.Metadata.DurationSeconds > 0 {
		if diff := math.Abs(m.SceneDurationSum() - m.Metadata.DurationSeconds); diff > domain.DurationTolerance {
			errs = append(errs, ValidationError{
				Path:    "/scenes",
				Message: fmt.Sprintf("scene durations sum to %.2fs, metadata requests %.2fs", m.SceneDurationSum(), m.Metadata.DurationSeconds),
			})
		}
	}

	seen := make(map[string]bool, len(m.Scenes))
	expectedStart := 0.0
	for i, scene := range m.Scenes {
		if scene.ID != "" {
			if seen[scene.ID] {
				errs = append(errs, ValidationError{
					Path:    fmt.Sprintf("/scenes/%d/id", i),
					Message: fmt.Sprintf("duplicate scene id %q", scene.ID),
				})
			}
			seen[scene.ID] = true
		}
		if math.Abs(scene.StartAtSec-expectedStart) > domain.DurationTolerance {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("/scenes/%d/startAtSec", i),
				Message: fmt.Sprintf("scene starts at %.2fs, timeline expects %.2fs", scene.StartAtSec, expectedStart),
			})
		}
		expectedStart += scene.DurationSeconds

		for j, visual := range scene.Visuals {
			if visual.AssetID == "" {
				continue
			}
			if _, ok := m.Assets[visual.AssetID]; !ok {
				errs = append(errs, ValidationError{
					Path:    fmt.Sprintf("/scenes/%d/visuals/%d/assetId", i, j),
					Message: fmt.Sprintf("references unknown asset %q", visual.AssetID),
				})
			}
		}
	}

	for _, v := range decompose.GraphViolations(m.Jobs) {
		errs = append(errs, ValidationError{Path: v.Path, Message: v.Message})
	}

	return errs
}
