package domain

// DurationTolerance is the maximum drift allowed between the sum of scene
// durations and the requested total before a manifest is considered broken.
const DurationTolerance = 0.1

// MinSceneDuration is the floor applied when durations are rescaled so no
// scene collapses to zero length.
const MinSceneDuration = 0.05

// Metadata carries the production-level settings every downstream worker
// reads before touching individual scenes.
type Metadata struct {
	Intent          string  `json:"intent"`
	DurationSeconds float64 `json:"durationSeconds"`
	AspectRatio     string  `json:"aspectRatio"`
	Platform        string  `json:"platform"`
	Language        string  `json:"language"`
	Profile         string  `json:"profile"`
}

// VisualSource enumerates where a visual's pixels come from.
const (
	VisualSourceGenerated = "generated"
	VisualSourceStock     = "stock"
	VisualSourceUser      = "user"
)

// Visual is a single visual element inside a scene. Generated visuals
// reference the asset a generation job will produce.
type Visual struct {
	Type    string `json:"type"`
	AssetID string `json:"assetId"`
	Prompt  string `json:"prompt,omitempty"`
	Source  string `json:"source"`
}

// Scene is one contiguous slice of the production timeline.
type Scene struct {
	ID              string  `json:"id"`
	StartAtSec      float64 `json:"startAtSec"`
	DurationSeconds float64 `json:"durationSeconds"`
	// DurationWeight is only meaningful on unrepaired manifests: a scene
	// whose treatment omitted an explicit duration carries a normalized
	// weight instead, and repair converts it into an absolute duration.
	DurationWeight float64  `json:"durationWeight,omitempty"`
	Purpose        string   `json:"purpose"`
	Narration      string   `json:"narration"`
	Visuals        []Visual `json:"visuals"`
	Effects        []string `json:"effects"`
}

// AssetStatus values mirror the lifecycle external generators report back.
const (
	AssetStatusPending   = "pending"
	AssetStatusGenerated = "generated"
	AssetStatusFailed    = "failed"
)

// Asset is a referenced or to-be-generated media artifact.
type Asset struct {
	ID            string   `json:"id"`
	Source        string   `json:"source"`
	Role          string   `json:"role"`
	Status        string   `json:"status"`
	RequiredEdits []string `json:"requiredEdits"`
}

// TTSDefaults configures narration synthesis for every scene that does not
// override it.
type TTSDefaults struct {
	Provider string `json:"provider"`
	Voice    string `json:"voice"`
	Gender   string `json:"gender"`
	Language string `json:"language"`
}

// Music maps scene ids to music cue identifiers.
type Music struct {
	CueMap map[string]string `json:"cueMap"`
}

// Audio groups the audio-related production settings.
type Audio struct {
	TTSDefaults TTSDefaults `json:"ttsDefaults"`
	Music       Music       `json:"music"`
}

// VisualStyle holds production-wide visual direction.
type VisualStyle struct {
	DefaultStyle string `json:"defaultStyle"`
	ColorPalette string `json:"colorPalette"`
}

// EffectRules declares the transition vocabulary scenes may use.
type EffectRules struct {
	AllowedTransitions []string `json:"allowedTransitions"`
	DefaultTransition  string   `json:"defaultTransition"`
}

// Consistency captures style-lock rules that keep generated assets coherent
// across scenes.
type Consistency struct {
	CharacterFaces string `json:"characterFaces"`
	VoiceTone      string `json:"voiceTone"`
}

// ProductionManifest is the root aggregate: one per production request. It is
// mutated only by the repair pipeline; once valid it is handed to job
// decomposition and treated as immutable.
type ProductionManifest struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	SourceRefs  []string         `json:"sourceRefs"`
	Metadata    Metadata         `json:"metadata"`
	Scenes      []Scene          `json:"scenes"`
	Assets      map[string]Asset `json:"assets"`
	Audio       Audio            `json:"audio"`
	Visuals     VisualStyle      `json:"visuals"`
	Effects     EffectRules      `json:"effects"`
	Consistency Consistency      `json:"consistency"`
	Jobs        []Job            `json:"jobs"`
	Warnings    []string         `json:"warnings"`
}

// SceneDurationSum returns the summed duration of all scenes.
func (m *ProductionManifest) SceneDurationSum() float64 {
	var sum float64
	for _, s := range m.Scenes {
		sum += s.DurationSeconds
	}
	return sum
}

// Warn appends a human-readable degradation notice.
func (m *ProductionManifest) Warn(msg string) {
	m.Warnings = append(m.Warnings, msg)
}
