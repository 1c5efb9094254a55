package catalog

// Profile is a creative style preset referenced by metadata.profile.
type Profile struct {
	ID                 string
	DefaultStyle       string
	ColorPalette       string
	DefaultTransition  string
	AllowedTransitions []string
	VoiceTone          string
	Quality            string
}

// DefaultProfileID is applied when a manifest names no profile.
const DefaultProfileID = "educational_explainer"

var allTransitions = []string{"cut", "fade", "dissolve", "slide", "zoom", "wipe"}

var profiles = map[string]Profile{
	"educational_explainer": {
		ID:                 "educational_explainer",
		DefaultStyle:       "clean flat illustration",
		ColorPalette:       "soft neutrals",
		DefaultTransition:  "fade",
		AllowedTransitions: allTransitions,
		VoiceTone:          "calm instructive",
		Quality:            "standard",
	},
	"product_showcase": {
		ID:                 "product_showcase",
		DefaultStyle:       "studio photography",
		ColorPalette:       "high contrast",
		DefaultTransition:  "cut",
		AllowedTransitions: []string{"cut", "fade", "zoom"},
		VoiceTone:          "confident persuasive",
		Quality:            "hd",
	},
	"story_cinematic": {
		ID:                 "story_cinematic",
		DefaultStyle:       "cinematic film still",
		ColorPalette:       "moody teal and orange",
		DefaultTransition:  "dissolve",
		AllowedTransitions: []string{"cut", "dissolve", "fade", "wipe"},
		VoiceTone:          "dramatic measured",
		Quality:            "hd",
	},
}

// ProfileByID resolves a profile id, falling back to the default preset for
// unknown or empty ids.
func ProfileByID(id string) Profile {
	if p, ok := profiles[id]; ok {
		return p
	}
	return profiles[DefaultProfileID]
}

// KnownProfile reports whether the id exists in the catalog.
func KnownProfile(id string) bool {
	_, ok := profiles[id]
	return ok
}

// IsAllowedEffect reports whether an effect/transition name belongs to the
// global vocabulary. Repair strips anything outside it.
func IsAllowedEffect(name string) bool {
	for _, t := range allTransitions {
		if t == name {
			return true
		}
	}
	return false
}

// AllowedEffects returns a copy of the global transition vocabulary.
func AllowedEffects() []string {
	return append([]string(nil), allTransitions...)
}
