// Package catalog holds the static lookup tables the manifest pipeline
// consults: narration voices, creative profiles, the effect vocabulary and
// per-job pricing. Nothing here is computed at runtime.
package catalog

import "strings"

// Voice describes one narration voice an external TTS provider offers.
type Voice struct {
	Provider string
	VoiceID  string
	Style    string
	Gender   string
	Language string
}

var voices = []Voice{
	{Provider: "elevenlabs", VoiceID: "rachel", Style: "warm narrator", Gender: "female", Language: "en"},
	{Provider: "elevenlabs", VoiceID: "adam", Style: "deep documentary", Gender: "male", Language: "en"},
	{Provider: "elevenlabs", VoiceID: "bella", Style: "upbeat energetic", Gender: "female", Language: "en"},
	{Provider: "google", VoiceID: "en-US-Neural2-J", Style: "neutral explainer", Gender: "male", Language: "en"},
	{Provider: "google", VoiceID: "en-US-Neural2-F", Style: "friendly casual", Gender: "female", Language: "en"},
	{Provider: "google", VoiceID: "id-ID-Standard-A", Style: "neutral explainer", Gender: "female", Language: "id"},
}

// DefaultVoice returns the catalog default for a language, falling back to
// the English default when the language has no dedicated entry.
func DefaultVoice(language string) Voice {
	for _, v := range voices {
		if v.Language == language {
			return v
		}
	}
	return voices[0]
}

// MatchVoice picks the closest catalog voice for a provider/style/gender
// preference. Any empty field is treated as a wildcard.
func MatchVoice(provider, style, gender string) Voice {
	provider = strings.ToLower(strings.TrimSpace(provider))
	style = strings.ToLower(strings.TrimSpace(style))
	gender = strings.ToLower(strings.TrimSpace(gender))

	best := DefaultVoice("en")
	bestScore := -1
	for _, v := range voices {
		score := 0
		if provider != "" && strings.ToLower(v.Provider) == provider {
			score += 2
		}
		if gender != "" && v.Gender == gender {
			score += 2
		}
		if style != "" && strings.Contains(style, strings.Fields(v.Style)[0]) {
			score++
		}
		if score > bestScore {
			best = v
			bestScore = score
		}
	}
	return best
}
