package catalog

// Static per-unit pricing in USD cents, keyed by job type: narration per
// scene, image per generated asset, render per pass. This is a lookup table
// for display and estimation only; no cost accounting happens here.
var jobRates = map[string]int{
	"tts_generate":   2,
	"image_generate": 4,
	"render":         25,
}

// RateCents returns the per-unit price for a job type, or zero for unknown
// types.
func RateCents(jobType string) int {
	return jobRates[jobType]
}

// EstimateCents sums the static rates for a set of job type counts.
func EstimateCents(counts map[string]int) int {
	var total int
	for jobType, n := range counts {
		total += jobRates[jobType] * n
	}
	return total
}
