package domain

// JobType enumerates the downstream work units the decomposer emits.
type JobType string

const (
	JobTypeTTS    JobType = "tts_generate"
	JobTypeImage  JobType = "image_generate"
	JobTypeRender JobType = "render"
)

// Priorities are type-scoped constants. Render must run after all content
// jobs; the explicit dependency edge is the real guarantee, the priority gap
// just keeps schedulers that reorder equal-priority work honest.
const (
	PriorityContent = 10
	PriorityRender  = 12
)

// RetryPolicy is declarative data for the external executor; nothing in this
// subsystem enforces it.
type RetryPolicy struct {
	MaxRetries     int `json:"maxRetries"`
	BackoffSeconds int `json:"backoffSeconds"`
}

// ContentRetryPolicy is the default for TTS and asset generation.
func ContentRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BackoffSeconds: 30}
}

// RenderRetryPolicy uses a longer backoff: render is the most expensive and
// most failure-sensitive step.
func RenderRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BackoffSeconds: 120}
}

// Job is a unit of downstream work. Payload fields vary by type: TTS jobs
// carry sceneId+text, image jobs carry resultAssetId+prompt, render jobs
// carry manifestId plus a render description blob and callback URL.
type Job struct {
	ID          string         `json:"id"`
	Type        JobType        `json:"type"`
	Payload     map[string]any `json:"payload"`
	Priority    int            `json:"priority"`
	DependsOn   []string       `json:"dependsOn"`
	RetryPolicy RetryPolicy    `json:"retryPolicy"`
}
