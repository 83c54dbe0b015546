package types

// Generation strategies recorded in metadata. "full" means narrative and
// video both came through, "degraded" means the video path failed, and
// "fallback" means narrative generation itself failed and the synthetic
// narrative was used.
const (
	StrategyFull     = "full"
	StrategyDegraded = "degraded"
	StrategyFallback = "fallback"
)

// Container names.
const (
	ContainerLearn      = "learn"
	ContainerExperience = "experience"
	ContainerDiscover   = "discover"
	ContainerAssessment = "assessment"
)

// ContainerContent is one pedagogical phase's generated payload.
type ContainerContent struct {
	Container    string         `json:"container"`
	Title        string         `json:"title"`
	Introduction string         `json:"introduction"`
	Questions    []Question     `json:"questions,omitempty"`
	Activities   []string       `json:"activities,omitempty"`
	Hints        []string       `json:"hints,omitempty"`
	Video        *Video         `json:"video,omitempty"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// Question is the generic question shape shared by the containers.
type Question struct {
	Type          string   `json:"type"`
	Text          string   `json:"text"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options,omitempty"`
	Variants      []string `json:"variants,omitempty"`
	Hint          string   `json:"hint,omitempty"`
}

// GenerationMetadata is the metadata block attached to every result.
type GenerationMetadata struct {
	Strategy     string  `json:"strategy"`
	CacheHit     bool    `json:"cache_hit"`
	GenerationMs int64   `json:"generation_ms"`
	CostEstimate float64 `json:"cost_estimate"`
	VideoFound   bool    `json:"video_found"`
}

// AllContainers aggregates the four generated payloads plus metadata.
// Constructed once per request; not mutated afterwards.
type AllContainers struct {
	Narrative  MasterNarrative    `json:"narrative"`
	Learn      ContainerContent   `json:"learn"`
	Experience ContainerContent   `json:"experience"`
	Discover   ContainerContent   `json:"discover"`
	Assessment ContainerContent   `json:"assessment"`
	Metadata   GenerationMetadata `json:"metadata"`
}
