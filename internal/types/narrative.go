package types

import "time"

// NarrativeParams identifies one Master Narrative. Key() is the cache key.
type NarrativeParams struct {
	Career  string `json:"career"`
	Grade   string `json:"grade"`
	Subject string `json:"subject"`
	Skill   string `json:"skill"`
	Context string `json:"context,omitempty"`
}

func (p NarrativeParams) Key() string {
	key := p.Career + "|" + p.Grade + "|" + p.Subject + "|" + p.Skill
	if p.Context != "" {
		key += "|" + p.Context
	}
	return key
}

// MasterNarrative is the career-themed story frame every container is
// generated from. Immutable once generated; owned by the narrative cache.
type MasterNarrative struct {
	Key          string            `json:"key"`
	Career       string            `json:"career"`
	Grade        string            `json:"grade"`
	Subject      string            `json:"subject"`
	Skill        string            `json:"skill"`
	Persona      Persona           `json:"persona"`
	Setting      string            `json:"setting"`
	Mission      string            `json:"mission"`
	JourneyBeats []string          `json:"journey_beats"`
	Vocabulary   map[string]string `json:"vocabulary"`
	Snippets     NarrativeSnippets `json:"snippets"`
	GeneratedAt  time.Time         `json:"generated_at"`
	Fallback     bool              `json:"fallback,omitempty"`
}

type Persona struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Greeting    string `json:"greeting"`
	Catchphrase string `json:"catchphrase"`
}

type NarrativeSnippets struct {
	Welcome       string `json:"welcome"`
	Encouragement string `json:"encouragement"`
	Transition    string `json:"transition"`
	Celebration   string `json:"celebration"`
}
