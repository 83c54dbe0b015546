package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pathfinity/pathfinity-backend/internal/clients/openai"
	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// NarrativeService produces the career-themed Master Narrative every
// container is generated from.
type NarrativeService interface {
	Generate(ctx context.Context, params types.NarrativeParams) (*types.MasterNarrative, error)
	FallbackNarrative(params types.NarrativeParams) *types.MasterNarrative
}

type narrativeService struct {
	log *logger.Logger
	ai  openai.Client
}

func NewNarrativeService(baseLog *logger.Logger, ai openai.Client) NarrativeService {
	return &narrativeService{
		log: baseLog.With("service", "NarrativeService"),
		ai:  ai,
	}
}

const narrativeSystemPrompt = `You write short, joyful story frames for K-12 learners.
Every narrative themes one school skill around one career. Keep language
grade-appropriate, concrete, and free of scary or commercial content.`

var narrativeSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required": []string{
		"persona", "setting", "mission", "journey_beats", "vocabulary", "snippets",
	},
	"properties": map[string]any{
		"persona": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"name", "role", "greeting", "catchphrase"},
			"properties": map[string]any{
				"name":        map[string]any{"type": "string"},
				"role":        map[string]any{"type": "string"},
				"greeting":    map[string]any{"type": "string"},
				"catchphrase": map[string]any{"type": "string"},
			},
		},
		"setting": map[string]any{"type": "string"},
		"mission": map[string]any{"type": "string"},
		"journey_beats": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"vocabulary": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
		"snippets": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"welcome", "encouragement", "transition", "celebration"},
			"properties": map[string]any{
				"welcome":       map[string]any{"type": "string"},
				"encouragement": map[string]any{"type": "string"},
				"transition":    map[string]any{"type": "string"},
				"celebration":   map[string]any{"type": "string"},
			},
		},
	},
}

func (s *narrativeService) Generate(ctx context.Context, params types.NarrativeParams) (*types.MasterNarrative, error) {
	user := buildNarrativePrompt(params)

	obj, err := s.ai.GenerateJSON(ctx, narrativeSystemPrompt, user, "master_narrative", narrativeSchema)
	if err != nil {
		return nil, fmt.Errorf("narrative generation: %w", err)
	}

	narrative, err := mapNarrative(params, obj)
	if err != nil {
		return nil, fmt.Errorf("narrative mapping: %w", err)
	}

	s.log.Info("Master narrative generated",
		"career", params.Career,
		"grade", params.Grade,
		"subject", params.Subject,
		"skill", params.Skill,
	)
	return narrative, nil
}

func buildNarrativePrompt(params types.NarrativeParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Career: %s\n", params.Career)
	fmt.Fprintf(&b, "Grade: %s\n", params.Grade)
	fmt.Fprintf(&b, "Subject: %s\n", params.Subject)
	fmt.Fprintf(&b, "Skill: %s\n", params.Skill)
	if params.Context != "" {
		fmt.Fprintf(&b, "Extra context: %s\n", params.Context)
	}
	b.WriteString("\nCreate a master narrative: a friendly persona working as this career, ")
	b.WriteString("a vivid setting, a mission connecting the skill to the career, ")
	b.WriteString("3-5 journey beats, a vocabulary map translating classroom words into career words, ")
	b.WriteString("and reusable welcome/encouragement/transition/celebration snippets.")
	return b.String()
}

func mapNarrative(params types.NarrativeParams, obj map[string]any) (*types.MasterNarrative, error) {
	// Round-trip through JSON rather than hand-walking the map.
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var narrative types.MasterNarrative
	if err := json.Unmarshal(raw, &narrative); err != nil {
		return nil, err
	}
	if narrative.Persona.Name == "" || narrative.Setting == "" {
		return nil, fmt.Errorf("narrative missing persona or setting")
	}
	narrative.Key = params.Key()
	narrative.Career = params.Career
	narrative.Grade = params.Grade
	narrative.Subject = params.Subject
	narrative.Skill = params.Skill
	narrative.GeneratedAt = time.Now()
	return &narrative, nil
}

// FallbackNarrative is the deterministic, hand-written narrative used when
// generation fails. It is generic but always safe to ship to the UI.
func (s *narrativeService) FallbackNarrative(params types.NarrativeParams) *types.MasterNarrative {
	career := params.Career
	if career == "" {
		career = "Explorer"
	}
	return &types.MasterNarrative{
		Key:     params.Key(),
		Career:  career,
		Grade:   params.Grade,
		Subject: params.Subject,
		Skill:   params.Skill,
		Persona: types.Persona{
			Name:        "Sam",
			Role:        career,
			Greeting:    fmt.Sprintf("Hi! I'm Sam, and I work as a %s.", strings.ToLower(career)),
			Catchphrase: "Every day is a chance to learn something new!",
		},
		Setting: fmt.Sprintf("A busy day at work for a %s.", strings.ToLower(career)),
		Mission: fmt.Sprintf("Help Sam use %s skills on the job.", params.Skill),
		JourneyBeats: []string{
			"Meet Sam and see where they work.",
			fmt.Sprintf("Discover how a %s uses %s.", strings.ToLower(career), params.Skill),
			"Practice the skill together.",
			"Celebrate a job well done.",
		},
		Vocabulary: map[string]string{
			"practice": "training",
			"problem":  "challenge",
			"answer":   "solution",
		},
		Snippets: types.NarrativeSnippets{
			Welcome:       fmt.Sprintf("Welcome to Sam's world of %s!", strings.ToLower(career)),
			Encouragement: "You're doing great. Keep going!",
			Transition:    "Ready for the next part of our day?",
			Celebration:   "Amazing work! Sam couldn't have done it without you.",
		},
		GeneratedAt: time.Now(),
		Fallback:    true,
	}
}
