package services

import (
	"strings"
	"testing"
	"time"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

func fixtureNarrative() *types.MasterNarrative {
	return &types.MasterNarrative{
		Key:     "Chef|3|math|Fractions",
		Career:  "Chef",
		Grade:   "3",
		Subject: "math",
		Skill:   "Fractions",
		Persona: types.Persona{
			Name:        "Maya",
			Role:        "Head Chef",
			Greeting:    "Welcome to my kitchen!",
			Catchphrase: "Every recipe is a puzzle.",
		},
		Setting: "a busy restaurant kitchen",
		Mission: "Split the pizza into equal slices for every table.",
		JourneyBeats: []string{
			"Maya gets a big order of pizzas.",
			"Each pizza has to be cut into equal parts.",
		},
		Vocabulary: map[string]string{
			"fraction": "portion",
		},
		Snippets: types.NarrativeSnippets{
			Welcome:       "The kitchen is open!",
			Encouragement: "Chefs measure twice and cut once.",
			Transition:    "On to the next dish.",
			Celebration:   "Order up!",
		},
		GeneratedAt: time.Now(),
	}
}

func TestLearnGenerator(t *testing.T) {
	g := NewLearnGenerator(logger.NewNop())
	video := &types.Video{ID: "abc", Title: "Fractions for kids"}
	transcript := []types.TranscriptSegment{
		{Text: "Today we will learn fractions."},
		{Text: "A fraction is a part of a whole."},
	}

	content, err := g.Generate(fixtureNarrative(), video, transcript)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if content.Container != types.ContainerLearn {
		t.Fatalf("container = %q", content.Container)
	}
	if content.Title != "Learn Fractions with Maya" {
		t.Fatalf("title = %q", content.Title)
	}
	if content.Video == nil || content.Video.ID != "abc" {
		t.Fatal("video must pass through to the container")
	}
	if len(content.Activities) != 2 {
		t.Fatalf("activities = %d, want one per journey beat", len(content.Activities))
	}
	if content.Introduction == "" {
		t.Fatal("introduction must render")
	}
	preview, _ := content.Extra["transcript_preview"].(string)
	if !strings.Contains(preview, "part of a whole") {
		t.Fatalf("transcript preview = %q", preview)
	}
}

func TestLearnGeneratorWithoutVideo(t *testing.T) {
	g := NewLearnGenerator(logger.NewNop())

	content, err := g.Generate(fixtureNarrative(), nil, nil)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if content.Video != nil {
		t.Fatal("no video in, no video out")
	}
	if content.Extra != nil {
		t.Fatal("no transcript in, no preview out")
	}
	if content.Introduction == "" {
		t.Fatal("introduction must still render without a video")
	}
}

func TestExperienceGenerator(t *testing.T) {
	g := NewExperienceGenerator(logger.NewNop())

	content, err := g.Generate(fixtureNarrative())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if content.Container != types.ContainerExperience {
		t.Fatalf("container = %q", content.Container)
	}
	if content.Title != "A Day as a Chef" {
		t.Fatalf("title = %q", content.Title)
	}
	if len(content.Activities) != 1 {
		t.Fatalf("activities = %d, want one per vocabulary pair", len(content.Activities))
	}
	if !strings.Contains(content.Activities[0], "portion") {
		t.Fatalf("activity should use the career term, got %q", content.Activities[0])
	}
}

func TestExperienceGeneratorFallsBackToMission(t *testing.T) {
	g := NewExperienceGenerator(logger.NewNop())
	n := fixtureNarrative()
	n.Vocabulary = nil

	content, err := g.Generate(n)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(content.Activities) != 1 || content.Activities[0] != n.Mission {
		t.Fatalf("empty vocabulary should fall back to the mission, got %v", content.Activities)
	}
}

func TestDiscoverGenerator(t *testing.T) {
	g := NewDiscoverGenerator(logger.NewNop())

	content, err := g.Generate(fixtureNarrative())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if content.Container != types.ContainerDiscover {
		t.Fatalf("container = %q", content.Container)
	}
	if len(content.Activities) != 2 {
		t.Fatalf("activities = %d, want one per journey beat", len(content.Activities))
	}
	if !strings.HasPrefix(content.Activities[0], "Story beat 1:") {
		t.Fatalf("beats should stay in order, got %q", content.Activities[0])
	}
	if len(content.Hints) != 2 || !strings.Contains(content.Hints[1], "kitchen") {
		t.Fatalf("hints = %v", content.Hints)
	}
}

func TestAssessmentGenerator(t *testing.T) {
	fb := NewFillBlankService(logger.NewNop(), 1)
	g := NewAssessmentGenerator(logger.NewNop(), fb)

	content, err := g.Generate(fixtureNarrative())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if content.Container != types.ContainerAssessment {
		t.Fatalf("container = %q", content.Container)
	}
	if len(content.Questions) == 0 {
		t.Fatal("assessment must carry questions")
	}
	for i, q := range content.Questions {
		if q.Type != "fill_blank" {
			t.Fatalf("question %d type = %q", i, q.Type)
		}
		if !strings.Contains(q.Text, types.BlankMarker) {
			t.Fatalf("question %d has no blank: %q", i, q.Text)
		}
		if len(q.Options) != 4 {
			t.Fatalf("question %d has %d options, want 4", i, len(q.Options))
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
			}
		}
		if !found {
			t.Fatalf("question %d options %v miss the answer %q", i, q.Options, q.CorrectAnswer)
		}
		if len(q.Variants) == 0 || q.Variants[0] != q.CorrectAnswer {
			t.Fatalf("question %d variants must lead with the exact answer, got %v", i, q.Variants)
		}
	}
}
