package services

import (
	"strings"
	"testing"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

func newTestFillBlank() FillBlankService {
	return NewFillBlankService(logger.NewNop(), 1)
}

func TestGenerateFillBlankReconstruction(t *testing.T) {
	cases := []struct {
		name      string
		statement string
	}{
		{name: "simple_copula", statement: "The sky is blue."},
		{name: "is_a_that", statement: "A nurse is a helper that takes care of patients."},
		{name: "called", statement: "A baby dog is called a puppy."},
		{name: "known_phrase", statement: "The water cycle moves water around our planet."},
		{name: "quoted", statement: `The biggest planet is called "Jupiter" by scientists.`},
		{name: "equals", statement: "Two plus three equals five."},
		{name: "plain_sentence", statement: "Chefs measure ingredients carefully every morning."},
	}

	svc := newTestFillBlank()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb, err := svc.GenerateFillBlank(tc.statement, "", "3")
			if err != nil {
				t.Fatalf("GenerateFillBlank(%q) error: %v", tc.statement, err)
			}
			if !strings.Contains(fb.Question, types.BlankMarker) {
				t.Fatalf("question %q has no blank marker", fb.Question)
			}
			if fb.CorrectAnswer == "" {
				t.Fatalf("empty correct answer for %q", tc.statement)
			}

			rebuilt := strings.Replace(fb.Question, types.BlankMarker, fb.CorrectAnswer, 1)
			if normalize(rebuilt) != normalize(tc.statement) {
				t.Fatalf("reconstruction failed: rebuilt %q from question %q answer %q, want %q",
					rebuilt, fb.Question, fb.CorrectAnswer, tc.statement)
			}
		})
	}
}

func TestGenerateFillBlankSkyIsBlue(t *testing.T) {
	svc := newTestFillBlank()
	fb, err := svc.GenerateFillBlank("The sky is blue.", "", "K")
	if err != nil {
		t.Fatalf("GenerateFillBlank error: %v", err)
	}
	if fb.CorrectAnswer != "blue" {
		t.Fatalf("CorrectAnswer = %q, want %q", fb.CorrectAnswer, "blue")
	}
	if fb.Question != "The sky is "+types.BlankMarker+"." {
		t.Fatalf("Question = %q, want %q", fb.Question, "The sky is "+types.BlankMarker+".")
	}
}

func TestGenerateFillBlankEmptyStatement(t *testing.T) {
	svc := newTestFillBlank()
	if _, err := svc.GenerateFillBlank("   ", "", ""); err == nil {
		t.Fatal("expected error for empty statement")
	}
}

func TestGenerateAnswerVariations(t *testing.T) {
	svc := newTestFillBlank()

	got := svc.GenerateAnswerVariations("student")
	for _, want := range []string{"student", "students", "student's", "students'"} {
		found := false
		for _, v := range got {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("variations %v missing %q", got, want)
		}
	}
}

func TestGenerateAnswerVariationsSynonyms(t *testing.T) {
	svc := newTestFillBlank()
	got := svc.GenerateAnswerVariations("patient")
	found := false
	for _, v := range got {
		if v == "client" {
			found = true
		}
	}
	if !found {
		t.Fatalf("variations %v missing synonym %q", got, "client")
	}
}

func TestGenerateAnswerVariationsPluralRules(t *testing.T) {
	cases := []struct {
		word   string
		plural string
	}{
		{"city", "cities"},
		{"box", "boxes"},
		{"brush", "brushes"},
		{"day", "days"},
		{"chart", "charts"},
	}
	for _, tc := range cases {
		t.Run(tc.word, func(t *testing.T) {
			if got := pluralize(tc.word); got != tc.plural {
				t.Fatalf("pluralize(%q) = %q, want %q", tc.word, got, tc.plural)
			}
		})
	}
}

func TestGenerateOptionsNumeric(t *testing.T) {
	svc := newTestFillBlank()
	options := svc.GenerateOptions("5", "math")

	if len(options) != 4 {
		t.Fatalf("got %d options %v, want 4", len(options), options)
	}

	seen := map[string]bool{}
	hasAnswer := false
	for _, o := range options {
		if seen[o] {
			t.Fatalf("duplicate option %q in %v", o, options)
		}
		seen[o] = true
		if o == "5" {
			hasAnswer = true
		}
	}
	if !hasAnswer {
		t.Fatalf("options %v missing the answer", options)
	}
}

func TestGenerateOptionsWord(t *testing.T) {
	svc := newTestFillBlank()
	options := svc.GenerateOptions("blue", "ela")

	if len(options) != 4 {
		t.Fatalf("got %d options %v, want 4", len(options), options)
	}
	hasAnswer := false
	for _, o := range options {
		if o == "blue" {
			hasAnswer = true
		}
	}
	if !hasAnswer {
		t.Fatalf("options %v missing the answer", options)
	}
}

func TestRankCandidatesOrdering(t *testing.T) {
	svc := newTestFillBlank().(*fillBlankService)
	candidates := svc.rankCandidates("A baby dog is called a puppy.")
	if len(candidates) == 0 {
		t.Fatal("no candidates")
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].confidence > candidates[i-1].confidence {
			t.Fatalf("candidates not sorted by confidence: %v", candidates)
		}
	}
	if candidates[0].answer != "puppy" {
		t.Fatalf("top candidate = %q, want %q", candidates[0].answer, "puppy")
	}
}
