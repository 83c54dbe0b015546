package services

import (
	"testing"
	"time"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

func TestSelectBestPrefersTrustedChannelAndTermMatch(t *testing.T) {
	sel := NewVideoSelector(logger.NewNop())

	videos := []types.Video{
		{ID: "aaa", Title: "Top 10 gaming moments", Channel: "RandomGamer", Duration: 40 * time.Minute},
		{ID: "bbb", Title: "Fractions for kids", Channel: "Khan Academy", Duration: 4 * time.Minute, Definition: "hd"},
		{ID: "ccc", Title: "Fractions explained", Channel: "SomeChannel", Duration: 4 * time.Minute},
	}

	best, ok := sel.SelectBest(videos, "Fractions", "3")
	if !ok {
		t.Fatal("expected a selection")
	}
	if best.ID != "bbb" {
		t.Fatalf("selected %q, want bbb", best.ID)
	}
}

func TestSelectBestEmptyInput(t *testing.T) {
	sel := NewVideoSelector(logger.NewNop())

	if _, ok := sel.SelectBest(nil, "Fractions", "3"); ok {
		t.Fatal("no videos must mean no selection")
	}
}

func TestScoreVideoDurationBands(t *testing.T) {
	inBand := types.Video{Title: "counting", Channel: "x", Duration: 3 * time.Minute}
	wayTooLong := types.Video{Title: "counting", Channel: "x", Duration: 30 * time.Minute}

	// K-2 band is 1 to 5 minutes.
	if got, want := scoreVideo(inBand, "counting", "1"), 4.0; got != want {
		t.Fatalf("in-band score = %v, want %v", got, want)
	}
	if got, want := scoreVideo(wayTooLong, "counting", "1"), 0.0; got != want {
		t.Fatalf("overlong score = %v, want %v", got, want)
	}
}

func TestSelectBestReturnsCopy(t *testing.T) {
	sel := NewVideoSelector(logger.NewNop())
	videos := []types.Video{{ID: "aaa", Title: "fractions", Channel: "Khan Academy", Duration: 4 * time.Minute}}

	best, ok := sel.SelectBest(videos, "fractions", "3")
	if !ok {
		t.Fatal("expected a selection")
	}
	best.Title = "mutated"
	if videos[0].Title != "fractions" {
		t.Fatal("selection must not alias the input slice")
	}
}
