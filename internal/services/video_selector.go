package services

import (
	"strings"
	"time"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// VideoSelector scores search results and picks the single best video for
// a request. Scoring favors term matches in the title, trusted education
// channels, a grade-appropriate duration band, and HD.
type VideoSelector interface {
	SelectBest(videos []types.Video, term, grade string) (*types.Video, bool)
}

var trustedChannels = map[string]bool{
	"khan academy":             true,
	"scratchgarden":            true,
	"numberblocks":             true,
	"sesame street":            true,
	"national geographic kids": true,
	"crash course kids":        true,
	"scishow kids":             true,
	"homeschool pop":           true,
}

type videoSelector struct {
	log *logger.Logger
}

func NewVideoSelector(baseLog *logger.Logger) VideoSelector {
	return &videoSelector{log: baseLog.With("service", "VideoSelector")}
}

func (s *videoSelector) SelectBest(videos []types.Video, term, grade string) (*types.Video, bool) {
	if len(videos) == 0 {
		return nil, false
	}

	bestIdx := -1
	bestScore := -1.0
	for i, v := range videos {
		score := scoreVideo(v, term, grade)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return nil, false
	}

	best := videos[bestIdx]
	s.log.Debug("Video selected", "video_id", best.ID, "title", best.Title, "score", bestScore)
	return &best, true
}

func scoreVideo(v types.Video, term, grade string) float64 {
	score := 0.0

	title := strings.ToLower(v.Title)
	for _, word := range strings.Fields(strings.ToLower(term)) {
		if strings.Contains(title, word) {
			score += 2
		}
	}

	if trustedChannels[strings.ToLower(v.Channel)] {
		score += 3
	}

	// Younger grades get shorter videos.
	min, max := durationBand(grade)
	if v.Duration >= min && v.Duration <= max {
		score += 2
	} else if v.Duration > 2*max {
		score -= 2
	}

	if v.Definition == "hd" {
		score++
	}

	return score
}

func durationBand(grade string) (time.Duration, time.Duration) {
	switch gradeBand(grade) {
	case "K-2":
		return 1 * time.Minute, 5 * time.Minute
	case "3-5":
		return 2 * time.Minute, 8 * time.Minute
	case "6-8":
		return 3 * time.Minute, 12 * time.Minute
	default:
		return 4 * time.Minute, 20 * time.Minute
	}
}
