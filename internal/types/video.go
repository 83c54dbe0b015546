package types

import "time"

// Video is one candidate returned by the educational video search.
type Video struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Channel     string        `json:"channel"`
	Description string        `json:"description"`
	Duration    time.Duration `json:"duration"`
	Definition  string        `json:"definition"`
	PublishedAt time.Time     `json:"published_at"`
}

// TranscriptSegment is one timed chunk of a video transcript.
type TranscriptSegment struct {
	StartSec float64 `json:"start_sec"`
	Text     string  `json:"text"`
}
