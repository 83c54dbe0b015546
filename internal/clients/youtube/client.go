package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// Service wraps the YouTube Data API for grade-appropriate video search.
type Service interface {
	SearchEducationalVideos(ctx context.Context, grade, subject, term string) ([]types.Video, error)
	GetTranscript(ctx context.Context, videoID string) ([]types.TranscriptSegment, error)
}

type service struct {
	log        *logger.Logger
	yt         *youtubeapi.Service
	httpClient *http.Client
	maxResults int64
}

func NewService(log *logger.Logger) (Service, error) {
	apiKey := strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing YOUTUBE_API_KEY")
	}

	yt, err := youtubeapi.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}

	return &service{
		log:        log.With("service", "YouTubeService"),
		yt:         yt,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		maxResults: 10,
	}, nil
}

func (s *service) SearchEducationalVideos(ctx context.Context, grade, subject, term string) ([]types.Video, error) {
	query := buildQuery(grade, subject, term)

	searchResp, err := s.yt.Search.List([]string{"snippet"}).
		Context(ctx).
		Q(query).
		Type("video").
		VideoEmbeddable("true").
		SafeSearch("strict").
		RelevanceLanguage("en").
		MaxResults(s.maxResults).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search %q: %w", query, err)
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		return []types.Video{}, nil
	}

	detailResp, err := s.yt.Videos.List([]string{"snippet", "contentDetails"}).
		Context(ctx).
		Id(ids...).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube video details: %w", err)
	}

	videos := make([]types.Video, 0, len(detailResp.Items))
	for _, item := range detailResp.Items {
		if item.Snippet == nil || item.ContentDetails == nil {
			continue
		}
		published, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		videos = append(videos, types.Video{
			ID:          item.Id,
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			Description: item.Snippet.Description,
			Duration:    parseISODuration(item.ContentDetails.Duration),
			Definition:  item.ContentDetails.Definition,
			PublishedAt: published,
		})
	}

	s.log.Debug("YouTube search complete", "query", query, "results", len(videos))
	return videos, nil
}

// GetTranscript pulls the public timedtext track. Videos without an
// English caption track return an empty slice, not an error.
func (s *service) GetTranscript(ctx context.Context, videoID string) ([]types.TranscriptSegment, error) {
	if videoID == "" {
		return nil, fmt.Errorf("videoID required")
	}

	u := "https://video.google.com/timedtext?lang=en&v=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timedtext fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext http %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseTimedText(raw)
}

func buildQuery(grade, subject, term string) string {
	parts := []string{term, subject}
	if grade != "" {
		parts = append(parts, "grade "+grade)
	}
	parts = append(parts, "for kids")
	return strings.Join(parts, " ")
}

type timedText struct {
	Texts []struct {
		Start string `xml:"start,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

func parseTimedText(raw []byte) ([]types.TranscriptSegment, error) {
	if len(raw) == 0 {
		return []types.TranscriptSegment{}, nil
	}
	var tt timedText
	if err := xml.Unmarshal(raw, &tt); err != nil {
		return nil, fmt.Errorf("timedtext parse: %w", err)
	}
	segments := make([]types.TranscriptSegment, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		start, _ := strconv.ParseFloat(t.Start, 64)
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		segments = append(segments, types.TranscriptSegment{StartSec: start, Text: text})
	}
	return segments, nil
}

// parseISODuration handles the PT#H#M#S shapes the API returns.
func parseISODuration(iso string) time.Duration {
	iso = strings.TrimPrefix(iso, "PT")
	var d time.Duration
	num := strings.Builder{}
	for _, r := range iso {
		switch r {
		case 'H':
			n, _ := strconv.Atoi(num.String())
			d += time.Duration(n) * time.Hour
			num.Reset()
		case 'M':
			n, _ := strconv.Atoi(num.String())
			d += time.Duration(n) * time.Minute
			num.Reset()
		case 'S':
			n, _ := strconv.Atoi(num.String())
			d += time.Duration(n) * time.Second
			num.Reset()
		default:
			num.WriteRune(r)
		}
	}
	return d
}
