package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pathfinity/pathfinity-backend/internal/clients/youtube"
	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// Fixed per-call cost estimates. These mirror what the product bills
// against, not measured API spend.
const (
	narrativeCallCost = 0.05
	containerCallCost = 0.01
)

// Orchestrator sequences one full-experience generation: narrative (via
// cache) and video search in parallel, then the four container generators
// fanned out together. It never returns an error: any failure degrades to
// a tagged strategy instead of breaking the UI.
type Orchestrator interface {
	GenerateFullExperience(ctx context.Context, req types.StudentRequest) types.AllContainers
}

type orchestrator struct {
	log *logger.Logger

	cache      NarrativeCache
	narratives NarrativeService
	videos     youtube.Service
	selector   VideoSelector
	learn      LearnGenerator
	experience ExperienceGenerator
	discover   DiscoverGenerator
	assessment AssessmentGenerator
	metrics    MetricsService

	videoTimeout time.Duration
}

func NewOrchestrator(
	baseLog *logger.Logger,
	cache NarrativeCache,
	narratives NarrativeService,
	videos youtube.Service,
	selector VideoSelector,
	learn LearnGenerator,
	experience ExperienceGenerator,
	discover DiscoverGenerator,
	assessment AssessmentGenerator,
	metrics MetricsService,
) Orchestrator {
	return &orchestrator{
		log:          baseLog.With("service", "Orchestrator"),
		cache:        cache,
		narratives:   narratives,
		videos:       videos,
		selector:     selector,
		learn:        learn,
		experience:   experience,
		discover:     discover,
		assessment:   assessment,
		metrics:      metrics,
		videoTimeout: 15 * time.Second,
	}
}

func (o *orchestrator) GenerateFullExperience(ctx context.Context, req types.StudentRequest) types.AllContainers {
	start := time.Now()
	params := req.NarrativeParams()

	var (
		narrative  *types.MasterNarrative
		cacheHit   bool
		video      *types.Video
		transcript []types.TranscriptSegment
	)

	// Narrative fetch and video search run in parallel. A video failure is
	// not an error here; it only degrades the result.
	g, gctx := errgroup.WithContext(ctx)
	var narrativeErr error

	g.Go(func() error {
		narrative, cacheHit, narrativeErr = o.cache.Get(gctx, params)
		return nil
	})
	g.Go(func() error {
		video, transcript = o.findVideo(gctx, req)
		return nil
	})
	_ = g.Wait()

	strategy := types.StrategyFull
	cost := containerCallCost * 4

	if narrativeErr != nil {
		o.log.Warn("Narrative generation failed, falling back",
			"career", req.Career, "grade", req.Grade, "error", narrativeErr)
		narrative = o.narratives.FallbackNarrative(params)
		strategy = types.StrategyFallback
		cacheHit = false
		video = nil
		transcript = nil
	} else if !cacheHit {
		cost += narrativeCallCost
	}

	if strategy != types.StrategyFallback && video == nil {
		strategy = types.StrategyDegraded
	}

	containers, err := o.generateContainers(narrative, video, transcript)
	if err != nil && strategy != types.StrategyFallback {
		// One retry on the synthetic narrative before the last resort.
		o.log.Warn("Container generation failed, retrying on fallback narrative", "error", err)
		narrative = o.narratives.FallbackNarrative(params)
		strategy = types.StrategyFallback
		cacheHit = false
		video = nil
		transcript = nil
		containers, err = o.generateContainers(narrative, nil, nil)
	}
	if err != nil {
		o.log.Error("Container generation failed on fallback narrative", "error", err)
		strategy = types.StrategyFallback
		containers = lastResortContainers(narrative)
	}

	elapsed := time.Since(start)
	result := types.AllContainers{
		Narrative:  *narrative,
		Learn:      containers[0],
		Experience: containers[1],
		Discover:   containers[2],
		Assessment: containers[3],
		Metadata: types.GenerationMetadata{
			Strategy:     strategy,
			CacheHit:     cacheHit,
			GenerationMs: elapsed.Milliseconds(),
			CostEstimate: cost,
			VideoFound:   video != nil,
		},
	}

	o.metrics.Record(RequestOutcome{
		Career:       req.Career,
		Grade:        req.Grade,
		Strategy:     strategy,
		CacheHit:     cacheHit,
		LatencyMs:    elapsed.Milliseconds(),
		CostEstimate: cost,
	})

	o.log.Info("Full experience generated",
		"student", req.StudentName,
		"career", req.Career,
		"strategy", strategy,
		"cache_hit", cacheHit,
		"elapsed_ms", elapsed.Milliseconds(),
	)
	return result
}

// findVideo searches, selects, and fetches the transcript. Every failure
// path returns nil; the caller tags the strategy.
func (o *orchestrator) findVideo(ctx context.Context, req types.StudentRequest) (*types.Video, []types.TranscriptSegment) {
	if o.videos == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, o.videoTimeout)
	defer cancel()

	found, err := o.videos.SearchEducationalVideos(ctx, req.Grade, req.Subject, req.Skill)
	if err != nil {
		o.log.Warn("Video search failed", "skill", req.Skill, "error", err)
		return nil, nil
	}
	best, ok := o.selector.SelectBest(found, req.Skill, req.Grade)
	if !ok {
		return nil, nil
	}

	transcript, err := o.videos.GetTranscript(ctx, best.ID)
	if err != nil {
		o.log.Debug("Transcript unavailable", "video_id", best.ID, "error", err)
		transcript = nil
	}
	return best, transcript
}

func (o *orchestrator) generateContainers(narrative *types.MasterNarrative, video *types.Video, transcript []types.TranscriptSegment) ([4]types.ContainerContent, error) {
	var out [4]types.ContainerContent

	g := new(errgroup.Group)
	g.Go(func() error {
		c, err := o.learn.Generate(narrative, video, transcript)
		if err != nil {
			return fmt.Errorf("learn: %w", err)
		}
		out[0] = c
		return nil
	})
	g.Go(func() error {
		c, err := o.experience.Generate(narrative)
		if err != nil {
			return fmt.Errorf("experience: %w", err)
		}
		out[1] = c
		return nil
	})
	g.Go(func() error {
		c, err := o.discover.Generate(narrative)
		if err != nil {
			return fmt.Errorf("discover: %w", err)
		}
		out[2] = c
		return nil
	})
	g.Go(func() error {
		c, err := o.assessment.Generate(narrative)
		if err != nil {
			return fmt.Errorf("assessment: %w", err)
		}
		out[3] = c
		return nil
	})

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

// lastResortContainers builds the minimal hand-written payloads. It cannot
// fail; it exists so GenerateFullExperience keeps its never-errors contract.
func lastResortContainers(narrative *types.MasterNarrative) [4]types.ContainerContent {
	intro := narrative.Snippets.Welcome
	mk := func(container, title string) types.ContainerContent {
		return types.ContainerContent{
			Container:    container,
			Title:        title,
			Introduction: intro,
			Activities:   []string{narrative.Mission},
		}
	}
	assessment := mk(types.ContainerAssessment, "Show What You Know")
	assessment.Questions = []types.Question{{
		Type:          "fill_blank",
		Text:          fmt.Sprintf("%s works as a %s.", narrative.Persona.Name, types.BlankMarker),
		CorrectAnswer: narrative.Career,
		Variants:      []string{narrative.Career},
	}}
	return [4]types.ContainerContent{
		mk(types.ContainerLearn, "Let's Learn"),
		mk(types.ContainerExperience, "Your Turn"),
		mk(types.ContainerDiscover, "Explore More"),
		assessment,
	}
}
