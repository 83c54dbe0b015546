package app

import (
	"time"

	"gorm.io/gorm"

	"github.com/pathfinity/pathfinity-backend/internal/clients/openai"
	"github.com/pathfinity/pathfinity-backend/internal/clients/redisstore"
	"github.com/pathfinity/pathfinity-backend/internal/clients/youtube"
	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/repos"
	"github.com/pathfinity/pathfinity-backend/internal/services"
)

type Repos struct {
	Sessions    repos.LearningSessionRepo
	Analytics   repos.SessionAnalyticsRepo
	Assignments repos.DailyAssignmentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Sessions:    repos.NewLearningSessionRepo(db, log),
		Analytics:   repos.NewSessionAnalyticsRepo(db, log),
		Assignments: repos.NewDailyAssignmentRepo(db, log),
	}
}

type Services struct {
	Narratives   services.NarrativeService
	Cache        services.NarrativeCache
	FillBlank    services.FillBlankService
	Provisioning services.ProvisioningService
	Metrics      services.MetricsService
	Orchestrator services.Orchestrator
	Sessions     services.SessionService
	Assignments  services.AssignmentService
	Progression  redisstore.ProgressionStore
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	ai, err := openai.NewClient(log)
	if err != nil {
		return Services{}, err
	}

	// The video path is optional: without a key the orchestrator serves
	// degraded results instead of failing startup.
	var videos youtube.Service
	videos, err = youtube.NewService(log)
	if err != nil {
		log.Warn("YouTube service unavailable, content will be generated without videos", "error", err)
		videos = nil
	}

	progression, err := redisstore.NewProgressionStore(log)
	if err != nil {
		return Services{}, err
	}

	narratives := services.NewNarrativeService(log, ai)
	cache := services.NewNarrativeCache(log, narratives, cfg.NarrativeCacheCapacity, cfg.NarrativeCacheTTL)
	fillBlank := services.NewFillBlankService(log, time.Now().UnixNano())
	metrics := services.NewMetricsService(log)

	provisioning, err := services.NewProvisioningService(log)
	if err != nil {
		return Services{}, err
	}

	orchestrator := services.NewOrchestrator(
		log,
		cache,
		narratives,
		videos,
		services.NewVideoSelector(log),
		services.NewLearnGenerator(log),
		services.NewExperienceGenerator(log),
		services.NewDiscoverGenerator(log),
		services.NewAssessmentGenerator(log, fillBlank),
		metrics,
	)

	return Services{
		Narratives:   narratives,
		Cache:        cache,
		FillBlank:    fillBlank,
		Provisioning: provisioning,
		Metrics:      metrics,
		Orchestrator: orchestrator,
		Sessions:     services.NewSessionService(db, log, reposet.Sessions, reposet.Analytics),
		Assignments:  services.NewAssignmentService(db, log, reposet.Assignments),
		Progression:  progression,
	}, nil
}
