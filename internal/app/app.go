package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pathfinity/pathfinity-backend/internal/db"
	"github.com/pathfinity/pathfinity-backend/internal/handlers"
	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/middleware"
	"github.com/pathfinity/pathfinity-backend/internal/observability"
	"github.com/pathfinity/pathfinity-backend/internal/server"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	traceShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet)
	if err != nil {
		log.Sync()
		return nil, err
	}

	var traceShutdown func(context.Context) error
	if cfg.TracingEnabled {
		traceShutdown, err = observability.Setup(context.Background(), "pathfinity-backend", log)
		if err != nil {
			log.Sync()
			return nil, fmt.Errorf("init tracing: %w", err)
		}
	}

	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:      middleware.NewAuthMiddleware(log, cfg.JWTSecretKey),
		ContentHandler:      handlers.NewContentHandler(log, serviceset.Orchestrator, serviceset.Sessions),
		FillBlankHandler:    handlers.NewFillBlankHandler(log, serviceset.FillBlank),
		ProvisioningHandler: handlers.NewProvisioningHandler(log, serviceset.Provisioning),
		MetricsHandler:      handlers.NewMetricsHandler(log, serviceset.Metrics),
		SessionHandler:      handlers.NewSessionHandler(log, serviceset.Sessions),
		AssignmentHandler:   handlers.NewAssignmentHandler(log, serviceset.Assignments),
		ProgressionHandler:  handlers.NewProgressionHandler(log, serviceset.Progression),
		AllowOrigins:        cfg.AllowOrigins,
		TracingEnabled:      cfg.TracingEnabled,
	})

	return &App{
		Log:           log,
		DB:            theDB,
		Router:        router,
		Cfg:           cfg,
		Repos:         reposet,
		Services:      serviceset,
		traceShutdown: traceShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting HTTP server", "addr", a.Cfg.Addr)
	return a.Router.Run(a.Cfg.Addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Services.Progression != nil {
		_ = a.Services.Progression.Close()
	}
	if a.traceShutdown != nil {
		_ = a.traceShutdown(context.Background())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
