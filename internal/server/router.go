package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pathfinity/pathfinity-backend/internal/handlers"
	"github.com/pathfinity/pathfinity-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleware
	ContentHandler      *handlers.ContentHandler
	FillBlankHandler    *handlers.FillBlankHandler
	ProvisioningHandler *handlers.ProvisioningHandler
	MetricsHandler      *handlers.MetricsHandler
	SessionHandler      *handlers.SessionHandler
	AssignmentHandler   *handlers.AssignmentHandler
	ProgressionHandler  *handlers.ProgressionHandler
	AllowOrigins        []string
	TracingEnabled      bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware("pathfinity-backend"))
	}

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	{
		api.POST("/content/experience", cfg.ContentHandler.GenerateExperience)

		api.POST("/questions/fill-blank", cfg.FillBlankHandler.Generate)
		api.POST("/questions/options", cfg.FillBlankHandler.Options)

		api.GET("/provisioning", cfg.ProvisioningHandler.GetConfig)
		api.GET("/metrics", cfg.MetricsHandler.Report)
		api.GET("/sessions", cfg.SessionHandler.List)
		api.DELETE("/sessions", cfg.SessionHandler.Delete)

		api.GET("/assignments/today", cfg.AssignmentHandler.GetToday)
		api.POST("/assignments/:id/status", cfg.AssignmentHandler.Mark)

		api.GET("/progression/:skill", cfg.ProgressionHandler.Get)
		api.PUT("/progression/:skill", cfg.ProgressionHandler.Put)

		api.GET("/demo/:flag", cfg.ProgressionHandler.GetDemoFlag)
		api.PUT("/demo/:flag", cfg.ProgressionHandler.SetDemoFlag)
	}

	return router
}
