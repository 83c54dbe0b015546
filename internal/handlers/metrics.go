package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/services"
)

type MetricsHandler struct {
	log     *logger.Logger
	metrics services.MetricsService
}

func NewMetricsHandler(log *logger.Logger, metrics services.MetricsService) *MetricsHandler {
	return &MetricsHandler{
		log:     log.With("handler", "MetricsHandler"),
		metrics: metrics,
	}
}

func (h *MetricsHandler) Report(c *gin.Context) {
	RespondOK(c, h.metrics.Report())
}
