package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/requestdata"
	"github.com/pathfinity/pathfinity-backend/internal/services"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

type ContentHandler struct {
	log          *logger.Logger
	orchestrator services.Orchestrator
	sessions     services.SessionService
}

func NewContentHandler(log *logger.Logger, orchestrator services.Orchestrator, sessions services.SessionService) *ContentHandler {
	return &ContentHandler{
		log:          log.With("handler", "ContentHandler"),
		orchestrator: orchestrator,
		sessions:     sessions,
	}
}

// GenerateExperience runs the full Learn/Experience/Discover/Assessment
// generation for the authenticated student. The orchestrator never fails;
// the strategy tag inside the metadata tells the caller what it got.
func (h *ContentHandler) GenerateExperience(c *gin.Context) {
	var req types.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	rd := requestdata.GetRequestData(c.Request.Context())
	if rd != nil {
		req.StudentID = rd.StudentID
	}

	result := h.orchestrator.GenerateFullExperience(c.Request.Context(), req)

	if h.sessions != nil {
		if _, err := h.sessions.RecordGeneration(c.Request.Context(), req, result); err != nil {
			// Persistence is best-effort; the generated content still ships.
			h.log.Warn("Failed to persist learning session", "error", err)
		}
	}

	RespondOK(c, result)
}
