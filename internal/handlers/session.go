package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/requestdata"
	"github.com/pathfinity/pathfinity-backend/internal/services"
)

type SessionHandler struct {
	log      *logger.Logger
	sessions services.SessionService
}

func NewSessionHandler(log *logger.Logger, sessions services.SessionService) *SessionHandler {
	return &SessionHandler{
		log:      log.With("handler", "SessionHandler"),
		sessions: sessions,
	}
}

func (h *SessionHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, "forbidden", fmt.Errorf("no student on request"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	sessions, err := h.sessions.ListByStudent(c.Request.Context(), rd.StudentID, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_sessions_failed", err)
		return
	}
	RespondOK(c, gin.H{"sessions": sessions})
}

type deleteSessionsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

func (h *SessionHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, "forbidden", fmt.Errorf("no student on request"))
		return
	}

	var req deleteSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	deleted, err := h.sessions.DeleteSessions(c.Request.Context(), rd.StudentID, req.IDs)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "delete_sessions_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": deleted})
}
