package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/requestdata"
	"github.com/pathfinity/pathfinity-backend/internal/services"
)

type AssignmentHandler struct {
	log         *logger.Logger
	assignments services.AssignmentService
}

func NewAssignmentHandler(log *logger.Logger, assignments services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		log:         log.With("handler", "AssignmentHandler"),
		assignments: assignments,
	}
}

func (h *AssignmentHandler) GetToday(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, "forbidden", fmt.Errorf("no student on request"))
		return
	}

	result := h.assignments.GetTodaysAssignments(c.Request.Context(), rd.StudentID, c.Query("grade"))
	if !result.Success {
		RespondError(c, http.StatusInternalServerError, "assignments_failed", fmt.Errorf("%s", result.Error))
		return
	}
	RespondOK(c, result)
}

type markAssignmentRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AssignmentHandler) Mark(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, "forbidden", fmt.Errorf("no student on request"))
		return
	}

	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var req markAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result := h.assignments.MarkAssignment(c.Request.Context(), rd.StudentID, assignmentID, req.Status)
	if !result.Success {
		RespondError(c, http.StatusUnprocessableEntity, "mark_failed", fmt.Errorf("%s", result.Error))
		return
	}
	RespondOK(c, result)
}
