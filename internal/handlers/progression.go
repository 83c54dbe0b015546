package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathfinity/pathfinity-backend/internal/clients/redisstore"
	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/requestdata"
)

type ProgressionHandler struct {
	log   *logger.Logger
	store redisstore.ProgressionStore
}

func NewProgressionHandler(log *logger.Logger, store redisstore.ProgressionStore) *ProgressionHandler {
	return &ProgressionHandler{
		log:   log.With("handler", "ProgressionHandler"),
		store: store,
	}
}

func (h *ProgressionHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, "forbidden", fmt.Errorf("no student on request"))
		return
	}

	skill := c.Param("skill")
	state, err := h.store.GetSkillProgression(c.Request.Context(), rd.StudentID.String(), skill)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "progression_read_failed", err)
		return
	}
	RespondOK(c, gin.H{"skill": skill, "state": state})
}

func (h *ProgressionHandler) Put(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, "forbidden", fmt.Errorf("no student on request"))
		return
	}

	skill := c.Param("skill")
	var state map[string]any
	if err := c.ShouldBindJSON(&state); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.store.PutSkillProgression(c.Request.Context(), rd.StudentID.String(), skill, state); err != nil {
		RespondError(c, http.StatusInternalServerError, "progression_write_failed", err)
		return
	}
	RespondOK(c, gin.H{"skill": skill, "saved": true})
}

func (h *ProgressionHandler) GetDemoFlag(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, "forbidden", fmt.Errorf("no student on request"))
		return
	}

	flag := c.Param("flag")
	on, err := h.store.GetDemoFlag(c.Request.Context(), rd.StudentID.String(), flag)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "demo_flag_read_failed", err)
		return
	}
	RespondOK(c, gin.H{"flag": flag, "on": on})
}

type setDemoFlagRequest struct {
	On bool `json:"on"`
}

func (h *ProgressionHandler) SetDemoFlag(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusForbidden, "forbidden", fmt.Errorf("no student on request"))
		return
	}

	flag := c.Param("flag")
	var req setDemoFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.store.SetDemoFlag(c.Request.Context(), rd.StudentID.String(), flag, req.On); err != nil {
		RespondError(c, http.StatusInternalServerError, "demo_flag_write_failed", err)
		return
	}
	RespondOK(c, gin.H{"flag": flag, "on": req.On})
}
