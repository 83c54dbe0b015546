package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/services"
)

type FillBlankHandler struct {
	log       *logger.Logger
	fillBlank services.FillBlankService
}

func NewFillBlankHandler(log *logger.Logger, fillBlank services.FillBlankService) *FillBlankHandler {
	return &FillBlankHandler{
		log:       log.With("handler", "FillBlankHandler"),
		fillBlank: fillBlank,
	}
}

type fillBlankRequest struct {
	Statement  string `json:"statement" binding:"required"`
	Hint       string `json:"hint"`
	GradeLevel string `json:"grade_level"`
}

func (h *FillBlankHandler) Generate(c *gin.Context) {
	var req fillBlankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	question, err := h.fillBlank.GenerateFillBlank(req.Statement, req.Hint, req.GradeLevel)
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "unblankable_statement", err)
		return
	}
	RespondOK(c, question)
}

type optionsRequest struct {
	Answer  string `json:"answer" binding:"required"`
	Subject string `json:"subject"`
}

func (h *FillBlankHandler) Options(c *gin.Context) {
	var req optionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	RespondOK(c, gin.H{"options": h.fillBlank.GenerateOptions(req.Answer, req.Subject)})
}
