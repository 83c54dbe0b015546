package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/services"
)

type ProvisioningHandler struct {
	log          *logger.Logger
	provisioning services.ProvisioningService
}

func NewProvisioningHandler(log *logger.Logger, provisioning services.ProvisioningService) *ProvisioningHandler {
	return &ProvisioningHandler{
		log:          log.With("handler", "ProvisioningHandler"),
		provisioning: provisioning,
	}
}

func (h *ProvisioningHandler) GetConfig(c *gin.Context) {
	grade := c.Query("grade")
	if grade == "" {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("grade query parameter required"))
		return
	}
	schoolType := c.DefaultQuery("school_type", "district")

	cfg, err := h.provisioning.GetProvisioningConfig(grade, schoolType)
	if err != nil {
		RespondError(c, http.StatusNotFound, "no_provisioning_band", err)
		return
	}
	RespondOK(c, cfg)
}
