package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adpilot/internal/repository"
	"adpilot/internal/service"
)

type SettingsHandler struct {
	Repo    repository.Repository
	Service *service.SystemSettingsService
}

func (h *SettingsHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/settings", h.list)
	r.PUT("/api/v1/settings/:key", h.update)
}

// @Summary List system settings
// @Tags settings
// @Success 200 {object} apiResponse
// @Router /api/v1/settings [get]
func (h *SettingsHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repository unavailable", nil)
		return
	}
	items, err := h.Repo.ListSystemSettings(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

type updateSettingRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// @Summary Toggle a feature switch
// @Tags settings
// @Accept json
// @Param key path string true "setting key"
// @Param payload body updateSettingRequest true "new value"
// @Success 200 {object} apiResponse
// @Router /api/v1/settings/{key} [put]
func (h *SettingsHandler) update(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "settings service unavailable", nil)
		return
	}
	key := c.Param("key")
	var req updateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Service.SetEnabled(c.Request.Context(), key, *req.Enabled); err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"key": key, "enabled": *req.Enabled}, nil)
}
