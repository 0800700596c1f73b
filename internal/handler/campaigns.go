package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adpilot/internal/repository"
)

type CampaignHandler struct {
	Repo repository.Repository
}

func (h *CampaignHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/campaigns")
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.GET("/:id/keywords", h.keywords)
	group.GET("/:id/metrics", h.metrics)
}

// @Summary List campaigns
// @Tags campaigns
// @Param state query string false "filter by state"
// @Param name query string false "substring match on name"
// @Success 200 {object} apiResponse
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListCampaignsParams{
		Limit:  limit,
		Offset: offset,
	}
	if state := strings.TrimSpace(c.Query("state")); state != "" {
		params.State = &state
	}
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		params.Name = &name
	}
	items, err := h.Repo.ListCampaigns(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountCampaigns(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *CampaignHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	item, err := h.Repo.GetCampaignByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "campaign not found", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *CampaignHandler) keywords(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	items, err := h.Repo.ListKeywordsByCampaignID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary Daily metric rows for a campaign
// @Tags campaigns
// @Param id path string true "campaign id"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} apiResponse
// @Router /api/v1/campaigns/{id}/metrics [get]
func (h *CampaignHandler) metrics(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)
	params := repository.ListDailyMetricsParams{
		CampaignID: &id,
		Limit:      limit,
		Offset:     offset,
		OrderBy:    "date",
		Asc:        boolPtr(false),
	}
	if from, ok := dateQuery(c, "from"); ok {
		params.From = &from
	}
	if to, ok := dateQuery(c, "to"); ok {
		params.To = &to
	}
	items, err := h.Repo.ListDailyMetrics(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
