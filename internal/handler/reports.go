package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adpilot/internal/service"
)

type ReportHandler struct {
	Service *service.ReportService
}

func (h *ReportHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/reports")
	group.GET("/roi", h.roi)
	group.GET("/compare", h.compare)
}

// @Summary ROI report over a date range
// @Tags reports
// @Param campaign_id query string false "campaign id; empty aggregates all campaigns"
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} apiResponse
// @Router /api/v1/reports/roi [get]
func (h *ReportHandler) roi(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "report service unavailable", nil)
		return
	}
	from, ok := dateQuery(c, "from")
	if !ok {
		Error(c, http.StatusBadRequest, "from is required (YYYY-MM-DD)", nil)
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		Error(c, http.StatusBadRequest, "to is required (YYYY-MM-DD)", nil)
		return
	}
	if to.Before(from) {
		Error(c, http.StatusBadRequest, "to must not precede from", nil)
		return
	}
	campaignID := strings.TrimSpace(c.Query("campaign_id"))
	report, err := h.Service.ComputeRange(c.Request.Context(), campaignID, from, to)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, report, nil)
}

// @Summary Compare two periods
// @Tags reports
// @Param campaign_id query string false "campaign id; empty aggregates all campaigns"
// @Param from query string true "current period start, YYYY-MM-DD"
// @Param to query string true "current period end, YYYY-MM-DD"
// @Param prev_from query string true "previous period start, YYYY-MM-DD"
// @Param prev_to query string true "previous period end, YYYY-MM-DD"
// @Success 200 {object} apiResponse
// @Router /api/v1/reports/compare [get]
func (h *ReportHandler) compare(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "report service unavailable", nil)
		return
	}
	from, okFrom := dateQuery(c, "from")
	to, okTo := dateQuery(c, "to")
	prevFrom, okPrevFrom := dateQuery(c, "prev_from")
	prevTo, okPrevTo := dateQuery(c, "prev_to")
	if !okFrom || !okTo || !okPrevFrom || !okPrevTo {
		Error(c, http.StatusBadRequest, "from, to, prev_from and prev_to are required (YYYY-MM-DD)", nil)
		return
	}
	campaignID := strings.TrimSpace(c.Query("campaign_id"))
	result, err := h.Service.ComparePeriods(c.Request.Context(), campaignID, from, to, prevFrom, prevTo)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}
