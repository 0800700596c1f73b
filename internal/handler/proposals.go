package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adpilot/internal/proposal"
	"adpilot/internal/repository"
	"adpilot/internal/service"
)

type ProposalHandler struct {
	Repo    repository.Repository
	Service *service.ProposalService
}

func (h *ProposalHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/proposals")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.GET("/:id/history", h.history)
	group.POST("/:id/approve", h.approve)
	group.POST("/:id/reject", h.reject)
}

type proposeRequest struct {
	Kind          string          `json:"kind" binding:"required"`
	Target        proposal.Target `json:"target" binding:"required"`
	CurrentValue  proposal.Value  `json:"current_value" binding:"required"`
	ProposedValue proposal.Value  `json:"proposed_value" binding:"required"`
	Reason        string          `json:"reason"`
}

// @Summary Propose a campaign/keyword change
// @Tags proposals
// @Accept json
// @Param body body proposeRequest true "change proposal"
// @Success 200 {object} apiResponse
// @Router /api/v1/proposals [post]
func (h *ProposalHandler) create(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "proposal service unavailable", nil)
		return
	}
	var req proposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	kind, err := proposal.ParseKind(req.Kind)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item, err := h.Service.Propose(c.Request.Context(), service.ProposeInput{
		Kind:     kind,
		Target:   req.Target,
		Current:  req.CurrentValue,
		Proposed: req.ProposedValue,
		Reason:   req.Reason,
	})
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary List proposals, newest first
// @Tags proposals
// @Param status query string false "pending|approved|rejected|executed|failed"
// @Success 200 {object} apiResponse
// @Router /api/v1/proposals [get]
func (h *ProposalHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListChangeProposalsParams{
		Limit:   limit,
		Offset:  offset,
		OrderBy: "created_at",
		Asc:     boolPtr(false),
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		params.Status = &status
	}
	if kind := strings.TrimSpace(c.Query("kind")); kind != "" {
		params.Kind = &kind
	}
	items, err := h.Repo.ListChangeProposals(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountChangeProposals(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *ProposalHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetChangeProposalByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "proposal not found", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *ProposalHandler) history(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	items, err := h.Repo.ListChangeHistoryByProposalID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary Approve a pending proposal
// @Tags proposals
// @Param id path int true "proposal id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Router /api/v1/proposals/{id}/approve [post]
func (h *ProposalHandler) approve(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "proposal service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	outcome, item, err := h.Service.Approve(c.Request.Context(), id)
	if err != nil {
		h.reviewError(c, err)
		return
	}
	Ok(c, item, map[string]any{"outcome": string(outcome)})
}

// @Summary Reject a pending proposal
// @Tags proposals
// @Param id path int true "proposal id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Router /api/v1/proposals/{id}/reject [post]
func (h *ProposalHandler) reject(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "proposal service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Service.Reject(c.Request.Context(), id)
	if err != nil {
		h.reviewError(c, err)
		return
	}
	Ok(c, item, map[string]any{"outcome": string(proposal.OutcomeRejected)})
}

func (h *ProposalHandler) reviewError(c *gin.Context, err error) {
	if errors.Is(err, proposal.ErrNotFound) {
		Error(c, http.StatusNotFound, "proposal not found", nil)
		return
	}
	var conflict *proposal.ConflictError
	if errors.As(err, &conflict) {
		Error(c, http.StatusConflict, conflict.Error(), map[string]any{
			"status": string(conflict.Status),
		})
		return
	}
	Error(c, http.StatusBadGateway, err.Error(), nil)
}
