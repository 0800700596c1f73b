package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adpilot/internal/ingest"
)

type IngestHandler struct {
	Service *ingest.Service
}

func (h *IngestHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/ingest/report", h.upload)
}

// @Summary Upload a performance report (CSV or XLSX)
// @Tags ingest
// @Accept multipart/form-data
// @Param file formData file true "report file"
// @Success 200 {object} apiResponse
// @Router /api/v1/ingest/report [post]
func (h *IngestHandler) upload(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "ingest service unavailable", nil)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	defer f.Close()
	rows, err := h.Service.IngestReport(c.Request.Context(), fileHeader.Filename, f)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"rows": rows}, nil)
}
