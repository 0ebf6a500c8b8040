package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetAssets godoc
// @Summary      List tracked assets
// @Description  Returns the asset catalog with per-document freshness stamps
// @Tags         series
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/assets [get]
func (h *Handler) GetAssets(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-assets")
	defer span.End()

	type assetInfo struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Source    string `json:"source"`
		Code      string `json:"code"`
		UpdatedAt string `json:"updated_at,omitempty"`
	}

	assets := make([]assetInfo, 0, len(h.catalog))
	for _, e := range h.catalog {
		info := assetInfo{ID: e.ID, Name: e.Name, Source: string(e.Source), Code: e.Code}
		if stamp, ok := h.docs.UpdatedAt(ctx, e.ID); ok {
			info.UpdatedAt = stamp
		}
		assets = append(assets, info)
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// GetSeries godoc
// @Summary      Get a purchasing-power series document
// @Description  Returns the persisted quarterly document for one tracked asset, verbatim
// @Tags         series
// @Produce      json
// @Param        asset  path  string  true  "Asset id (e.g., gold_usd, btc_usd)"
// @Success      200  {object}  domain.SeriesDocument
// @Failure      404  {object}  map[string]string
// @Router       /api/series/{asset} [get]
func (h *Handler) GetSeries(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-series")
	defer span.End()

	id := strings.ToLower(c.Param("asset"))
	span.SetAttributes(attribute.String("asset", id))

	if _, ok := h.catalog.ByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown asset: " + id})
		return
	}

	raw, err := h.docs.Read(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not generated yet for " + id})
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}

// Refresh godoc
// @Summary      Regenerate all documents
// @Description  Runs a full fetch-and-rebuild cycle and returns the run summary
// @Tags         series
// @Produce      json
// @Success      200  {object}  domain.RunSummary
// @Router       /api/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.refresh")
	defer span.End()

	summary := h.refresher.RefreshAll(ctx)
	c.JSON(http.StatusOK, summary)
}
