package handler

import (
	"context"

	"btc-yardstick/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// SeriesRefresher runs a full document regeneration.
type SeriesRefresher interface {
	RefreshAll(ctx context.Context) *domain.RunSummary
}

// DocumentReader serves persisted documents and their freshness stamps.
type DocumentReader interface {
	Read(ctx context.Context, assetID string) ([]byte, error)
	UpdatedAt(ctx context.Context, assetID string) (string, bool)
}

type Handler struct {
	tracer    trace.Tracer
	refresher SeriesRefresher
	docs      DocumentReader
	catalog   domain.Catalog
}

func New(tracer trace.Tracer, refresher SeriesRefresher, docs DocumentReader, catalog domain.Catalog) *Handler {
	return &Handler{
		tracer:    tracer,
		refresher: refresher,
		docs:      docs,
		catalog:   catalog,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/assets", h.GetAssets)
	r.GET("/api/series/:asset", h.GetSeries)
	r.POST("/api/refresh", h.Refresh)
}
