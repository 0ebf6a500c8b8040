package series

import (
	"time"

	"btc-yardstick/internal/domain"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// BuildSeriesDocument finalizes ratio points into the persisted document
// shape. Prices round to 2 decimal places and the ratio to 10, banker's
// rounding, so repeated runs over identical input produce identical data.
func BuildSeriesDocument(assetID string, points []domain.RatioPoint, updatedAt time.Time) *domain.SeriesDocument {
	data := make([]domain.SeriesPoint, 0, len(points))
	for _, p := range points {
		data = append(data, domain.SeriesPoint{
			Date:        p.QuarterEnd.Format(dateLayout),
			BTCPrice:    roundTo(p.BTCPrice, 2),
			AssetPrice:  roundTo(p.AssetPrice, 2),
			AssetPerBTC: roundTo(p.AssetPerBTC, 10),
		})
	}
	return &domain.SeriesDocument{
		Asset:     assetID,
		UpdatedAt: updatedAt.UTC().Format(time.RFC3339),
		Data:      data,
	}
}

// BuildBaseDocument finalizes the btc_usd document. Values are written
// unrounded.
func BuildBaseDocument(points []domain.BasePoint, updatedAt time.Time) *domain.BaseDocument {
	data := make([]domain.BaseSeriesPoint, 0, len(points))
	for _, p := range points {
		data = append(data, domain.BaseSeriesPoint{
			Date:        p.QuarterEnd.Format(dateLayout),
			BTCPriceUSD: p.BTCPriceUSD,
			BTCPerUSD:   p.BTCPerUSD,
		})
	}
	return &domain.BaseDocument{
		Asset:     domain.BaseAssetID,
		UpdatedAt: updatedAt.UTC().Format(time.RFC3339),
		Data:      data,
	}
}

func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).RoundBank(places).Float64()
	return f
}
