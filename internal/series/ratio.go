package series

import (
	"time"

	"btc-yardstick/internal/domain"
)

// ComputeRatioPoints pairs two quarterly-resampled series and emits one point
// per quarter present in both. AssetPerBTC is the number of asset units one
// BTC buys at that quarter end. Quarters where either price is non-positive
// are omitted rather than emitted as Inf/NaN.
func ComputeRatioPoints(btc, asset domain.ObservationSeries) []domain.RatioPoint {
	btcByQuarter := make(map[time.Time]float64, len(btc))
	for _, o := range btc {
		btcByQuarter[o.Date] = o.Price
	}

	points := make([]domain.RatioPoint, 0, len(asset))
	for _, o := range asset {
		btcPrice, ok := btcByQuarter[o.Date]
		if !ok {
			continue
		}
		if btcPrice <= 0 || o.Price <= 0 {
			continue
		}
		points = append(points, domain.RatioPoint{
			QuarterEnd:  o.Date,
			BTCPrice:    btcPrice,
			AssetPrice:  o.Price,
			AssetPerBTC: btcPrice / o.Price,
		})
	}
	return points
}

// ComputeBasePoints converts a quarterly BTC series into btc_usd document
// points. BTCPerUSD is how much BTC one dollar buys; non-positive prices are
// skipped.
func ComputeBasePoints(btc domain.ObservationSeries) []domain.BasePoint {
	points := make([]domain.BasePoint, 0, len(btc))
	for _, o := range btc {
		if o.Price <= 0 {
			continue
		}
		points = append(points, domain.BasePoint{
			QuarterEnd:  o.Date,
			BTCPriceUSD: o.Price,
			BTCPerUSD:   1 / o.Price,
		})
	}
	return points
}
