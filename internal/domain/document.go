package domain

import "time"

// RatioPoint is one shared quarter of an asset/BTC pairing before rounding.
type RatioPoint struct {
	QuarterEnd  time.Time
	BTCPrice    float64
	AssetPrice  float64
	AssetPerBTC float64
}

// BasePoint is one quarter of the btc_usd document.
type BasePoint struct {
	QuarterEnd  time.Time
	BTCPriceUSD float64
	BTCPerUSD   float64
}

// SeriesPoint is the persisted shape of one quarter in a ratio document.
type SeriesPoint struct {
	Date        string  `json:"date"`
	BTCPrice    float64 `json:"btc_price"`
	AssetPrice  float64 `json:"asset_price"`
	AssetPerBTC float64 `json:"asset_per_btc"`
}

// SeriesDocument is the persisted JSON artifact for one ratio asset.
// Fully regenerated each run; never merged or appended to.
type SeriesDocument struct {
	Asset     string        `json:"asset"`
	UpdatedAt string        `json:"updated_at"`
	Data      []SeriesPoint `json:"data"`
}

// BaseSeriesPoint is the persisted shape of one quarter in the btc_usd document.
type BaseSeriesPoint struct {
	Date        string  `json:"date"`
	BTCPriceUSD float64 `json:"btc_price_usd"`
	BTCPerUSD   float64 `json:"btc_per_usd"`
}

// BaseDocument is the persisted JSON artifact for btc_usd.
type BaseDocument struct {
	Asset     string            `json:"asset"`
	UpdatedAt string            `json:"updated_at"`
	Data      []BaseSeriesPoint `json:"data"`
}
