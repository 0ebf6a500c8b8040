package series

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"btc-yardstick/internal/domain"
)

func TestBuildSeriesDocumentRounding(t *testing.T) {
	updated := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	points := []domain.RatioPoint{
		{
			QuarterEnd:  day(2024, time.March, 31),
			BTCPrice:    70000.456,
			AssetPrice:  2200.005,
			AssetPerBTC: 31.81838444449,
		},
	}

	doc := BuildSeriesDocument("gold_usd", points, updated)
	if doc.Asset != "gold_usd" {
		t.Fatalf("unexpected asset id: %s", doc.Asset)
	}
	if doc.UpdatedAt != "2026-08-30T12:00:00Z" {
		t.Fatalf("unexpected updated_at: %s", doc.UpdatedAt)
	}
	if len(doc.Data) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(doc.Data))
	}
	p := doc.Data[0]
	if p.Date != "2024-03-31" {
		t.Fatalf("unexpected date: %s", p.Date)
	}
	if p.BTCPrice != 70000.46 {
		t.Fatalf("btc_price not rounded to 2dp: %v", p.BTCPrice)
	}
	if p.AssetPrice != 2200.0 {
		t.Fatalf("asset_price banker's rounding expected 2200.0, got %v", p.AssetPrice)
	}
	if p.AssetPerBTC != 31.8183844445 {
		t.Fatalf("asset_per_btc not rounded to 10dp: %v", p.AssetPerBTC)
	}
}

func TestBuildSeriesDocumentDeterministic(t *testing.T) {
	points := []domain.RatioPoint{
		{QuarterEnd: day(2024, time.March, 31), BTCPrice: 70000, AssetPrice: 2200, AssetPerBTC: 70000.0 / 2200},
		{QuarterEnd: day(2024, time.June, 30), BTCPrice: 61000, AssetPrice: 2330, AssetPerBTC: 61000.0 / 2330},
	}

	first := BuildSeriesDocument("gold_usd", points, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	second := BuildSeriesDocument("gold_usd", points, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))

	a, err := json.Marshal(first.Data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second.Data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("data arrays differ across runs:\n%s\n%s", a, b)
	}
}

func TestBuildSeriesDocumentEmpty(t *testing.T) {
	doc := BuildSeriesDocument("sp500", nil, time.Now())
	if doc.Data == nil || len(doc.Data) != 0 {
		t.Fatalf("expected empty non-nil data array, got %#v", doc.Data)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Contains(raw, []byte(`"data":[]`)) {
		t.Fatalf("empty document should serialize data as []: %s", raw)
	}
}

func TestBuildBaseDocumentUnrounded(t *testing.T) {
	updated := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	points := []domain.BasePoint{
		{QuarterEnd: day(2024, time.March, 31), BTCPriceUSD: 70000.123456, BTCPerUSD: 1 / 70000.123456},
	}
	doc := BuildBaseDocument(points, updated)
	if doc.Asset != domain.BaseAssetID {
		t.Fatalf("unexpected asset id: %s", doc.Asset)
	}
	if doc.Data[0].BTCPriceUSD != 70000.123456 {
		t.Fatalf("base document must not round prices: %v", doc.Data[0].BTCPriceUSD)
	}
	if doc.Data[0].BTCPerUSD != 1/70000.123456 {
		t.Fatalf("unexpected btc_per_usd: %v", doc.Data[0].BTCPerUSD)
	}
}
