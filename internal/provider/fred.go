package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"btc-yardstick/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const fredBaseURL = "https://fred.stlouisfed.org/graph/fredgraph.csv"

// FREDClient fetches economic time series from the FRED fredgraph CSV
// endpoint. No API key required.
type FREDClient struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewFREDClient(tracer trace.Tracer) *FREDClient {
	return &FREDClient{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: fredBaseURL,
		tracer:  tracer,
	}
}

// FetchSeries returns all observations for a FRED series id on or after
// start, ascending by date. Unreported values ("." placeholders) are skipped.
func (c *FREDClient) FetchSeries(ctx context.Context, seriesID string, start time.Time) (domain.ObservationSeries, error) {
	ctx, span := c.tracer.Start(ctx, "fred.fetch-series")
	defer span.End()

	u := fmt.Sprintf("%s?id=%s", c.baseURL, url.QueryEscape(seriesID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fred fetch %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fred status %d for %s: %s", resp.StatusCode, seriesID, string(body))
	}

	records, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("fred parse csv for %s: %w", seriesID, err)
	}
	if len(records) < 2 || len(records[0]) < 2 {
		return nil, fmt.Errorf("fred: no data returned for %s", seriesID)
	}

	dateCol, valueCol := fredColumns(records[0], seriesID)

	obs := make(domain.ObservationSeries, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) <= dateCol || len(row) <= valueCol {
			continue
		}
		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(row[dateCol]), time.UTC)
		if err != nil {
			continue
		}
		raw := strings.TrimSpace(row[valueCol])
		if raw == "" || raw == "." {
			// FRED uses "." for not-yet-reported periods.
			continue
		}
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if date.Before(start) {
			continue
		}
		obs = append(obs, domain.Observation{Date: date, Price: price})
	}

	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
	return obs, nil
}

// fredColumns locates the date and value columns in the CSV header. The date
// column is DATE or observation_date in either case; the value column is the
// series id when present, otherwise the second column.
func fredColumns(header []string, seriesID string) (dateCol, valueCol int) {
	dateCol, valueCol = 0, 1
	for i, col := range header {
		switch strings.ToUpper(strings.TrimSpace(col)) {
		case "DATE", "OBSERVATION_DATE":
			dateCol = i
		case strings.ToUpper(seriesID):
			valueCol = i
		}
	}
	return dateCol, valueCol
}
