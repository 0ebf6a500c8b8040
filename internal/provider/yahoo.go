package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"btc-yardstick/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooClient fetches daily closing prices from the Yahoo Finance chart API.
type YahooClient struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewYahooClient(tracer trace.Tracer) *YahooClient {
	return &YahooClient{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: yahooBaseURL,
		tracer:  tracer,
	}
}

// yahooChart is the response structure from the Yahoo Finance chart API.
// Close values can be null for untraded days, hence the pointer slices.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyCloses returns the full daily close history for a ticker,
// filtered to observations on or after start, ascending by date.
func (c *YahooClient) FetchDailyCloses(ctx context.Context, ticker string, start time.Time) (domain.ObservationSeries, error) {
	ctx, span := c.tracer.Start(ctx, "yahoo.fetch-daily-closes")
	defer span.End()

	u := fmt.Sprintf("%s/%s?interval=1d&range=max", c.baseURL, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body for %s: %w", ticker, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo status %d for %s: %s", resp.StatusCode, ticker, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode for %s: %w", ticker, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error for %s: %s", ticker, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", ticker)
	}

	result := chart.Chart.Result[0]

	// Prefer adjusted closes; fall back to the raw quote closes.
	var closes []*float64
	if len(result.Indicators.Adjclose) > 0 && len(result.Indicators.Adjclose[0].Adjclose) > 0 {
		closes = result.Indicators.Adjclose[0].Adjclose
	} else if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("yahoo: no close series for %s", ticker)
	}

	obs := make(domain.ObservationSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		date := time.Unix(ts, 0).UTC()
		if date.Before(start) {
			continue
		}
		obs = append(obs, domain.Observation{Date: date, Price: *closes[i]})
	}

	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
	return obs, nil
}
