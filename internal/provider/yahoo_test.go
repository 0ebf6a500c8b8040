package provider

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func TestYahooFetchDailyCloses(t *testing.T) {
	t.Parallel()

	// 2024-01-15, 2024-03-29 and a null close in between.
	body := `{"chart":{"result":[{"timestamp":[1705276800,1708992000,1711670400],
		"indicators":{"adjclose":[{"adjclose":[42000.5,null,70000.25]}],
		"quote":[{"close":[41999.0,null,69999.0]}]}}],"error":null}}`

	client := NewYahooClient(trace.NewNoopTracerProvider().Tracer("test"))
	client.baseURL = "http://example/v8/finance/chart"
	client.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if !strings.Contains(req.URL.Path, "/BTC-USD") {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			if req.URL.Query().Get("interval") != "1d" || req.URL.Query().Get("range") != "max" {
				t.Fatalf("unexpected query: %s", req.URL.RawQuery)
			}
			if req.Header.Get("User-Agent") == "" {
				t.Fatal("expected a User-Agent header")
			}
			return jsonResponse(http.StatusOK, body), nil
		}),
	}

	start := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	obs, err := client.FetchDailyCloses(context.Background(), "BTC-USD", start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 2 {
		t.Fatalf("expected 2 observations (null skipped), got %d", len(obs))
	}
	if obs[0].Price != 42000.5 {
		t.Fatalf("expected adjclose values, got %f", obs[0].Price)
	}
	if !obs[0].Date.Before(obs[1].Date) {
		t.Fatal("observations should be ascending by date")
	}
}

func TestYahooFetchDailyClosesQuoteFallback(t *testing.T) {
	t.Parallel()

	body := `{"chart":{"result":[{"timestamp":[1711670400],
		"indicators":{"quote":[{"close":[70000.25]}]}}],"error":null}}`

	client := NewYahooClient(trace.NewNoopTracerProvider().Tracer("test"))
	client.client = &http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, body), nil
		}),
	}

	obs, err := client.FetchDailyCloses(context.Background(), "GC=F", time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 1 || obs[0].Price != 70000.25 {
		t.Fatalf("expected quote close fallback, got %+v", obs)
	}
}

func TestYahooFetchDailyClosesFiltersStart(t *testing.T) {
	t.Parallel()

	body := `{"chart":{"result":[{"timestamp":[1262304000,1711670400],
		"indicators":{"adjclose":[{"adjclose":[30.0,70000.25]}]}}],"error":null}}`

	client := NewYahooClient(trace.NewNoopTracerProvider().Tracer("test"))
	client.client = &http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, body), nil
		}),
	}

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	obs, err := client.FetchDailyCloses(context.Background(), "^GSPC", start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 1 || obs[0].Price != 70000.25 {
		t.Fatalf("expected pre-start observations dropped, got %+v", obs)
	}
}

func TestYahooFetchDailyClosesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp *http.Response
		want string
	}{
		{"api error", jsonResponse(http.StatusOK,
			`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`),
			"No data found"},
		{"empty result", jsonResponse(http.StatusOK, `{"chart":{"result":[],"error":null}}`), "no data"},
		{"bad status", jsonResponse(http.StatusTooManyRequests, `slow down`), "status 429"},
		{"bad json", jsonResponse(http.StatusOK, `{"chart":`), "decode"},
	}

	for _, tt := range tests {
		client := NewYahooClient(trace.NewNoopTracerProvider().Tracer("test"))
		client.client = &http.Client{
			Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
				return tt.resp, nil
			}),
		}
		_, err := client.FetchDailyCloses(context.Background(), "BTC-USD", time.Time{})
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}
