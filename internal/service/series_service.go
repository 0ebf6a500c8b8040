package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"btc-yardstick/internal/domain"
	"btc-yardstick/internal/series"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// QuoteSource fetches daily closing prices by ticker symbol (Yahoo).
type QuoteSource interface {
	FetchDailyCloses(ctx context.Context, ticker string, start time.Time) (domain.ObservationSeries, error)
}

// EconSource fetches economic time series by series id (FRED).
type EconSource interface {
	FetchSeries(ctx context.Context, seriesID string, start time.Time) (domain.ObservationSeries, error)
}

// DocumentStore persists finalized series documents.
type DocumentStore interface {
	Save(ctx context.Context, assetID string, doc any) error
}

// SeriesService regenerates every tracked purchasing-power document from the
// external sources. One run fully rewrites each document it can produce;
// assets whose fetch fails keep their previous (stale) file.
type SeriesService struct {
	tracer  trace.Tracer
	quotes  QuoteSource
	econ    EconSource
	store   DocumentStore
	catalog domain.Catalog
	start   time.Time

	mu sync.Mutex // serializes RefreshAll within this process
}

func NewSeriesService(
	tracer trace.Tracer,
	quotes QuoteSource,
	econ EconSource,
	store DocumentStore,
	catalog domain.Catalog,
	start time.Time,
) *SeriesService {
	return &SeriesService{
		tracer:  tracer,
		quotes:  quotes,
		econ:    econ,
		store:   store,
		catalog: catalog,
		start:   start,
	}
}

func (s *SeriesService) Catalog() domain.Catalog {
	return s.catalog
}

type assetResult struct {
	id      string
	written bool
	err     error
}

// RefreshAll regenerates all documents for the catalog. BTC is fetched first
// since every ratio depends on it; if that fails the run writes nothing and
// the error is carried in the summary. Remaining assets are fetched
// concurrently and failures stay isolated per asset.
func (s *SeriesService) RefreshAll(ctx context.Context) *domain.RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "series-service.refresh-all")
	defer span.End()

	started := time.Now()
	summary := &domain.RunSummary{StartedAt: started.UTC()}
	updatedAt := started.UTC()

	base, ok := s.catalog.Base()
	if !ok {
		// Validate is supposed to run before any fetch; keep the guard anyway.
		summary.AddError(domain.BaseAssetID, fmt.Errorf("catalog missing base entry"))
		summary.Duration = time.Since(started)
		return summary
	}

	btcQuarterly, err := s.fetchQuarterly(ctx, base)
	if err != nil {
		log.Printf("btc fetch failed, all documents stay stale this run: %v", err)
		summary.AddError(base.ID, err)
		summary.Duration = time.Since(started)
		return summary
	}

	basePoints := series.ComputeBasePoints(btcQuarterly)
	if err := s.store.Save(ctx, base.ID, series.BuildBaseDocument(basePoints, updatedAt)); err != nil {
		log.Printf("save %s: %v", base.ID, err)
		summary.AddError(base.ID, err)
	} else {
		summary.Written = append(summary.Written, base.ID)
		log.Printf("wrote %s (%d quarters)", base.ID, len(basePoints))
	}

	entries := s.catalog.RatioEntries()
	results := make(chan assetResult, len(entries))
	for _, entry := range entries {
		go func(entry domain.CatalogEntry) {
			results <- s.refreshAsset(ctx, entry, btcQuarterly, updatedAt)
		}(entry)
	}

	for range entries {
		res := <-results
		if res.err != nil {
			log.Printf("skipping %s, document stays stale: %v", res.id, res.err)
			summary.AddError(res.id, res.err)
			continue
		}
		if res.written {
			summary.Written = append(summary.Written, res.id)
		}
	}
	sort.Strings(summary.Written)

	summary.Duration = time.Since(started)
	span.SetAttributes(
		attribute.Int("written", len(summary.Written)),
		attribute.Int("errors", len(summary.Errors)),
	)
	log.Printf("refresh run complete: %d written, %d errors in %s",
		len(summary.Written), len(summary.Errors), summary.Duration.Round(time.Millisecond))
	return summary
}

func (s *SeriesService) refreshAsset(ctx context.Context, entry domain.CatalogEntry, btcQuarterly domain.ObservationSeries, updatedAt time.Time) assetResult {
	ctx, span := s.tracer.Start(ctx, "series-service.refresh-asset")
	span.SetAttributes(attribute.String("asset", entry.ID))
	defer span.End()

	assetQuarterly, err := s.fetchQuarterly(ctx, entry)
	if err != nil {
		return assetResult{id: entry.ID, err: err}
	}

	points := series.ComputeRatioPoints(btcQuarterly, assetQuarterly)
	doc := series.BuildSeriesDocument(entry.ID, points, updatedAt)
	if err := s.store.Save(ctx, entry.ID, doc); err != nil {
		return assetResult{id: entry.ID, err: err}
	}
	log.Printf("wrote %s (%d quarters)", entry.ID, len(points))
	return assetResult{id: entry.ID, written: true}
}

// fetchQuarterly pulls the raw series for a catalog entry and resamples it to
// quarter boundaries. An empty fetched series is treated the same as an
// unavailable source.
func (s *SeriesService) fetchQuarterly(ctx context.Context, entry domain.CatalogEntry) (domain.ObservationSeries, error) {
	var (
		raw domain.ObservationSeries
		err error
	)
	switch entry.Source {
	case domain.SourceYahoo:
		raw, err = s.quotes.FetchDailyCloses(ctx, entry.Code, s.start)
	case domain.SourceFRED:
		raw, err = s.econ.FetchSeries(ctx, entry.Code, s.start)
	default:
		err = fmt.Errorf("unknown source %q", entry.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", entry.ID, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fetch %s: no observations returned", entry.ID)
	}
	return series.ResampleQuarterly(raw), nil
}
