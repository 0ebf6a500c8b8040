package main

import (
	"context"
	"log"

	"btc-yardstick/internal/config"
	"btc-yardstick/internal/domain"
	"btc-yardstick/internal/provider"
	"btc-yardstick/internal/repository"
	"btc-yardstick/internal/service"
	"btc-yardstick/pkg/tracing"

	"github.com/joho/godotenv"
)

var (
	loadEnvFunc     = godotenv.Load
	loadConfigFunc  = config.Load
	loadCatalogFunc = config.LoadCatalog
	initTracerFunc  = tracing.InitTracer
	refreshAllFunc  = func(svc *service.SeriesService, ctx context.Context) *domain.RunSummary {
		return svc.RefreshAll(ctx)
	}
	fatalfFunc = log.Fatalf
)

// main regenerates every tracked document once and exits. Per-asset failures
// are logged and reflected in the summary but never change the exit code;
// only configuration errors do.
func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	catalog, err := loadCatalogFunc(cfg.CatalogFile)
	if err != nil {
		fatalfFunc("catalog configuration error: %v", err)
		return
	}

	ctx := context.Background()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		fatalfFunc("failed to initialize tracer: %v", err)
		return
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	repo := repository.NewDocumentRepository(cfg.DataDir, tracer)
	yahoo := provider.NewYahooClient(tracer)
	fred := provider.NewFREDClient(tracer)
	svc := service.NewSeriesService(tracer, yahoo, fred, repo, catalog, cfg.StartDate)

	summary := refreshAllFunc(svc, ctx)
	for id, msg := range summary.Errors {
		log.Printf("asset %s failed: %s", id, msg)
	}
	log.Printf("done: %d/%d documents written to %s", len(summary.Written), len(catalog), cfg.DataDir)
}
