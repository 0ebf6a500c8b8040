package main

import (
	"context"
	"fmt"
	"testing"

	"btc-yardstick/internal/config"
	"btc-yardstick/internal/domain"
	"btc-yardstick/internal/service"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func stubFetchDeps(t *testing.T) {
	t.Helper()

	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origLoadCatalog := loadCatalogFunc
	origInitTracer := initTracerFunc
	origRefreshAll := refreshAllFunc
	origFatalf := fatalfFunc
	t.Cleanup(func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		loadCatalogFunc = origLoadCatalog
		initTracerFunc = origInitTracer
		refreshAllFunc = origRefreshAll
		fatalfFunc = origFatalf
	})

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{DataDir: t.TempDir()}
	}
	loadCatalogFunc = func(string) (domain.Catalog, error) {
		return domain.DefaultCatalog(), nil
	}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	refreshAllFunc = func(svc *service.SeriesService, ctx context.Context) *domain.RunSummary {
		return &domain.RunSummary{
			Written: []string{"btc_usd"},
			Errors:  map[string]string{"sp500": "upstream 500"},
		}
	}
	fatalfFunc = func(format string, v ...any) {
		t.Fatalf("unexpected fatal: "+format, v...)
	}
}

func TestMainCompletesDespiteAssetErrors(t *testing.T) {
	stubFetchDeps(t)
	main()
}

func TestMainFatalOnCatalogError(t *testing.T) {
	stubFetchDeps(t)

	loadCatalogFunc = func(string) (domain.Catalog, error) {
		return nil, fmt.Errorf("invalid catalog: missing base")
	}

	var fatal string
	fatalfFunc = func(format string, v ...any) {
		fatal = fmt.Sprintf(format, v...)
	}

	main()

	if fatal == "" {
		t.Fatal("expected fatal exit for catalog configuration error")
	}
}
