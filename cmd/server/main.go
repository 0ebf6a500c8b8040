package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btc-yardstick/internal/bot"
	"btc-yardstick/internal/config"
	"btc-yardstick/internal/handler"
	"btc-yardstick/internal/job"
	"btc-yardstick/internal/provider"
	"btc-yardstick/internal/repository"
	"btc-yardstick/internal/service"
	"btc-yardstick/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "btc-yardstick/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	loadCatalogFunc        = config.LoadCatalog
	initTracerFunc         = tracing.InitTracer
	startTelegramBotFunc   = bot.StartTelegramBot
	registerJobFunc        = func(j *job.RefreshJob) error { return j.Register() }
	startJobFunc           = func(j *job.RefreshJob) { j.Start() }
	runJobNowFunc          = func(j *job.RefreshJob) { go j.RunNow() }
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           BTC Yardstick API
// @version         1.0
// @description     Quarterly purchasing-power series for Bitcoin against gold, equities, and housing.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	catalog, err := loadCatalogFunc(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("catalog configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Repository, providers, and the refresh pipeline
	repo := repository.NewDocumentRepository(cfg.DataDir, tracer)
	yahoo := provider.NewYahooClient(tracer)
	fred := provider.NewFREDClient(tracer)
	seriesService := service.NewSeriesService(tracer, yahoo, fred, repo, catalog, cfg.StartDate)

	// Telegram bot (optional) and scheduled refreshes
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	notifier := startTelegramBotFunc(catalog, repo, cfg.TelegramChatID)

	refreshJob := job.NewRefreshJob(tracer, seriesService, notifier, cfg.RefreshCron)
	if err := registerJobFunc(refreshJob); err != nil {
		log.Fatalf("invalid REFRESH_CRON: %v", err)
	}
	startJobFunc(refreshJob)
	defer refreshJob.Stop()

	if cfg.RunOnStart {
		runJobNowFunc(refreshJob)
	}

	// Routes: API, swagger, and the static chart viewer
	h := handler.New(tracer, seriesService, repo, catalog)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("btc-yardstick"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.StaticFile("/", "./web/index.html")
	r.StaticFile("/app.js", "./web/app.js")
	r.Static("/data", cfg.DataDir)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
