// Command server starts the course recommendation HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ai "github.com/fairyhunter13/course-advisor/internal/adapter/ai/real"
	httpserver "github.com/fairyhunter13/course-advisor/internal/adapter/httpserver"
	adapterobs "github.com/fairyhunter13/course-advisor/internal/adapter/observability"
	"github.com/fairyhunter13/course-advisor/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/course-advisor/internal/adapter/retrieval"
	qdrantcli "github.com/fairyhunter13/course-advisor/internal/adapter/vector/qdrant"
	"github.com/fairyhunter13/course-advisor/internal/app"
	"github.com/fairyhunter13/course-advisor/internal/config"
	"github.com/fairyhunter13/course-advisor/internal/domain"
	"github.com/fairyhunter13/course-advisor/internal/observability"
	"github.com/fairyhunter13/course-advisor/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := adapterobs.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, AI and pipeline instrumentation.
	adapterobs.InitMetrics()
	observability.InitPipelineMetrics()

	shutdownTracer, err := adapterobs.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()

	// Optional run audit store.
	var (
		store  domain.RecommendationStore
		pinger app.Pinger
	)
	if cfg.HistoryEnabled() {
		pool, err := postgres.NewPool(ctx, cfg.DBURL)
		if err != nil {
			slog.Error("db connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		runRepo := postgres.NewRunRepo(pool)
		if err := runRepo.EnsureSchema(ctx); err != nil {
			slog.Error("db schema setup failed", slog.Any("error", err))
			os.Exit(1)
		}
		store = runRepo
		pinger = pool
		slog.Info("run audit store enabled")
	} else {
		slog.Info("DB_URL not set; run audit store and history endpoint disabled")
	}

	// AI + vector store adapters.
	aicl := ai.New(cfg)
	qcli := qdrantcli.New(cfg.QdrantURL, cfg.QdrantAPIKey)
	retriever := &retrieval.Retriever{
		Embedder:   aicl,
		Store:      qcli,
		Collection: cfg.QdrantCollection,
	}

	app.EnsureCourseCollection(ctx, cfg, qcli)
	knownLocations := app.LoadKnownLocations(ctx, retriever)

	// Career map: built-in table unless a YAML override is configured.
	careerDomains := usecase.DefaultCareerDomains()
	if cfg.CareerMapPath != "" {
		loaded, err := usecase.LoadCareerDomains(cfg.CareerMapPath)
		if err != nil {
			slog.Error("failed to load career map", slog.String("path", cfg.CareerMapPath), slog.Any("error", err))
			os.Exit(1)
		}
		careerDomains = loaded
		slog.Info("career map loaded", slog.String("path", cfg.CareerMapPath), slog.Int("careers", len(loaded)))
	}

	// Pipeline.
	explainer := &usecase.ExplainService{
		Gen:     aicl,
		Domains: careerDomains,
		Policy: usecase.RetryPolicy{
			MaxAttempts: cfg.ExplainMaxAttempts,
			Timeout:     cfg.ExplainTimeout,
			Backoff:     cfg.ExplainRetryDelay,
		},
		MaxTokens: cfg.ExplainMaxTokens,
	}
	pipeline := &usecase.RecommendService{
		Retriever:      retriever,
		Filter:         usecase.PreferenceFilter{Domains: careerDomains},
		Explainer:      explainer,
		Store:          store,
		KnownLocations: knownLocations,
		InitialK:       cfg.InitialK,
		FinalK:         cfg.FinalK,
		ExplainTopN:    cfg.ExplainTopN,
	}

	dbCheck, qdrantCheck := app.BuildReadinessChecks(cfg, pinger)
	srv := httpserver.NewServer(cfg, pipeline, store, dbCheck, qdrantCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
