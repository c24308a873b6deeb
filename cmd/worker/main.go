package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/bootstrap"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/config"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/observability/logging"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerMetrics := metrics.NewWorkerMetrics("worker")

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		Logger:         logger,
		FilingObserver: workerMetrics,
	})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	metricsServer := &http.Server{
		Addr:         ":" + cfg.WorkerMetricsPort,
		Handler:      workerMetrics.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("worker metrics listening on :%s", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("worker metrics server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	log.Printf("worker subscribed to %s", cfg.NATSHintSubject)
	err = app.Queue.SubscribeFilingHints(ctx, func(handlerCtx context.Context, documentID string, hint domain.ClassificationHint) error {
		fileCtx, cancel := context.WithTimeout(handlerCtx, 30*time.Second)
		defer cancel()

		workerMetrics.StartHint()
		start := time.Now()
		fileErr := app.HintUC.FileByHint(fileCtx, documentID, hint)
		workerMetrics.FinishHint("worker", time.Since(start), fileErr)
		return fileErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
