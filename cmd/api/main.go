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

	httpadapter "github.com/bennyclifton-svg/assemble.ai-sub002/internal/adapters/http"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/bootstrap"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/config"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/observability/logging"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("api", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpMetrics := metrics.NewHTTPServerMetrics("api")

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		Logger:         logger,
		FilingObserver: httpMetrics,
	})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	router := httpadapter.NewRouter(httpadapter.RouterDeps{
		Uploader: app.UploadUC,
		Reader:   app.DocsUC,
		Content:  app.DocsUC,
		Remover:  app.DocsUC,
		Tree:     app.TreeUC,
		Register: app.RegisterUC,
		Settings: app.SettingsUC,
	}, httpadapter.RouterOptions{
		Metrics:        httpMetrics,
		RateLimitRPS:   cfg.APIRateLimitRPS,
		RateLimitBurst: cfg.APIRateLimitBurst,
		MaxInFlight:    256,
	}).Handler()

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("api listening on :%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("api shutdown error: %v", err)
	}
}
