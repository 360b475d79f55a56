package main

import (
	"net/http"
	"os"
	"time"

	"grafik/internal/amqp"
	"grafik/internal/chart"
	"grafik/internal/cli"
	apphttp "grafik/internal/http"
	"grafik/internal/insight"
	applog "grafik/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// AMQP is optional: without it the snapshot export endpoint reports
	// unavailable but everything else works.
	var publisher apphttp.SnapshotPublisher
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, snapshot export disabled", applog.FieldError, err)
	} else {
		defer amqpClient.Close()
		publisher = amqpClient
	}

	analyzer := insight.New(insight.Config{
		APIKey:  cfg.AnthropicAPIKey,
		Model:   cfg.AnthropicModel,
		Timeout: cfg.InsightTimeout,
	})
	if analyzer.Enabled() {
		logger.Info("AI analysis enabled")
	} else {
		logger.Info("AI analysis disabled - no ANTHROPIC_API_KEY provided")
	}

	view := chart.NewController(analyzer)

	srv := apphttp.NewServer(":"+cfg.Port, repo, view, publisher, apphttp.Options{
		InsightTimeout:   cfg.InsightTimeout,
		SnapshotCacheTTL: cfg.SnapshotCacheTTL,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 60 * time.Second // analysis calls can be slow
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := cli.ShutdownContext(30 * time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
	})

	logger.Info("Starting grafik server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
