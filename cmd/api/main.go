package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartfulmiles/trip-leads/internal/api/router"
	appconfig "github.com/heartfulmiles/trip-leads/internal/config"
	"github.com/heartfulmiles/trip-leads/internal/googleauth"
	"github.com/heartfulmiles/trip-leads/internal/leads"
	"github.com/heartfulmiles/trip-leads/internal/notify"
	"github.com/heartfulmiles/trip-leads/internal/observability/metrics"
	"github.com/heartfulmiles/trip-leads/internal/sheets"
	"github.com/heartfulmiles/trip-leads/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting trip-leads API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	submissionMetrics := metrics.NewSubmissionMetrics(prometheus.DefaultRegisterer)

	broker := googleauth.New(
		cfg.GoogleTokenURL,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRefreshToken,
		googleauth.WithLogger(logger),
		googleauth.WithHTTPClient(&http.Client{Timeout: cfg.OutboundTimeout}),
	)

	recorder := sheets.NewRecorder(
		cfg.SheetsSpreadsheetID,
		cfg.SheetsSheetName,
		sheets.WithBaseURL(cfg.SheetsBaseURL),
		sheets.WithLogger(logger),
	)

	sender := newSender(cfg, logger)

	leadsService := leads.NewService(broker, recorder, sender, submissionMetrics, logger)
	leadsHandler := leads.NewHandler(leadsService, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// newSender selects the confirmation email provider. Gmail is the default and
// rides the per-submission bearer token; SendGrid uses its own API key.
func newSender(cfg *appconfig.Config, logger *logging.Logger) notify.Sender {
	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			return sender
		}
		logger.Warn("sendgrid not configured, falling back to stub sender")
		return notify.NewStubSender(logger)
	case "stub":
		return notify.NewStubSender(logger)
	default:
		return notify.NewGmailSender(
			cfg.FromEmail,
			cfg.OpsEmail,
			notify.WithBaseURL(cfg.GmailBaseURL),
			notify.WithLogger(logger),
		)
	}
}
