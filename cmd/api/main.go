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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/diagnostichumidite/lead-relay/internal/api/router"
	appconfig "github.com/diagnostichumidite/lead-relay/internal/config"
	"github.com/diagnostichumidite/lead-relay/internal/leads"
	"github.com/diagnostichumidite/lead-relay/internal/notify"
	"github.com/diagnostichumidite/lead-relay/internal/observability/metrics"
	"github.com/diagnostichumidite/lead-relay/pkg/logging"
)

func main() {
	// Load configuration (.env is optional, real env wins)
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead-relay API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	mode, err := leads.ParseResponseMode(cfg.ResponseMode)
	if err != nil {
		logger.Error("invalid RESPONSE_MODE", "error", err)
		os.Exit(1)
	}
	policy := leads.FieldPolicy{
		RequireEmail:           cfg.RequireEmail,
		RequirePostalCode:      cfg.RequirePostalCode,
		RequireLastNameAndCity: cfg.RequireLastNameAndCity,
		ResponseMode:           mode,
	}

	intakeClient, err := leads.NewIntakeClient(leads.IntakeConfig{
		EndpointURL: cfg.IntakeURL,
		Timeout:     cfg.IntakeTimeout,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("failed to configure intake client", "error", err)
		os.Exit(1)
	}

	guard := newGuard(cfg, logger)
	leadMetrics := metrics.NewLeadMetrics(nil)

	var emailSender notify.EmailSender
	if s := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); s != nil {
		emailSender = s
	} else if cfg.NotifyEmail != "" {
		logger.Warn("sendgrid not configured, owner notifications are log-only")
		emailSender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(emailSender, cfg.NotifyEmail, cfg.NotifyName, leadMetrics, logger)

	workflowCfg := leads.WorkflowConfig{
		Policy:  policy,
		Sender:  intakeClient,
		Guard:   guard,
		Logger:  logger,
		Metrics: leadMetrics,
	}
	if notifier != nil {
		workflowCfg.OnAccepted = notifier.LeadAccepted
	}
	workflow, err := leads.NewWorkflow(workflowCfg)
	if err != nil {
		logger.Error("failed to build submission workflow", "error", err)
		os.Exit(1)
	}

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leads.NewHandler(workflow, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// newGuard prefers a Redis-backed in-flight guard when REDIS_ADDR is set and
// reachable, falling back to the in-process guard otherwise.
func newGuard(cfg *appconfig.Config, logger *logging.Logger) leads.Guard {
	if cfg.RedisAddr == "" {
		return leads.NewMemoryGuard()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, using in-process guard", "error", err)
		return leads.NewMemoryGuard()
	}
	return leads.NewRedisGuard(client, cfg.GuardTTL)
}
