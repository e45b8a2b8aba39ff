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

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/fintwin-app/fintwin/internal/budget"
	budgetStore "github.com/fintwin-app/fintwin/internal/budget/store"
	"github.com/fintwin-app/fintwin/internal/config"
	"github.com/fintwin-app/fintwin/internal/database"
	"github.com/fintwin-app/fintwin/internal/digest"
	"github.com/fintwin-app/fintwin/internal/enrich"
	"github.com/fintwin-app/fintwin/internal/goal"
	goalStore "github.com/fintwin-app/fintwin/internal/goal/store"
	fintwinHttp "github.com/fintwin-app/fintwin/internal/http"
	budgetHandler "github.com/fintwin-app/fintwin/internal/http/budget"
	digestHandler "github.com/fintwin-app/fintwin/internal/http/digest"
	goalHandler "github.com/fintwin-app/fintwin/internal/http/goal"
	importHandler "github.com/fintwin-app/fintwin/internal/http/importcsv"
	insightsHandler "github.com/fintwin-app/fintwin/internal/http/insights"
	subscriptionHandler "github.com/fintwin-app/fintwin/internal/http/subscription"
	txHandler "github.com/fintwin-app/fintwin/internal/http/transaction"
	"github.com/fintwin-app/fintwin/internal/importer"
	"github.com/fintwin-app/fintwin/internal/insight"
	"github.com/fintwin-app/fintwin/internal/money"
	"github.com/fintwin-app/fintwin/internal/subscription"
	subscriptionStore "github.com/fintwin-app/fintwin/internal/subscription/store"
	"github.com/fintwin-app/fintwin/internal/transaction"
	txStore "github.com/fintwin-app/fintwin/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		transactionService  = transaction.NewService(txStore.New(db))
		budgetService       = budget.NewService(budgetStore.New(db))
		subscriptionService = subscription.NewService(subscriptionStore.New(db))
		goalService         = goal.NewService(goalStore.New(db))
	)

	var insightOpts []insight.Option
	if cfg.Enrich.BaseURL != "" {
		insightOpts = append(insightOpts, insight.WithEnricher(enrich.NewClient(cfg.Enrich.BaseURL, cfg.Enrich.Timeout)))
	}

	insightService := insight.NewService(
		transactionService,
		budgetService,
		subscriptionService,
		goalService,
		cfg.Insights.CacheTTL,
		logger,
		insightOpts...,
	)

	mailer := digest.NewSMTPMailer(cfg.SMTPAddr(), cfg.Digest.SMTPHost, cfg.Digest.SMTPUser, cfg.Digest.SMTPPass, cfg.Digest.From)
	digestService := digest.NewService(
		insightService,
		transactionService,
		budgetService,
		goalService,
		mailer,
		money.Default(),
		logger,
	)

	router := fintwinHttp.New(
		cfg.Auth.JWTSecret,
		cfg.Server.AllowedOrigins,
		txHandler.NewHandler(transactionService),
		budgetHandler.NewHandler(budgetService),
		subscriptionHandler.NewHandler(subscriptionService),
		goalHandler.NewHandler(goalService),
		insightsHandler.NewHandler(insightService),
		importHandler.NewHandler(importer.NewParser(), transactionService),
		digestHandler.NewHandler(digestService),
	)

	scheduler := cron.New()

	if cfg.Digest.Schedule != "" && len(cfg.Digest.Recipients) > 0 {
		_, err := scheduler.AddFunc(cfg.Digest.Schedule, func() {
			digestService.SendAll(context.Background(), cfg.Digest.Recipients)
		})
		if err != nil {
			slog.Error("failed to schedule digest job", "error", err)
			os.Exit(1)
		}

		scheduler.Start()
		defer scheduler.Stop()

		slog.Info("digest job scheduled", "spec", cfg.Digest.Schedule, "recipients", len(cfg.Digest.Recipients))
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		slog.Info("starting server", "addr", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
