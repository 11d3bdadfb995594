package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly/expense-tracker/internal/api"
	"github.com/ledgerly/expense-tracker/internal/api/handler"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
	"github.com/ledgerly/expense-tracker/internal/core/service"
	mongodb "github.com/ledgerly/expense-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/ledgerly/expense-tracker/internal/infrastructure/db/redis"
	"github.com/ledgerly/expense-tracker/internal/infrastructure/job"
	"github.com/ledgerly/expense-tracker/internal/infrastructure/mq"
	"github.com/ledgerly/expense-tracker/internal/infrastructure/queue"
	"github.com/ledgerly/expense-tracker/internal/pkg/config"
	"github.com/ledgerly/expense-tracker/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title          Expense Tracker API
// @version        1.0
// @description    Session management, categories, transactions and admin reporting.
// @BasePath       /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		File:    cfg.LogFile,
		Service: "expense-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	categories := mongodb.NewCategoryRepository(db)
	expenses := mongodb.NewExpenseRepository(db)
	auditLogs := mongodb.NewAuditRepository(db)
	denylist := redisdb.NewDenylist(rdb)

	// --- Audit fan-out (optional) ---
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var sink ports.AuditSink
	var dispatcher *queue.Dispatcher
	if cfg.AMQP.URL != "" {
		publisher, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return err
		}
		defer publisher.Close()

		dispatcher = queue.NewDispatcher(cfg.AMQP.Workers, publisher, logger.Component("audit-fanout"))
		dispatcher.Start(workerCtx)
		sink = dispatcher
		log.Info().Str("exchange", cfg.AMQP.Exchange).Int("workers", cfg.AMQP.Workers).Msg("audit fan-out enabled")
	}

	// --- Services ---
	tokens, err := service.NewTokenService(service.TokenConfig{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	})
	if err != nil {
		return err
	}

	auditSvc := service.NewAuditService(auditLogs, sink, log)
	authSvc := service.NewAuthService(users, tokens, auditSvc, denylist, log)
	categorySvc := service.NewCategoryService(categories, auditSvc, log)
	expenseSvc := service.NewExpenseService(expenses, categories, auditSvc, log)
	adminSvc := service.NewAdminService(users, expenses, redisdb.NewAnalyticsCache(rdb, cfg.Analytics.CacheTTL), auditSvc, log)

	if cfg.Admin.Email != "" {
		if _, err := service.SeedAdmin(ctx, users, service.AdminSeed{
			Name:     cfg.Admin.Name,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		}, log); err != nil {
			return err
		}
	}

	// --- Background jobs ---
	jobLog := logger.Component("scheduler")
	scheduler := job.NewScheduler(jobLog)
	if err := scheduler.Add(cfg.Analytics.RefreshSpec, job.NewAnalyticsWarmJob(adminSvc, jobLog)); err != nil {
		return err
	}
	scheduler.Start()

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Log:          logger.Component("http"),
		Auth:         authSvc,
		Categories:   categorySvc,
		Expenses:     expenseSvc,
		Admin:        adminSvc,
		Audit:        auditSvc,
		Tokens:       tokens,
		Users:        users,
		Denylist:     denylist,
		Limiter:      redisdb.NewFixedWindowLimiter(rdb, cfg.RateLimit.PerMinute, time.Minute),
		Cookie:       handler.CookieConfig{Secure: !cfg.IsDevelopment(), MaxAge: tokens.RefreshTTL()},
		AllowOrigins: []string{cfg.ClientURL},
		Checks: map[string]handler.DependencyCheck{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	scheduler.Stop(shutdownCtx)
	stopWorkers()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	log.Info().Msg("server stopped")
	return nil
}
