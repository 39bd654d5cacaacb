package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/thiagofdruzian/ERP/internal/config"
	"github.com/thiagofdruzian/ERP/internal/infra"
	"github.com/thiagofdruzian/ERP/internal/repository"
	"github.com/thiagofdruzian/ERP/internal/router"
	"github.com/thiagofdruzian/ERP/internal/service"
	"github.com/thiagofdruzian/ERP/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty in dev, JSON in prod
	zerolog.TimeFieldFormat = time.RFC3339
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bootstrap admin; a blank password in config skips it with a warning.
	bootstrap := service.NewAuthService(repository.NewUsuarioRepository(db), cfg, nil)
	if created, err := bootstrap.EnsureDefaultAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword); err != nil {
		log.Warn().Err(err).Msg("bootstrap admin not created")
	} else if created {
		log.Info().Str("username", cfg.BootstrapAdminUsername).Msg("bootstrap admin created")
	}

	// Audit pipeline: dispatcher (inside router) → jobs:audit → pool → audit_logs,
	// with DLQ replay while the breaker is closed.
	auditCB := infra.NewCircuitBreaker(infra.AuditQueueCBConfig())
	pool := worker.NewPool(rdb, repository.NewAuditRepository(db))
	queues := []string{worker.QueueAudit}
	if mailer := infra.NewMailer(cfg); mailer.Enabled() {
		pool.WithEmail(worker.NewEmailWorker(repository.NewQuoteRepository(db), mailer))
		queues = append(queues, worker.QueueEmail)
		log.Info().Str("smtp_host", cfg.SMTPHost).Msg("email delivery enabled")
	}
	pool.Start(ctx, cfg.WorkerPoolSize)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		RDB:    rdb,
		CB:     auditCB,
		Queues: queues,
	})

	r := router.New(ctx, cfg, db, rdb, auditCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("ERP pricing backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close")
	}
	log.Info().Msg("server exited")
}
