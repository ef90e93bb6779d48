package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/config"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/infra"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/router"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/session"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ttl := time.Duration(cfg.SessionTTLMin) * time.Minute

	// Session backend: redis shares sessions across instances and carries the
	// report email queue; memory is the single-process default.
	var (
		sesiones   session.Store
		rdb        *redis.Client
		dispatcher *worker.Dispatcher
	)
	if cfg.SessionBackend == "redis" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		sesiones = session.NewRedisStore(rdb, ttl)
		dispatcher = worker.NewDispatcher(rdb)
	} else {
		sesiones = session.NewMemoryStore(ttl)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Worker pool for the settlement report email — only with redis.
	if rdb != nil {
		mailer := infra.NewMailer(cfg)
		handlers := &worker.WorkerHandlers{
			Reporte: worker.NewReporteWorker(mailer),
		}
		worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
	}

	r := router.New(cfg, sesiones, rdb, dispatcher, "web/templates/*.html")

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("comanda web listening on :%d (API: %s)", cfg.Port, cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
