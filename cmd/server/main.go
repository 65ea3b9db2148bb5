// Command server runs the name registry HTTP service.
//
// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service
// packages. Every backing dependency has an in-memory fallback so the server
// runs without infrastructure in development.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/Kamduis/name-combo/internal/audit"
	httpapi "github.com/Kamduis/name-combo/internal/http"
	"github.com/Kamduis/name-combo/internal/jwt"
	personHandler "github.com/Kamduis/name-combo/internal/person/handler"
	personMetrics "github.com/Kamduis/name-combo/internal/person/metrics"
	"github.com/Kamduis/name-combo/internal/person/service"
	"github.com/Kamduis/name-combo/internal/person/store"
	"github.com/Kamduis/name-combo/internal/platform/config"
	"github.com/Kamduis/name-combo/internal/platform/httpserver"
	"github.com/Kamduis/name-combo/internal/platform/logger"
	"github.com/Kamduis/name-combo/internal/platform/metrics"
	platformredis "github.com/Kamduis/name-combo/internal/platform/redis"
	"github.com/Kamduis/name-combo/internal/platform/secrets"
	"github.com/Kamduis/name-combo/internal/render"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := make(map[string]httpapi.HealthChecker)

	// Persistence: PostgreSQL when configured, in-memory otherwise.
	var personStore service.PersonStore
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		personStore = store.NewPostgres(db)
		health["postgres"] = dbHealth{db}
		log.Info("using postgres person store")
	} else {
		personStore = store.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory person store")
	}

	// Render cache: Redis when configured, in-memory otherwise.
	var cache service.RenderCache
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache = render.NewRedis(redisClient.Client, cfg.RenderCacheTTL)
		health["redis"] = redisClient
		log.Info("using redis render cache", "ttl", cfg.RenderCacheTTL)
	} else {
		cache = render.NewMemory(cfg.RenderCacheTTL)
		log.Warn("REDIS_URL not set, using in-memory render cache")
	}

	// Audit trail: always stored locally, streamed to Kafka when configured.
	auditStore := audit.NewInMemoryStore()
	var emitters []audit.Emitter
	var worker *audit.Worker
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaEmitter, err := audit.NewKafkaEmitter(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return err
		}
		defer kafkaEmitter.Close()
		worker = audit.NewWorker(kafkaEmitter, log, 256)
		emitters = append(emitters, worker)
		log.Info("streaming audit events to kafka",
			"brokers", cfg.Kafka.Brokers,
			"topic", cfg.Kafka.AuditTopic,
		)
	}
	publisher := audit.NewPublisher(auditStore, emitters...)

	// Admin token: only the hash stays in memory. A fresh token is generated
	// and logged in development when none is configured.
	adminToken := cfg.AdminToken
	if adminToken == "" {
		adminToken, err = secrets.Generate()
		if err != nil {
			return err
		}
		log.Warn("ADMIN_TOKEN not set, generated a development token", "token", adminToken)
	}
	adminTokenHash, err := secrets.Hash(adminToken)
	if err != nil {
		return err
	}

	jwtService := jwt.NewService(cfg.JWTSigningKey, "name-combo", "name-combo-api")

	svc := service.New(
		personStore,
		service.WithLogger(log),
		service.WithRenderCache(cache),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(personMetrics.New()),
	)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:  log,
		Metrics: metrics.New(),
		Person:  personHandler.New(svc, publisher, log, jwt.NewMiddlewareAdapter(jwtService), adminTokenHash),
		Health:  health,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting name-combo server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if worker != nil {
		g.Go(func() error {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

type dbHealth struct {
	db *sql.DB
}

func (h dbHealth) Health(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
