// Command crm-server serves the CRM REST API.
//
//	@title						CRM API
//	@version					1.0
//	@description				Client tracking with configurable status types, action flags and daily reports.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crmdesk/crm-system/internal/api"
	"github.com/crmdesk/crm-system/internal/core/service"
	"github.com/crmdesk/crm-system/internal/infrastructure/db/mongo"
	"github.com/crmdesk/crm-system/internal/infrastructure/db/redis"
	"github.com/crmdesk/crm-system/internal/infrastructure/http/handlers"
	"github.com/crmdesk/crm-system/internal/pkg/config"
	"github.com/crmdesk/crm-system/pkg/logger"

	_ "github.com/crmdesk/crm-system/docs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		Pretty:    !cfg.IsProduction(),
		Component: "crm-server",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer rdb.Close()

	repos := mongo.NewRepositories(db)
	if err := repos.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	taxonomy := service.NewTaxonomyService(repos.ClientStatuses, repos.ActionStatuses, log)
	if cfg.SeedDefaults {
		n, err := taxonomy.SeedDefaults(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("seeding action status types failed")
		}
		if n > 0 {
			log.Info().Int("count", n).Msg("seeded default action status types")
		}
	}

	e := api.NewRouter(api.Services{
		Auth:     service.NewAuthService(repos.Users, redis.NewRevocations(rdb), cfg.JWTSecret, cfg.TokenTTL),
		Clients:  service.NewClientService(repos.Clients, repos.ActionStatuses, log),
		Taxonomy: taxonomy,
		Reports:  service.NewReportService(repos.Reports, log),
	}, api.Options{
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
		Readiness: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("crm-server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
