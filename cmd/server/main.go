// @title           Classifieds API
// @version         1.0
// @description     CRUD API for classified advertisements with token authentication.
// @host            localhost:8080
// @BasePath        /
//
// @securityDefinitions.apikey TokenAuth
// @in                         header
// @name                       X-Token
// @description                Token returned by /api/v1/login. The header name shown is the default; deployments that set TOKEN_HEADER expect the token under that name instead.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/classifieds/ads-api/internal/api"
	"github.com/classifieds/ads-api/internal/api/handler"
	"github.com/classifieds/ads-api/internal/core/ports"
	"github.com/classifieds/ads-api/internal/core/service"
	"github.com/classifieds/ads-api/internal/infrastructure/audit"
	"github.com/classifieds/ads-api/internal/infrastructure/config"
	"github.com/classifieds/ads-api/internal/infrastructure/db/mongo"
	"github.com/classifieds/ads-api/internal/infrastructure/db/postgres"
	"github.com/classifieds/ads-api/internal/infrastructure/db/redis"
	"github.com/classifieds/ads-api/internal/infrastructure/queue"
	"github.com/classifieds/ads-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel, "ads-api"))

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	pgCfg := postgres.Config{
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		SSLMode:  cfg.Postgres.SSLMode,
	}
	db, err := postgres.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(pgCfg.URL()); err != nil {
		return err
	}
	log.Info().Str("host", cfg.Postgres.Host).Str("database", cfg.Postgres.Database).Msg("postgres ready")

	health := map[string]handler.Pinger{
		"postgres": handler.PingFunc(db.PingContext),
	}

	var cache ports.TokenCache
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return err
		}
		defer client.Close()

		cache = redis.NewTokenCache(client, cfg.Auth.TokenTTL)
		health["redis"] = handler.PingFunc(redis.Ping(client))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token cache enabled")
	}

	auditRepo := audit.NewLogRepository(logger.Component("audit"))
	if cfg.Mongo.URI != "" {
		store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = store.Close(closeCtx)
		}()

		repo := mongo.NewAuditRepository(store.Database())
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		auditRepo = repo
		health["mongo"] = store
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit store enabled")
	}

	// The dispatcher outlives request contexts; it drains once the server
	// has stopped accepting requests.
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(auditRepo, logger.Component("audit")), logger.Component("queue"))
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	authSvc := service.NewAuthService(postgres.NewTokenRepository(db), cache, dispatcher, cfg.Auth.TokenTTL, logger.Component("auth"))
	userSvc := service.NewUserService(
		postgres.NewUserRepository(db),
		service.NewCredentials(cfg.Auth.BcryptCost),
		authSvc,
		dispatcher,
		logger.Component("users"),
	)
	adSvc := service.NewAdvertisementService(postgres.NewAdvertisementRepository(db), authSvc, dispatcher, logger.Component("advertisements"))

	if cfg.Admin.Name != "" {
		if err := userSvc.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Password); err != nil {
			return err
		}
		log.Info().Str("name", cfg.Admin.Name).Msg("admin account ensured")
	}

	e := api.NewRouter(api.Deps{
		Advertisements: adSvc,
		Users:          userSvc,
		Auth:           authSvc,
		TokenHeader:    cfg.Auth.TokenHeader,
		Health:         health,
		Logger:         logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
