package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rzdmap/rzdmap-api/internal/api"
	"github.com/rzdmap/rzdmap-api/internal/api/handler"
	"github.com/rzdmap/rzdmap-api/internal/core/service"
	mongodb "github.com/rzdmap/rzdmap-api/internal/infrastructure/db/mongo"
	redisdb "github.com/rzdmap/rzdmap-api/internal/infrastructure/db/redis"
	"github.com/rzdmap/rzdmap-api/internal/infrastructure/queue"
	"github.com/rzdmap/rzdmap-api/internal/infrastructure/token"
	"github.com/rzdmap/rzdmap-api/internal/pkg/config"
	"github.com/rzdmap/rzdmap-api/pkg/logger"
)

const (
	serviceName     = "rzdmap-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{Service: serviceName})
		boot.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	issuer, err := token.NewJWTIssuer(token.Config{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer rdb.Close()

	// --- Sign-in audit pipeline ---
	auditRepo := mongodb.NewSignInEventRepository(db)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, service.NewSignInAuditService(auditRepo, log), log)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	// --- Stores ---
	guard := redisdb.NewLockoutGuard(rdb, redisdb.LockoutConfig{
		MaxAttempts: cfg.Lockout.MaxAttempts,
		Window:      cfg.Lockout.Window,
	})
	users := mongodb.NewCredentialStore(db,
		mongodb.WithSignInGuard(guard),
		mongodb.WithSignInRecorder(dispatcher),
		mongodb.WithLogger(log),
	)
	roles := mongodb.NewRoleStore(db)
	mapLines := mongodb.NewMapLineRepository(db)

	if err := mongodb.EnsureIndexes(ctx, users, roles, mapLines, auditRepo); err != nil {
		log.Fatal().Err(err).Msg("mongodb indexes")
	}

	// --- Services ---
	var authOpts []service.AuthOption
	if cfg.Mongo.Transactions {
		authOpts = append(authOpts, service.WithTransactor(mongodb.NewTransactor(client)))
	}
	authService := service.NewAuthService(users, roles, issuer, log, authOpts...)
	mapLineService := service.NewMapLineService(mapLines, log)

	e := api.NewRouter(api.Deps{
		Auth:              authService,
		MapLines:          mapLineService,
		Tokens:            issuer,
		Health:            []handler.Pinger{mongodb.NewPinger(client), redisdb.NewPinger(rdb)},
		Logger:            log,
		RateLimitRPS:      cfg.RateLimitRPS,
		MetricsRegisterer: prometheus.DefaultRegisterer,
		MetricsGatherer:   prometheus.DefaultGatherer,
		EnableSwagger:     !cfg.IsProduction(),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	stopWorkers()
	dispatcher.Wait()
}
