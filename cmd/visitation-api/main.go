// Command visitation-api serves the video visitation HTTP API.
//
// @title                       Visitation API
// @version                     1.0
// @description                 Scheduling and joining supervised video visits between residents, visitors and attorneys.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/visitlink/visitation-api/internal/api"
	"github.com/visitlink/visitation-api/internal/core/service"
	"github.com/visitlink/visitation-api/internal/infrastructure/config"
	mongodb "github.com/visitlink/visitation-api/internal/infrastructure/db/mongo"
	redisdb "github.com/visitlink/visitation-api/internal/infrastructure/db/redis"
	"github.com/visitlink/visitation-api/internal/infrastructure/http/handlers"
	"github.com/visitlink/visitation-api/internal/infrastructure/videoprovider"
	"github.com/visitlink/visitation-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("visitation-api stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "visitation-api"})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "visitation-api",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "visitation-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	calls := mongodb.NewCallRepository(db)
	facilities := mongodb.NewFacilityRepository(db)
	contacts := mongodb.NewContactRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, calls, facilities, contacts); err != nil {
		return err
	}
	sessions := redisdb.NewRegistrationStore(rdb)

	// --- Services ---
	tokens := videoprovider.New(videoprovider.Config{
		Provider:           cfg.Video.Provider,
		LiveKitURL:         cfg.Video.LiveKitURL,
		LiveKitAPIKey:      cfg.Video.LiveKitAPIKey,
		LiveKitAPISecret:   cfg.Video.LiveKitAPISecret,
		TwilioAccountSID:   cfg.Video.TwilioAccountSID,
		TwilioAPIKeySID:    cfg.Video.TwilioAPIKeySID,
		TwilioAPIKeySecret: cfg.Video.TwilioAPIKeySecret,
	}, log)
	log.Info().Str("provider", tokens.Name()).Msg("video token provider selected")

	router := api.NewRouter(api.Dependencies{
		Auth:          service.NewAuthService(users, cfg.JWTSecret, cfg.AccessTokenTTL),
		Calls:         service.NewCallService(calls, users, tokens, cfg.Video.TokenTTL, log.With().Str("component", "calls").Logger()),
		Registration:  service.NewRegistrationService(users, sessions, cfg.JWTSecret, cfg.VerificationTokenTTL, log.With().Str("component", "registration").Logger()),
		Users:         service.NewUserService(users, log.With().Str("component", "users").Logger()),
		Facilities:    service.NewFacilityService(facilities, log.With().Str("component", "facilities").Logger()),
		Contacts:      service.NewContactService(contacts, users, log.With().Str("component", "contacts").Logger()),
		UserLookup:    users,
		Readiness:     handlers.NewHealthDependenciesHandler(db, rdb),
		JWTSecret:     cfg.JWTSecret,
		Logger:        log,
		EnableSwagger: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	return srv.Shutdown(shutdownCtx)
}
