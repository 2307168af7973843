package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/app"
	"github.com/metinatakli/movie-catalog/internal/auth"
	"github.com/metinatakli/movie-catalog/internal/catalog"
	"github.com/metinatakli/movie-catalog/internal/ratelimit"
	"github.com/metinatakli/movie-catalog/internal/repository"
	"github.com/metinatakli/movie-catalog/internal/storage"
	appvalidator "github.com/metinatakli/movie-catalog/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App     *app.Application
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Posters *storage.FileStore
	Auth    *auth.Service
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()

	openapi, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	posters, err := storage.NewFileStore(cfg.Storage.Path)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	limiter, err := ratelimit.NewFixedWindowLimiter(redisClient, "integration", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	userRepo := repository.NewPostgresUserRepository(db)
	refreshTokenRepo := repository.NewPostgresRefreshTokenRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)

	authService := auth.NewService(
		logger,
		userRepo,
		auth.NewRefreshTokenStore(refreshTokenRepo, cfg.Auth.RefreshTokenTTL),
		auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.AccessTokenTTL),
		cfg.Auth.RotateRefreshTokens,
	)

	catalogService := catalog.NewService(logger, movieRepo, posters, nil, cfg.BaseUrl)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		openapi,
		authService,
		catalogService,
		posters,
		limiter,
	)

	return &TestApp{
		App:     application,
		DB:      db,
		Redis:   redisClient,
		Posters: posters,
		Auth:    authService,
	}, nil
}

func (a *TestApp) Close() {
	a.Redis.Close()
	a.DB.Close()
}
