package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/auth"
	"github.com/metinatakli/movie-catalog/internal/catalog"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/events"
	"github.com/metinatakli/movie-catalog/internal/ratelimit"
	"github.com/metinatakli/movie-catalog/internal/repository"
	"github.com/metinatakli/movie-catalog/internal/storage"
	appvalidator "github.com/metinatakli/movie-catalog/internal/validator"
	"github.com/metinatakli/movie-catalog/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate
	openapi   *openapi3.T

	auth    *auth.Service
	catalog *catalog.Service
	posters domain.PosterStore
	limiter *ratelimit.FixedWindowLimiter
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redis redis.UniversalClient,
	validator *validator.Validate,
	openapi *openapi3.T,
	authService *auth.Service,
	catalogService *catalog.Service,
	posters domain.PosterStore,
	limiter *ratelimit.FixedWindowLimiter) *Application {

	return &Application{
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redis,
		validator: validator,
		openapi:   openapi,
		auth:      authService,
		catalog:   catalogService,
		posters:   posters,
		limiter:   limiter,
	}
}

func Run() error {
	cfg, displayVersion, err := parseConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	ctx := context.Background()

	shutdownTelemetry, err := InitTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(ctx)

	logger := NewLogger(cfg)

	openapi, err := api.GetSwagger()
	if err != nil {
		return err
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	posters, err := NewPosterStore(cfg)
	if err != nil {
		return err
	}

	publisher, closePublisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	var limiter *ratelimit.FixedWindowLimiter
	if cfg.RateLimit.Enabled {
		limiter, err = ratelimit.NewFixedWindowLimiter(redisClient, "", cfg.RateLimit.Requests, cfg.RateLimit.Window)
		if err != nil {
			return err
		}
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

	catalogService := catalog.NewService(logger, movieRepo, posters, publisher, cfg.BaseUrl)

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		openapi,
		authService,
		catalogService,
		posters,
		limiter,
	)

	scheduler, err := app.startJobs()
	if err != nil {
		return err
	}
	defer func() {
		<-scheduler.Stop().Done()
	}()

	return app.run()
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func NewPosterStore(cfg Config) (domain.PosterStore, error) {
	if cfg.Storage.Driver == StorageMinio {
		store, err := storage.NewMinioStore(
			cfg.Storage.MinioEndpoint,
			cfg.Storage.MinioAccessKey,
			cfg.Storage.MinioSecretKey,
			cfg.Storage.MinioBucket,
			cfg.Storage.MinioUseSSL,
		)
		if err != nil {
			return nil, err
		}

		return store, nil
	}

	store, err := storage.NewFileStore(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	return store, nil
}

// newPublisher connects to RabbitMQ when configured and otherwise drops events.
func newPublisher(cfg Config) (events.Publisher, func(), error) {
	if cfg.AMQP.URL == "" {
		return events.NopPublisher{}, func() {}, nil
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, nil, err
	}

	return publisher, func() { publisher.Close() }, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
