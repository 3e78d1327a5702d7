// Package main is the entry point for the BlogAPI server, a blogging
// backend with users, blogs, tags and comments.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/auth"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/cache/memory"
	rediscache "github.com/Grupo-NovaTI/BlogApi-sub000/internal/cache/redis"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/config"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/handler"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/metrics"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository/postgres"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository/sqlite"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/service"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Optional .env file for local development.
	_ = godotenv.Load()

	cfg := config.MustLoad(*configPath)

	logger := setupLogger(cfg.Logging)
	log.Logger = logger

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting BlogAPI server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	repos, health, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer health.Close()

	var cache repository.Cache
	if cfg.Cache.Enabled {
		if cfg.Redis.Enabled {
			redisCache, err := rediscache.NewCache(ctx, rediscache.Config{
				Addr:     cfg.Redis.Addr(),
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
				PoolSize: cfg.Redis.PoolSize,
			}, logger)
			if err != nil {
				return err
			}
			defer redisCache.Close()
			cache = redisCache
			logger.Info().Str("addr", cfg.Redis.Addr()).Msg("using Redis response cache")
		} else {
			memCache := memory.NewCache()
			defer memCache.Stop()
			cache = memCache
			logger.Info().Msg("using in-memory response cache")
		}
	}

	var blobStore storage.BlobStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          cfg.Storage.Bucket,
			Region:          cfg.Storage.Region,
			Endpoint:        cfg.Storage.Endpoint,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
		}, logger)
		if err != nil {
			return err
		}
		blobStore = s3Store
		logger.Info().Str("bucket", cfg.Storage.Bucket).Msg("image storage enabled")
	}

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	policy := service.OwnerOrAdminPolicy{}

	userService := service.NewUserService(repos.User, repos.Tx, policy, logger)
	authService := service.NewAuthService(userService, issuer, logger)
	blogService := service.NewBlogService(repos.Blog, repos.Tag, repos.BlogTag, repos.Tx, policy, logger)
	tagService := service.NewTagService(repos.Tag, repos.Tx, logger)
	commentService := service.NewCommentService(repos.Comment, repos.Blog, logger)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New("blogapi")
	}

	routerCfg := handler.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(authService, logger),
		UserHandler:    handler.NewUserHandler(userService, blobStore, cfg.Server.MaxUploadSize, logger),
		BlogHandler:    handler.NewBlogHandler(blogService, blobStore, cfg.Server.MaxUploadSize, logger),
		TagHandler:     handler.NewTagHandler(tagService, logger),
		CommentHandler: handler.NewCommentHandler(commentService, logger),
		TokenVerifier:  issuer,
		Health:         health,
		Metrics:        m,
		Cache:          cache,
		CacheTTL:       cfg.Cache.TTL,
		Logger:         logger,
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimitRequests = cfg.RateLimit.Requests
		routerCfg.RateLimitWindow = cfg.RateLimit.Window
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}

// openDatabase opens the configured database backend, runs migrations
// and returns the repository set.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*repository.Repositories, repository.DatabaseHealth, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := postgres.NewDB(ctx, postgres.Config{
			Host:            cfg.Host,
			Port:            cfg.Port,
			User:            cfg.User,
			Password:        cfg.Password,
			Database:        cfg.Database,
			SSLMode:         cfg.SSLMode,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewRepositories(db), db, nil

	default:
		sqliteCfg := sqlite.DefaultConfig(cfg.Path)
		if cfg.JournalMode != "" {
			sqliteCfg.JournalMode = cfg.JournalMode
		}
		if cfg.BusyTimeout > 0 {
			sqliteCfg.BusyTimeout = cfg.BusyTimeout
		}
		if cfg.CacheSize != 0 {
			sqliteCfg.CacheSize = cfg.CacheSize
		}
		if cfg.SynchronousMode != "" {
			sqliteCfg.SynchronousMode = cfg.SynchronousMode
		}
		db, err := sqlite.NewDB(ctx, sqliteCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewRepositories(db), db, nil
	}
}

// setupLogger configures the global zerolog logger from config.
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}
