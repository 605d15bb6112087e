package main

import (
	"context"
	"errors"
	"market/internal/cache"
	"market/internal/config"
	"market/internal/events"
	"market/internal/handlers"
	"market/internal/metrics"
	"market/internal/middleware"
	"market/internal/repo"
	"market/internal/service"
	"market/internal/storage"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём регистратор zap: dev по умолчанию, prod по LOG_LEVEL
	newLogger := zap.NewDevelopment
	if cfg.LogLevel == "prod" {
		newLogger = zap.NewProduction
	}
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	images := newImageStorage(ctx, cfg, sugar)
	itemCache := newItemCache(ctx, cfg, sugar)
	defer func() {
		if err := itemCache.Close(); err != nil {
			sugar.Warnw("failed to close item cache", "error", err)
		}
	}()
	publisher := newPublisher(cfg, sugar)
	defer publisher.Close()
	m := metrics.New()

	tx := repo.NewTxManager(gormDB)
	userRepo := repo.NewUserRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)
	cascade := repo.NewCascade(gormDB)

	svc := handlers.Services{
		Users:        service.NewUserService(userRepo, cascade, tx, itemCache, service.TokenConfig{Secret: cfg.AuthSecret, TTL: cfg.TokenTTL}, sugar),
		Items:        service.NewItemService(itemRepo, userRepo, cascade, tx, images, itemCache, publisher, m, sugar),
		Comments:     service.NewCommentService(repo.NewCommentRepository(gormDB), itemRepo, userRepo, tx, sugar),
		Negotiations: service.NewNegotiationService(repo.NewNegotiationRepository(gormDB), itemRepo, userRepo, tx, publisher, m, sugar),
		Reviews:      service.NewReviewService(repo.NewReviewRepository(gormDB), itemRepo, userRepo, tx, publisher, m, sugar),
		Chats:        service.NewChatService(repo.NewChatRepository(gormDB), itemRepo, userRepo, tx, publisher, m, sugar),
	}

	h := handlers.NewHandler(svc, m, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DBDriver", cfg.DBDriver,
		"S3", cfg.S3Endpoint != "",
		"Redis", cfg.RedisAddr != "",
		"NATS", cfg.NatsURL != "",
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}

// newImageStorage: MinIO/S3, если задан S3_ENDPOINT, иначе локальный каталог.
func newImageStorage(ctx context.Context, cfg *config.Config, sugar *zap.SugaredLogger) storage.ImageStorage {
	if cfg.S3Endpoint != "" {
		s3, err := storage.NewS3Storage(ctx, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL, sugar)
		if err != nil {
			sugar.Fatalw("failed to initialize S3 storage", "endpoint", cfg.S3Endpoint, "error", err)
		}
		return s3
	}
	local, err := storage.NewLocalStorage(cfg.ImageDir, cfg.ImageBaseURL, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize image dir", "dir", cfg.ImageDir, "error", err)
	}
	return local
}

// newItemCache: Redis, если задан REDIS_ADDR. Недоступный Redis не мешает старту.
func newItemCache(ctx context.Context, cfg *config.Config, sugar *zap.SugaredLogger) cache.Closer {
	if cfg.RedisAddr == "" {
		return cache.Noop{}
	}
	c, err := cache.NewRedisItemCache(ctx, cfg.RedisAddr, cfg.ItemCacheTTL)
	if err != nil {
		sugar.Warnw("redis unavailable, item cache disabled", "addr", cfg.RedisAddr, "error", err)
		return cache.Noop{}
	}
	return c
}

type closablePublisher interface {
	events.Publisher
	Close()
}

type noopCloser struct{ events.Noop }

func (noopCloser) Close() {}

// newPublisher: NATS, если задан NATS_URL.
func newPublisher(cfg *config.Config, sugar *zap.SugaredLogger) closablePublisher {
	if cfg.NatsURL == "" {
		return noopCloser{}
	}
	p, err := events.NewNATSPublisher(cfg.NatsURL)
	if err != nil {
		sugar.Warnw("nats unavailable, events disabled", "url", cfg.NatsURL, "error", err)
		return noopCloser{}
	}
	return p
}
