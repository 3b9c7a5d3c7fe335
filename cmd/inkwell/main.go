package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell-blog/inkwell/internal/app"
	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/comments"
	"github.com/inkwell-blog/inkwell/internal/platform/cache"
	"github.com/inkwell-blog/inkwell/internal/platform/db"
	"github.com/inkwell-blog/inkwell/internal/posts"
	"github.com/inkwell-blog/inkwell/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Listing correctness does not depend on the cache.
		logger.Warn("redis unavailable, post list cache disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	userRepo := users.NewRepository(pool)
	userService := users.NewService(userRepo)
	usersHandler := users.NewHandler(logger, userService)

	codec := auth.NewTokenCodec(cfg.TokenSecret, cfg.TokenTTL)
	resolver := auth.NewResolver(codec, userRepo, auth.TokenRolePolicy{})
	guard := auth.Middleware{Resolver: resolver, Logger: logger}
	authService := auth.NewService(userRepo, codec)
	authHandler := auth.NewHandler(logger, authService)

	postRepo := posts.NewRepository(pool)
	postCache := posts.NewListCache(redisClient, cfg.PostCacheTTL, logger)
	postService := posts.NewService(postRepo, postCache)
	postsHandler := posts.NewHandler(logger, postService, guard)

	commentRepo := comments.NewRepository(pool)
	commentService := comments.NewService(commentRepo)
	commentsHandler := comments.NewHandler(logger, commentService, guard)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Guard:           guard,
		AuthHandler:     authHandler,
		UsersHandler:    usersHandler,
		PostsHandler:    postsHandler,
		CommentsHandler: commentsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
