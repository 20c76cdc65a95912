package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wganko/liff-for-auto-responce/cache"
	"github.com/wganko/liff-for-auto-responce/config"
	"github.com/wganko/liff-for-auto-responce/db"
	"github.com/wganko/liff-for-auto-responce/feed"
	"github.com/wganko/liff-for-auto-responce/handlers"
	"github.com/wganko/liff-for-auto-responce/messaging"
	"github.com/wganko/liff-for-auto-responce/repositories"
	api "github.com/wganko/liff-for-auto-responce/routes"
	"github.com/wganko/liff-for-auto-responce/services"
	"github.com/wganko/liff-for-auto-responce/storage"
)

const (
	dbConnectTimeout = 5 * time.Second
	shutdownTimeout  = 15 * time.Second
	linePushTimeout  = 10 * time.Second
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("driver", cfg.DatabaseDriver),
		slog.Int("forms", len(cfg.Forms.Forms)),
	)

	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := db.Migrate(ctx, dbConn, cfg.DatabaseDriver); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info("database connection established")

	formCache := cache.NewNoopFormConfigCache()
	if cfg.RedisURL != "" {
		c, rdb, err := cache.NewRedisFormConfigCache(cfg.RedisURL, cfg.FormConfigCacheTTL)
		if err != nil {
			return fmt.Errorf("failed to initialize form config cache: %w", err)
		}
		defer rdb.Close()
		formCache = c
		logger.Info("form config cache enabled", slog.Duration("ttl", cfg.FormConfigCacheTTL))
	}

	archiver := storage.NewNoopArchiver()
	if cfg.ArchiveEnabled() {
		archiver, err = storage.NewCloudflareR2Archiver(ctx, storage.CloudflareR2ArchiverConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 archiver: %w", err)
		}
		logger.Info("Cloudflare R2 submission archive enabled", slog.String("bucket", cfg.R2BucketName))
	}

	pusher, err := messaging.NewLineClient(messaging.LineClientConfig{
		Endpoint:           cfg.LineAPIEndpoint,
		ChannelAccessToken: cfg.LineChannelAccessToken,
		Timeout:            linePushTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize LINE client: %w", err)
	}

	hub := feed.NewHub(logger)

	rosterRepo := repositories.NewSQLRosterRepository(dbConn)
	formConfigRepo := repositories.NewSQLFormConfigRepository(dbConn)
	responseRepo := repositories.NewSQLResponseRepository(dbConn)

	reconciler := services.NewReconciler(rosterRepo, logger)
	notifier := services.NewNotifier(pusher, logger)
	formConfigService := services.NewFormConfigService(formConfigRepo, formCache, logger)
	attendanceService := services.NewAttendanceService(
		cfg.Forms,
		reconciler,
		notifier,
		formConfigService,
		responseRepo,
		hub,
		archiver,
		logger,
	)
	logger.Info("services initialized")

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Attendance: handlers.NewAttendanceHandler(attendanceService, formConfigService),
		WebSocket:  handlers.NewWebSocketHandler(hub),
		Health:     handlers.NewHealthHandler(dbConn),
	}, cfg.CORSAllowedOrigins, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gCtx.Done())
		logger.Info("WebSocket hub stopped")
		return nil
	})

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return err
		}
		logger.Info("server shutdown complete")
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application exited")
	return nil
}
