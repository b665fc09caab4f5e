// @title TrackBack API
// @version 1.0
// @description Lost and found bulletin board
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	docs "github.com/xyz-asif/trackback/docs"
	"github.com/xyz-asif/trackback/internal/config"
	"github.com/xyz-asif/trackback/internal/database"
	"github.com/xyz-asif/trackback/internal/features/auth"
	"github.com/xyz-asif/trackback/internal/features/items"
	"github.com/xyz-asif/trackback/internal/pkg/cloudinary"
	"github.com/xyz-asif/trackback/internal/pkg/logger"
	"github.com/xyz-asif/trackback/internal/routes"
)

func main() {
	if err := run(); err != nil {
		logger.Error("%v", err)
		_ = logger.Default().Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel))
	if cfg.IsProduction() {
		log = logger.NewProduction(logger.ParseLevel(cfg.LogLevel))
		gin.SetMode(gin.ReleaseMode)
	}
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.Schemes = []string{"http"}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := routes.Deps{Log: log}
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		deps.Users = auth.NewMemoryRepository()
		deps.Items = items.NewMemoryRepository()
	default:
		db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Disconnect(dctx); err != nil {
				log.Warn("disconnect mongo: %v", err)
			}
		}()

		if deps.Users, err = auth.NewMongoRepository(ctx, db.Database); err != nil {
			return err
		}
		if deps.Items, err = items.NewMongoRepository(ctx, db.Database); err != nil {
			return err
		}
		log.Info("connected to mongo database %s", cfg.MongoDB)
	}

	if cfg.CloudinaryEnabled() {
		cld, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			return err
		}
		deps.Uploader = cld
	} else {
		log.Info("cloudinary not configured; photos are stored inline")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(ctx, cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting on port %s (%s storage)", cfg.Port, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}
