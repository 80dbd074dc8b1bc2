package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/internal/config"
	"github.com/yiltek/catalog-backend/internal/database"
	"github.com/yiltek/catalog-backend/internal/handlers"
	"github.com/yiltek/catalog-backend/internal/logging"
	"github.com/yiltek/catalog-backend/internal/middleware"
	"github.com/yiltek/catalog-backend/internal/notify"
	"github.com/yiltek/catalog-backend/internal/storage"
)

func main() {
	cfg := config.Load()
	logCloser := logging.Setup(cfg.Log)
	defer logCloser.Close()

	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is not set - admin login is disabled")
	}

	var deps *handlers.Dependencies
	client, err := database.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		logrus.WithError(err).Error("Failed to connect to MongoDB")
	} else {
		defer disconnect(client)
		deps, err = buildDependencies(cfg, client.Database(cfg.DBName))
		if err != nil {
			logrus.Fatalf("Failed to initialise storage: %v", err)
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), cors.New(corsConfig(cfg.CORSOrigins)))
	router.MaxMultipartMemory = 8 << 20

	handlers.SetupRoutes(router, cfg, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}
}

func buildDependencies(cfg config.Config, db *mongo.Database) (*handlers.Dependencies, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logrus.WithError(err).Warn("Index creation incomplete")
	}
	if _, err := database.BootstrapAdmin(ctx, repository.NewUserRepository(db), cfg.Admin); err != nil {
		logrus.WithError(err).Warn("Bootstrap administrator not created")
	}

	st, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	var notifier handlers.ContactNotifier
	if cfg.Mail.Enabled() {
		notifier = notify.NewMailer(cfg.Mail)
	} else {
		logrus.Warn("SMTP is not configured - contact notifications are disabled")
	}
	return handlers.NewDependencies(db, st, notifier), nil
}

func newStorage(cfg config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "cloudinary" {
		logrus.Info("Using Cloudinary storage")
		return storage.NewCloudinaryStorage(cfg.Cloudinary)
	}
	logrus.Infof("Using local storage in %s", cfg.UploadDir)
	return storage.NewLocalStorage(cfg.UploadDir)
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logrus.WithError(err).Warn("MongoDB disconnect failed")
	}
}
