package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/internal/config"
	"github.com/yiltek/catalog-backend/internal/database"
	"github.com/yiltek/catalog-backend/internal/logging"
)

// Creates the catalog indexes and the bootstrap administrator without
// starting the API.
// Usage: go run scripts/create_indexes.go
func main() {
	cfg := config.Load()
	closer := logging.Setup(cfg.Log)
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logrus.Fatalf("Index creation failed: %v", err)
	}
	logrus.Infof("Indexes ready on %s", db.Name())

	created, err := database.BootstrapAdmin(ctx, repository.NewUserRepository(db), cfg.Admin)
	if err != nil {
		logrus.Fatalf("Bootstrap administrator failed: %v", err)
	}
	if !created {
		logrus.Info("Bootstrap administrator skipped (not configured or already present)")
	}
}
