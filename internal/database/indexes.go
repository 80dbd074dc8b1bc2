package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

func catalogIndexes() []indexSpec {
	return []indexSpec{
		{"products", mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug_unique").SetUnique(true),
		}},
		{"products", mongo.IndexModel{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "category", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetName("active_category_order"),
		}},
		{"categories", mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug_unique").SetUnique(true),
		}},
		{"users", mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		}},
		{"contacts", mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		}},
		{"gallery", mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		}},
	}
}

// EnsureIndexes creates the catalog indexes. Every index is attempted; the
// first failure is returned.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var firstErr error
	for _, spec := range catalogIndexes() {
		name, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model)
		if err != nil {
			logrus.WithError(err).Warnf("EnsureIndexes: %s index failed", spec.collection)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		logrus.Debugf("EnsureIndexes: %s.%s ready", spec.collection, name)
	}
	return firstErr
}
