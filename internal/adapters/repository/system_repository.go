package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yiltek/catalog-backend/internal/models"
)

type SystemRepository interface {
	ListSystems(ctx context.Context) ([]models.System, error)
	GetSystem(ctx context.Context, id primitive.ObjectID) (models.System, error)
	CreateSystem(ctx context.Context, system models.System) (models.System, error)
	UpdateSystem(ctx context.Context, system models.System) (models.System, error)
	DeleteSystem(ctx context.Context, id primitive.ObjectID) error
}

type MongoSystemRepository struct {
	DB *mongo.Database
}

func NewSystemRepository(db *mongo.Database) SystemRepository {
	return &MongoSystemRepository{DB: db}
}

func (r *MongoSystemRepository) collection() *mongo.Collection {
	return r.DB.Collection("systems")
}

func (r *MongoSystemRepository) ListSystems(ctx context.Context) ([]models.System, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	systems := []models.System{}
	if err := findMany(ctx, r.collection(), bson.M{}, opts, &systems); err != nil {
		return nil, err
	}
	return systems, nil
}

func (r *MongoSystemRepository) GetSystem(ctx context.Context, id primitive.ObjectID) (models.System, error) {
	var system models.System
	if err := findOne(ctx, r.collection(), bson.M{"_id": id}, &system); err != nil {
		return models.System{}, err
	}
	return system, nil
}

func (r *MongoSystemRepository) CreateSystem(ctx context.Context, system models.System) (models.System, error) {
	now := time.Now()
	system.ID = primitive.NewObjectID()
	system.CreatedAt = now
	system.UpdatedAt = now
	if _, err := r.collection().InsertOne(ctx, system); err != nil {
		return models.System{}, translate(err)
	}
	return system, nil
}

func (r *MongoSystemRepository) UpdateSystem(ctx context.Context, system models.System) (models.System, error) {
	system.UpdatedAt = time.Now()
	if err := replaceByID(ctx, r.collection(), system.ID, system); err != nil {
		return models.System{}, err
	}
	return system, nil
}

func (r *MongoSystemRepository) DeleteSystem(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection(), id)
}
