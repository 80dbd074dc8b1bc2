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

type GalleryRepository interface {
	ListGallery(ctx context.Context) ([]models.GalleryItem, error)
	GetGalleryItem(ctx context.Context, id primitive.ObjectID) (models.GalleryItem, error)
	CreateGalleryItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id primitive.ObjectID) error
}

type MongoGalleryRepository struct {
	DB *mongo.Database
}

func NewGalleryRepository(db *mongo.Database) GalleryRepository {
	return &MongoGalleryRepository{DB: db}
}

func (r *MongoGalleryRepository) collection() *mongo.Collection {
	return r.DB.Collection("gallery")
}

func (r *MongoGalleryRepository) ListGallery(ctx context.Context) ([]models.GalleryItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	items := []models.GalleryItem{}
	if err := findMany(ctx, r.collection(), bson.M{}, opts, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoGalleryRepository) GetGalleryItem(ctx context.Context, id primitive.ObjectID) (models.GalleryItem, error) {
	var item models.GalleryItem
	if err := findOne(ctx, r.collection(), bson.M{"_id": id}, &item); err != nil {
		return models.GalleryItem{}, err
	}
	return item, nil
}

func (r *MongoGalleryRepository) CreateGalleryItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error) {
	now := time.Now()
	item.ID = primitive.NewObjectID()
	item.CreatedAt = now
	item.UpdatedAt = now
	if _, err := r.collection().InsertOne(ctx, item); err != nil {
		return models.GalleryItem{}, translate(err)
	}
	return item, nil
}

func (r *MongoGalleryRepository) UpdateGalleryItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error) {
	item.UpdatedAt = time.Now()
	if err := replaceByID(ctx, r.collection(), item.ID, item); err != nil {
		return models.GalleryItem{}, err
	}
	return item, nil
}

func (r *MongoGalleryRepository) DeleteGalleryItem(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection(), id)
}
