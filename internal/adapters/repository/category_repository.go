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

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	SlugTaken(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error)
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
	CategoryRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.CategoryRef, error)
}

type MongoCategoryRepository struct {
	DB *mongo.Database
}

func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &MongoCategoryRepository{DB: db}
}

func (r *MongoCategoryRepository) collection() *mongo.Collection {
	return r.DB.Collection("categories")
}

func (r *MongoCategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	categories := []models.Category{}
	if err := findMany(ctx, r.collection(), bson.M{}, opts, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *MongoCategoryRepository) GetCategory(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var category models.Category
	if err := findOne(ctx, r.collection(), bson.M{"_id": id}, &category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (r *MongoCategoryRepository) SlugTaken(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	n, err := r.collection().CountDocuments(ctx, slugFilter(slug, excludeID), options.Count().SetLimit(1))
	return n > 0, err
}

func (r *MongoCategoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	now := time.Now()
	category.ID = primitive.NewObjectID()
	category.CreatedAt = now
	category.UpdatedAt = now
	if _, err := r.collection().InsertOne(ctx, category); err != nil {
		return models.Category{}, translate(err)
	}
	return category, nil
}

func (r *MongoCategoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	category.UpdatedAt = time.Now()
	if err := replaceByID(ctx, r.collection(), category.ID, category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (r *MongoCategoryRepository) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection(), id)
}

// CategoryRefs resolves the given ids in one query. Missing ids are absent
// from the result.
func (r *MongoCategoryRepository) CategoryRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.CategoryRef, error) {
	refs := make(map[primitive.ObjectID]models.CategoryRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	opts := options.Find().SetProjection(bson.M{"name": 1, "slug": 1})
	var categories []models.Category
	if err := findMany(ctx, r.collection(), bson.M{"_id": bson.M{"$in": ids}}, opts, &categories); err != nil {
		return nil, err
	}
	for _, c := range categories {
		refs[c.ID] = models.CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
	}
	return refs, nil
}
