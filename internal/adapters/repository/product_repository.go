package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yiltek/catalog-backend/internal/models"
)

type ProductSort int

const (
	SortByOrder ProductSort = iota
	SortNewest
)

type ProductFilter struct {
	Category     *primitive.ObjectID
	ActiveOnly   bool
	FeaturedOnly bool
	Search       string
	Sort         ProductSort
}

func (f ProductFilter) query() bson.M {
	filter := bson.M{}
	if f.Category != nil {
		filter["category"] = *f.Category
	}
	if f.ActiveOnly {
		filter["isActive"] = true
	}
	if f.FeaturedOnly {
		filter["isFeatured"] = true
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"slug": pattern},
			bson.M{"description": pattern},
		}
	}
	return filter
}

func (f ProductFilter) sort() bson.D {
	if f.Sort == SortNewest {
		return bson.D{{Key: "_id", Value: -1}}
	}
	return bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}
}

type ProductRepository interface {
	FindProducts(ctx context.Context, filter ProductFilter, page Page) ([]models.Product, int64, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (models.Product, error)
	SlugTaken(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	ProductRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProductRef, error)
}

type MongoProductRepository struct {
	DB *mongo.Database
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &MongoProductRepository{DB: db}
}

func (r *MongoProductRepository) collection() *mongo.Collection {
	return r.DB.Collection("products")
}

func (r *MongoProductRepository) FindProducts(ctx context.Context, filter ProductFilter, page Page) ([]models.Product, int64, error) {
	query := filter.query()
	opts := pageOptions(page).SetSort(filter.sort())

	products := []models.Product{}
	if err := findMany(ctx, r.collection(), query, opts, &products); err != nil {
		return nil, 0, err
	}
	total, err := r.collection().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *MongoProductRepository) GetProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	if err := findOne(ctx, r.collection(), bson.M{"_id": id}, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (r *MongoProductRepository) GetProductBySlug(ctx context.Context, slug string) (models.Product, error) {
	var product models.Product
	if err := findOne(ctx, r.collection(), bson.M{"slug": slug}, &product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (r *MongoProductRepository) SlugTaken(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	n, err := r.collection().CountDocuments(ctx, slugFilter(slug, excludeID), options.Count().SetLimit(1))
	return n > 0, err
}

func (r *MongoProductRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	now := time.Now()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.ApplyDefaults()

	if _, err := r.collection().InsertOne(ctx, product); err != nil {
		return models.Product{}, translate(err)
	}
	return product, nil
}

func (r *MongoProductRepository) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	product.UpdatedAt = time.Now()
	product.ApplyDefaults()
	if err := replaceByID(ctx, r.collection(), product.ID, product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (r *MongoProductRepository) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection(), id)
}

func (r *MongoProductRepository) ProductRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProductRef, error) {
	refs := make(map[primitive.ObjectID]models.ProductRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	opts := options.Find().SetProjection(bson.M{"name": 1, "slug": 1})
	var products []models.Product
	if err := findMany(ctx, r.collection(), bson.M{"_id": bson.M{"$in": ids}}, opts, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		refs[p.ID] = models.ProductRef{ID: p.ID, Name: p.Name, Slug: p.Slug}
	}
	return refs, nil
}
