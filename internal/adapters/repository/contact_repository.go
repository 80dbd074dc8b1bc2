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

type ContactFilter struct {
	QuoteOnly bool
	Read      *bool
}

func (f ContactFilter) query() bson.M {
	filter := bson.M{}
	if f.QuoteOnly {
		filter["isQuote"] = true
	}
	if f.Read != nil {
		filter["isRead"] = *f.Read
	}
	return filter
}

type ContactRepository interface {
	FindContacts(ctx context.Context, filter ContactFilter, page Page) ([]models.Contact, int64, error)
	GetContact(ctx context.Context, id primitive.ObjectID) (models.Contact, error)
	CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	MarkRead(ctx context.Context, id primitive.ObjectID, read bool) (models.Contact, error)
	DeleteContact(ctx context.Context, id primitive.ObjectID) error
}

type MongoContactRepository struct {
	DB *mongo.Database
}

func NewContactRepository(db *mongo.Database) ContactRepository {
	return &MongoContactRepository{DB: db}
}

func (r *MongoContactRepository) collection() *mongo.Collection {
	return r.DB.Collection("contacts")
}

func (r *MongoContactRepository) FindContacts(ctx context.Context, filter ContactFilter, page Page) ([]models.Contact, int64, error) {
	query := filter.query()
	opts := pageOptions(page).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	contacts := []models.Contact{}
	if err := findMany(ctx, r.collection(), query, opts, &contacts); err != nil {
		return nil, 0, err
	}
	total, err := r.collection().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *MongoContactRepository) GetContact(ctx context.Context, id primitive.ObjectID) (models.Contact, error) {
	var contact models.Contact
	if err := findOne(ctx, r.collection(), bson.M{"_id": id}, &contact); err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}

func (r *MongoContactRepository) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	now := time.Now()
	contact.ID = primitive.NewObjectID()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	if _, err := r.collection().InsertOne(ctx, contact); err != nil {
		return models.Contact{}, translate(err)
	}
	return contact, nil
}

func (r *MongoContactRepository) MarkRead(ctx context.Context, id primitive.ObjectID, read bool) (models.Contact, error) {
	update := bson.M{"$set": bson.M{"isRead": read, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var contact models.Contact
	if err := r.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&contact); err != nil {
		return models.Contact{}, translate(err)
	}
	return contact, nil
}

func (r *MongoContactRepository) DeleteContact(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection(), id)
}
