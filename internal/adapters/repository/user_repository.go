package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yiltek/catalog-backend/internal/models"
)

type UserRepository interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (models.User, error)
	// FindByLogin matches the login name against the email or the display name.
	FindByLogin(ctx context.Context, login string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

type MongoUserRepository struct {
	DB *mongo.Database
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{DB: db}
}

func (r *MongoUserRepository) collection() *mongo.Collection {
	return r.DB.Collection("users")
}

func (r *MongoUserRepository) GetUser(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	if err := findOne(ctx, r.collection(), bson.M{"_id": id}, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *MongoUserRepository) FindByLogin(ctx context.Context, login string) (models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": strings.ToLower(login)},
		bson.M{"name": login},
	}}
	var user models.User
	if err := findOne(ctx, r.collection(), filter, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now
	if _, err := r.collection().InsertOne(ctx, user); err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"password": hash, "updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
