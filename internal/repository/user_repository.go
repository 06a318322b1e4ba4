package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mrhabibie/go-socmed-api/model"
)

// ErrNotFound covers both true absence and owner-scoped lookups that did not
// match the caller; the two are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (model.User, error)
}

type mongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) UserRepository {
	return &mongoUserRepo{col: db.Collection("users")}
}

func (r *mongoUserRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return model.User{}, err
	}
	user.ID = res.InsertedID.(bson.ObjectID)
	return user, nil
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id bson.ObjectID) (model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}
