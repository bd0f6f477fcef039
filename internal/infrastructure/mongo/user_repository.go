package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// UserRepository implements application.UserRepository using MongoDB.
type UserRepository struct {
	users *mongo.Collection
}

// NewUserRepository creates a new Mongo-backed user repository.
func NewUserRepository(db *mongo.Database, collectionName string) *UserRepository {
	return &UserRepository{users: db.Collection(collectionName)}
}

// Upsert writes the principal's identity fields, leaving hearts untouched.
// The unique email index surfaces a duplicate as a ConflictError.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	update := bson.M{
		"$set":         bson.M{"email": user.Email, "name": user.Name},
		"$setOnInsert": bson.M{"hearts": bson.A{}},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.users.UpdateByID(ctx, user.ID, update, opts); err != nil {
		return wrapErr("user upsert", "user", user.Email, err)
	}
	return nil
}

// FindByID returns a single user by their principal id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var doc UserDocument
	if err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, wrapErr("user find", "user", id, err)
	}
	user := mapUserDocument(doc)
	return &user, nil
}

// AddHeart inserts the store into the user's hearts set ($addToSet keeps it
// duplicate-free) and returns the updated set.
func (r *UserRepository) AddHeart(ctx context.Context, userID, storeID string) ([]string, error) {
	return r.updateHearts(ctx, userID, storeID, "$addToSet")
}

// RemoveHeart pulls the store from the user's hearts set and returns the
// updated set.
func (r *UserRepository) RemoveHeart(ctx context.Context, userID, storeID string) ([]string, error) {
	return r.updateHearts(ctx, userID, storeID, "$pull")
}

func (r *UserRepository) updateHearts(ctx context.Context, userID, storeID, operator string) ([]string, error) {
	objectID, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return nil, &domain.NotFoundError{Resource: "store", Key: storeID}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc UserDocument
	err = r.users.FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		bson.M{operator: bson.M{"hearts": objectID}},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, wrapErr("heart toggle", "user", userID, err)
	}
	return mapUserDocument(doc).Hearts, nil
}
