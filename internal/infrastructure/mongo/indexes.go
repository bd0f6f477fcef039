package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// EnsureIndexes creates the indexes the read and write contracts depend on:
// the unique slug index backing conflict detection, the text index backing
// search, the 2dsphere index backing proximity queries, the review store
// reference backing the top-rated $lookup, and the unique user email.
func EnsureIndexes(ctx context.Context, db *mongo.Database, storeCollection, reviewCollection, userCollection string) error {
	storeIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
		},
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
	}
	if _, err := db.Collection(storeCollection).Indexes().CreateMany(ctx, storeIndexes); err != nil {
		return &domain.UpstreamError{Op: "ensure store indexes", Err: err}
	}

	reviewIndex := mongo.IndexModel{Keys: bson.D{{Key: "store", Value: 1}}}
	if _, err := db.Collection(reviewCollection).Indexes().CreateOne(ctx, reviewIndex); err != nil {
		return &domain.UpstreamError{Op: "ensure review indexes", Err: err}
	}

	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(userCollection).Indexes().CreateOne(ctx, userIndex); err != nil {
		return &domain.UpstreamError{Op: "ensure user indexes", Err: err}
	}
	return nil
}
