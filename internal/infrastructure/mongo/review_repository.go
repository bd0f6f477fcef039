package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// ReviewRepository implements application.ReviewRepository using MongoDB.
type ReviewRepository struct {
	reviews *mongo.Collection
}

// NewReviewRepository creates a new Mongo-backed review repository.
func NewReviewRepository(db *mongo.Database, collectionName string) *ReviewRepository {
	return &ReviewRepository{reviews: db.Collection(collectionName)}
}

// Insert persists a new review.
func (r *ReviewRepository) Insert(ctx context.Context, review *domain.Review) error {
	storeID, err := primitive.ObjectIDFromHex(review.StoreID)
	if err != nil {
		return &domain.NotFoundError{Resource: "store", Key: review.StoreID}
	}
	doc := ReviewDocument{
		ID:      primitive.NewObjectID(),
		StoreID: storeID,
		Author:  review.AuthorID,
		Rating:  review.Rating,
		Text:    review.Text,
		Created: review.Created,
	}
	if _, err := r.reviews.InsertOne(ctx, doc); err != nil {
		return wrapErr("review insert", "review", "", err)
	}
	review.ID = doc.ID.Hex()
	return nil
}

// FindByStore returns a store's reviews, newest first.
func (r *ReviewRepository) FindByStore(ctx context.Context, storeID string) ([]domain.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return nil, &domain.NotFoundError{Resource: "store", Key: storeID}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	cursor, err := r.reviews.Find(ctx, bson.M{"store": objectID}, opts)
	if err != nil {
		return nil, wrapErr("review find", "review", storeID, err)
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapErr("review find", "review", storeID, err)
		}
		reviews = append(reviews, mapReviewDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapErr("review find", "review", storeID, err)
	}
	return reviews, nil
}
