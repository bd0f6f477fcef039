package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// StoreRepository implements application.StoreRepository using MongoDB.
type StoreRepository struct {
	stores  *mongo.Collection
	reviews *mongo.Collection
}

// NewStoreRepository creates a new Mongo-backed store repository. The review
// collection is only consulted by the top-rated pipeline's $lookup.
func NewStoreRepository(db *mongo.Database, storeCollection, reviewCollection string) *StoreRepository {
	return &StoreRepository{
		stores:  db.Collection(storeCollection),
		reviews: db.Collection(reviewCollection),
	}
}

// Insert persists a new store. The unique slug index turns a losing
// slug race into a ConflictError the caller can retry.
func (r *StoreRepository) Insert(ctx context.Context, store *domain.Store) error {
	doc, err := mapDomainStoreToDocument(store)
	if err != nil {
		return wrapErr("store insert", "store", store.Slug, err)
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.stores.InsertOne(ctx, doc); err != nil {
		return wrapErr("store insert", "store", store.Slug, err)
	}
	store.ID = doc.ID.Hex()
	return nil
}

// Update replaces the mutable fields of an existing store.
func (r *StoreRepository) Update(ctx context.Context, store *domain.Store) error {
	doc, err := mapDomainStoreToDocument(store)
	if err != nil {
		return wrapErr("store update", "store", store.ID, err)
	}
	update := bson.M{"$set": bson.M{
		"name":        doc.Name,
		"slug":        doc.Slug,
		"description": doc.Description,
		"tags":        doc.Tags,
		"location":    doc.Location,
		"photo":       doc.Photo,
	}}
	result, err := r.stores.UpdateByID(ctx, doc.ID, update)
	if err != nil {
		return wrapErr("store update", "store", store.Slug, err)
	}
	if result.MatchedCount == 0 {
		return &domain.NotFoundError{Resource: "store", Key: store.ID}
	}
	return nil
}

// FindByID returns a single store by its identifier.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &domain.NotFoundError{Resource: "store", Key: id}
	}
	var doc StoreDocument
	if err := r.stores.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, wrapErr("store find", "store", id, err)
	}
	store := mapStoreDocument(doc)
	return &store, nil
}

// FindBySlug returns a single store by its slug.
func (r *StoreRepository) FindBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	var doc StoreDocument
	if err := r.stores.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		return nil, wrapErr("store find", "store", slug, err)
	}
	store := mapStoreDocument(doc)
	return &store, nil
}

// FindByIDs returns the stores whose ids appear in the given set.
func (r *StoreRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Store, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}
	cursor, err := r.stores.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, wrapErr("store find by ids", "store", "", err)
	}
	return r.decodeStores(ctx, cursor, "store find by ids")
}

// CountSlugMatches counts stores whose slug is the candidate or a
// numeric-suffixed sibling of it, case-insensitively.
func (r *StoreRepository) CountSlugMatches(ctx context.Context, candidate, excludeID string) (int64, error) {
	filter := bson.M{
		"slug": primitive.Regex{Pattern: domain.SlugPattern(candidate), Options: "i"},
	}
	if excludeID != "" {
		objectID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return 0, &domain.NotFoundError{Resource: "store", Key: excludeID}
		}
		filter["_id"] = bson.M{"$ne": objectID}
	}
	count, err := r.stores.CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrapErr("slug count", "store", candidate, err)
	}
	return count, nil
}

// FindPage returns one page of stores, newest first.
func (r *StoreRepository) FindPage(ctx context.Context, skip, limit int) ([]domain.Store, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := r.stores.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapErr("store page", "store", "", err)
	}
	return r.decodeStores(ctx, cursor, "store page")
}

// Count returns the total number of stores.
func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.stores.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, wrapErr("store count", "store", "", err)
	}
	return count, nil
}

// Search runs a full-text match over the name/description index, most
// relevant first.
func (r *StoreRepository) Search(ctx context.Context, query string, limit int) ([]domain.Store, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}).
		SetLimit(int64(limit))
	cursor, err := r.stores.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr("store search", "store", query, err)
	}
	return r.decodeStores(ctx, cursor, "store search")
}

// Near returns stores within maxDistanceMeters of the point, nearest first,
// restricted to the summary projection.
func (r *StoreRepository) Near(ctx context.Context, lng, lat float64, limit, maxDistanceMeters int) ([]domain.StoreSummary, error) {
	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{lng, lat},
				},
				"$maxDistance": maxDistanceMeters,
			},
		},
	}
	opts := options.Find().
		SetProjection(bson.M{"slug": 1, "name": 1, "description": 1, "location": 1, "photo": 1}).
		SetLimit(int64(limit))
	cursor, err := r.stores.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr("store near", "store", "", err)
	}
	defer cursor.Close(ctx)

	summaries := make([]domain.StoreSummary, 0)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapErr("store near", "store", "", err)
		}
		summaries = append(summaries, domain.StoreSummary{
			Slug:        doc.Slug,
			Name:        doc.Name,
			Description: doc.Description,
			Location:    mapLocationDocument(doc.Location),
			Photo:       doc.Photo,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapErr("store near", "store", "", err)
	}
	return summaries, nil
}

// TagCounts groups stores by each tag they carry and counts occurrences,
// most used first. A store with N tags contributes to N groups.
func (r *StoreRepository) TagCounts(ctx context.Context) ([]domain.TagCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	cursor, err := r.stores.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapErr("tag counts", "tag", "", err)
	}
	defer cursor.Close(ctx)

	counts := make([]domain.TagCount, 0)
	for cursor.Next(ctx) {
		var doc struct {
			Tag   string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapErr("tag counts", "tag", "", err)
		}
		counts = append(counts, domain.TagCount{Tag: doc.Tag, Count: doc.Count})
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapErr("tag counts", "tag", "", err)
	}
	return counts, nil
}

// FindByTag returns stores carrying the tag; an empty tag matches every
// store that has at least one tag.
func (r *StoreRepository) FindByTag(ctx context.Context, tag string) ([]domain.Store, error) {
	var filter bson.M
	if tag == "" {
		filter = bson.M{"tags": bson.M{"$exists": true, "$ne": bson.A{}}}
	} else {
		filter = bson.M{"tags": tag}
	}
	cursor, err := r.stores.Find(ctx, filter)
	if err != nil {
		return nil, wrapErr("store by tag", "store", tag, err)
	}
	return r.decodeStores(ctx, cursor, "store by tag")
}

// TopRated joins each store to its reviews, keeps those with two or more,
// and ranks them by average rating. The two-review floor avoids single-review
// distortion.
func (r *StoreRepository) TopRated(ctx context.Context, limit int) ([]domain.RatedStore, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         r.reviews.Name(),
			"localField":   "_id",
			"foreignField": "store",
			"as":           "reviews",
		}}},
		{{Key: "$match", Value: bson.M{"reviews.1": bson.M{"$exists": true}}}},
		{{Key: "$addFields", Value: bson.M{"averageRating": bson.M{"$avg": "$reviews.rating"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "averageRating", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.stores.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapErr("top rated", "store", "", err)
	}
	defer cursor.Close(ctx)

	rated := make([]domain.RatedStore, 0)
	for cursor.Next(ctx) {
		var doc struct {
			StoreDocument `bson:",inline"`
			AverageRating float64          `bson:"averageRating"`
			Reviews       []ReviewDocument `bson:"reviews"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapErr("top rated", "store", "", err)
		}
		rated = append(rated, domain.RatedStore{
			Store:         mapStoreDocument(doc.StoreDocument),
			AverageRating: doc.AverageRating,
			ReviewCount:   len(doc.Reviews),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapErr("top rated", "store", "", err)
	}
	return rated, nil
}

func (r *StoreRepository) decodeStores(ctx context.Context, cursor *mongo.Cursor, op string) ([]domain.Store, error) {
	defer cursor.Close(ctx)

	stores := make([]domain.Store, 0)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapErr(op, "store", "", err)
		}
		stores = append(stores, mapStoreDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapErr(op, "store", "", err)
	}
	return stores, nil
}
