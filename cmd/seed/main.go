// Command seed loads a small set of sample stores, users, and reviews so the
// directory has data to browse locally. Pass -wipe to drop the collections
// first.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localbites/localbites-services/api/internal/config"
	"github.com/localbites/localbites-services/api/internal/directory/domain"
	mongodoc "github.com/localbites/localbites-services/api/internal/infrastructure/mongo"
)

type sampleStore struct {
	name        string
	description string
	tags        []string
	address     string
	coordinates []float64
}

var sampleStores = []sampleStore{
	{
		name:        "Maple Street Diner",
		description: "All-day breakfast, bottomless coffee, and a counter full of regulars.",
		tags:        []string{"breakfast", "family-friendly"},
		address:     "112 Maple St, Portland, OR",
		coordinates: []float64{-122.676483, 45.523064},
	},
	{
		name:        "The Rusty Kettle",
		description: "Slow-brewed teas and scratch-made scones in a converted hardware shop.",
		tags:        []string{"tea", "wifi"},
		address:     "88 Alder Ave, Portland, OR",
		coordinates: []float64{-122.681944, 45.520833},
	},
	{
		name:        "Pike Place Chowder",
		description: "Award-winning chowder served by the pint, steps from the market.",
		tags:        []string{"seafood", "lunch"},
		address:     "1530 Post Alley, Seattle, WA",
		coordinates: []float64{-122.340166, 47.609722},
	},
	{
		name:        "Golden Gate Grill",
		description: "Burgers, fog views, and a patio that earns its wait list.",
		tags:        []string{"burgers", "patio"},
		address:     "2001 Lombard St, San Francisco, CA",
		coordinates: []float64{-122.433701, 37.799263},
	},
	{
		name:        "Cafe Azul",
		description: "Oaxacan moles and fresh masa, family-run for two decades.",
		tags:        []string{"mexican", "family-friendly"},
		address:     "400 SW Broadway, Portland, OR",
		coordinates: []float64{-122.678017, 45.519596},
	},
}

var sampleUsers = []mongodoc.UserDocument{
	{ID: "auth0|seed-wes", Email: "wes@example.com", Name: "Wes"},
	{ID: "auth0|seed-deb", Email: "debbie@example.com", Name: "Debbie"},
	{ID: "auth0|seed-beau", Email: "beau@example.com", Name: "Beau"},
}

func main() {
	wipe := flag.Bool("wipe", false, "drop the collections before seeding")
	flag.Parse()

	cfg := config.Load()
	logger := cfg.Logger

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDatabase)
	stores := db.Collection(cfg.StoreCollection)
	reviews := db.Collection(cfg.ReviewCollection)
	users := db.Collection(cfg.UserCollection)

	if *wipe {
		for _, coll := range []*mongo.Collection{stores, reviews, users} {
			if err := coll.Drop(ctx); err != nil {
				logger.WithError(err).Fatalf("failed to drop %s", coll.Name())
			}
		}
		logger.Info("dropped existing collections")
	}

	if err := mongodoc.EnsureIndexes(ctx, db, cfg.StoreCollection, cfg.ReviewCollection, cfg.UserCollection); err != nil {
		logger.WithError(err).Fatal("failed to ensure indexes")
	}

	for i := range sampleUsers {
		doc := sampleUsers[i]
		update := bson.M{
			"$set":         bson.M{"email": doc.Email, "name": doc.Name},
			"$setOnInsert": bson.M{"hearts": bson.A{}},
		}
		if _, err := users.UpdateByID(ctx, doc.ID, update, options.Update().SetUpsert(true)); err != nil {
			logger.WithError(err).Fatalf("failed to seed user %s", doc.Email)
		}
	}

	storeIDs := make([]primitive.ObjectID, 0, len(sampleStores))
	for i, sample := range sampleStores {
		author := sampleUsers[i%len(sampleUsers)]
		doc := mongodoc.StoreDocument{
			ID:          primitive.NewObjectID(),
			Name:        sample.name,
			Slug:        domain.Slugify(sample.name),
			Description: sample.description,
			Tags:        sample.tags,
			Created:     time.Now().UTC().Add(-time.Duration(i) * 24 * time.Hour),
			Location: mongodoc.LocationDocument{
				Type:        domain.GeoJSONPoint,
				Coordinates: sample.coordinates,
				Address:     sample.address,
			},
			Photo:  fmt.Sprintf("%s.jpg", uuid.NewString()),
			Author: author.ID,
		}
		if _, err := stores.InsertOne(ctx, doc); err != nil {
			logger.WithError(err).Fatalf("failed to seed store %s", sample.name)
		}
		storeIDs = append(storeIDs, doc.ID)
	}

	// Give the first two stores enough reviews to show up in the top-rated
	// ranking; leave the third with a single review so it stays excluded.
	ratings := map[int][]int{0: {4, 5}, 1: {5, 5, 4}, 2: {3}}
	for storeIdx, scores := range ratings {
		for i, score := range scores {
			doc := mongodoc.ReviewDocument{
				ID:      primitive.NewObjectID(),
				StoreID: storeIDs[storeIdx],
				Author:  sampleUsers[i%len(sampleUsers)].ID,
				Rating:  score,
				Text:    "Seeded review.",
				Created: time.Now().UTC(),
			}
			if _, err := reviews.InsertOne(ctx, doc); err != nil {
				logger.WithError(err).Fatal("failed to seed review")
			}
		}
	}

	logger.WithField("stores", len(sampleStores)).Info("seed complete")
}
