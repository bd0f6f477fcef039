package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// LocationDocument is the embedded GeoJSON point with its street address.
type LocationDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
	Address     string    `bson:"address"`
}

// StoreDocument is the MongoDB schema of a store listing.
type StoreDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description"`
	Tags        []string           `bson:"tags,omitempty"`
	Created     time.Time          `bson:"created"`
	Location    LocationDocument   `bson:"location"`
	Photo       string             `bson:"photo,omitempty"`
	Author      string             `bson:"author"`
}

// UserDocument keys principals by the subject the auth collaborator issues.
type UserDocument struct {
	ID     string               `bson:"_id"`
	Email  string               `bson:"email"`
	Name   string               `bson:"name"`
	Hearts []primitive.ObjectID `bson:"hearts,omitempty"`
}

// ReviewDocument is the MongoDB schema of a review.
type ReviewDocument struct {
	ID      primitive.ObjectID `bson:"_id"`
	StoreID primitive.ObjectID `bson:"store"`
	Author  string             `bson:"author"`
	Rating  int                `bson:"rating"`
	Text    string             `bson:"text"`
	Created time.Time          `bson:"created"`
}

func mapStoreDocument(doc StoreDocument) domain.Store {
	return domain.Store{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Slug:        doc.Slug,
		Description: doc.Description,
		Tags:        append([]string{}, doc.Tags...),
		Created:     doc.Created,
		Location:    mapLocationDocument(doc.Location),
		Photo:       doc.Photo,
		AuthorID:    doc.Author,
	}
}

func mapLocationDocument(doc LocationDocument) domain.Location {
	return domain.Location{
		Type:        doc.Type,
		Coordinates: append([]float64{}, doc.Coordinates...),
		Address:     doc.Address,
	}
}

func mapUserDocument(doc UserDocument) domain.User {
	hearts := make([]string, 0, len(doc.Hearts))
	for _, id := range doc.Hearts {
		hearts = append(hearts, id.Hex())
	}
	return domain.User{
		ID:     doc.ID,
		Email:  doc.Email,
		Name:   doc.Name,
		Hearts: hearts,
	}
}

func mapReviewDocument(doc ReviewDocument) domain.Review {
	return domain.Review{
		ID:       doc.ID.Hex(),
		StoreID:  doc.StoreID.Hex(),
		AuthorID: doc.Author,
		Rating:   doc.Rating,
		Text:     doc.Text,
		Created:  doc.Created,
	}
}

func mapDomainStoreToDocument(store *domain.Store) (StoreDocument, error) {
	doc := StoreDocument{
		Name:        store.Name,
		Slug:        store.Slug,
		Description: store.Description,
		Tags:        store.Tags,
		Created:     store.Created,
		Location: LocationDocument{
			Type:        store.Location.Type,
			Coordinates: store.Location.Coordinates,
			Address:     store.Location.Address,
		},
		Photo:  store.Photo,
		Author: store.AuthorID,
	}
	if store.ID != "" {
		objectID, err := primitive.ObjectIDFromHex(store.ID)
		if err != nil {
			return StoreDocument{}, err
		}
		doc.ID = objectID
	}
	return doc, nil
}
