package domain

import "time"

// Store represents a single directory listing.
type Store struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Tags        []string
	Created     time.Time
	Location    Location
	Photo       string
	AuthorID    string
}

// Location is a GeoJSON point carrying the listing's street address.
// Coordinates are longitude first, latitude second.
type Location struct {
	Type        string
	Coordinates []float64
	Address     string
}

// GeoJSONPoint is the only location type the directory stores.
const GeoJSONPoint = "Point"

// StoreSummary is the projection returned by proximity lookups.
type StoreSummary struct {
	Slug        string
	Name        string
	Description string
	Location    Location
	Photo       string
}

// TagCount pairs a tag with the number of stores carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// RatedStore is a store joined against its reviews for ranking.
type RatedStore struct {
	Store         Store
	AverageRating float64
	ReviewCount   int
}
