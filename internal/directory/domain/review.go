package domain

import "time"

// Review is a rating left against a store by an authenticated user.
type Review struct {
	ID       string
	StoreID  string
	AuthorID string
	Rating   int
	Text     string
	Created  time.Time
}
