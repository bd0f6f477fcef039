package application

import (
	"context"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// StoreRepository is the persistence port for store records.
type StoreRepository interface {
	Insert(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Store, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Store, error)
	// CountSlugMatches counts stores whose slug matches the candidate or any
	// numeric-suffixed sibling, excluding the given store id when non-empty.
	CountSlugMatches(ctx context.Context, candidate, excludeID string) (int64, error)
	FindPage(ctx context.Context, skip, limit int) ([]domain.Store, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Store, error)
	Near(ctx context.Context, lng, lat float64, limit, maxDistanceMeters int) ([]domain.StoreSummary, error)
	TagCounts(ctx context.Context) ([]domain.TagCount, error)
	// FindByTag returns stores carrying the tag; an empty tag matches every
	// store that has at least one tag.
	FindByTag(ctx context.Context, tag string) ([]domain.Store, error)
	TopRated(ctx context.Context, limit int) ([]domain.RatedStore, error)
}

// UserRepository is the persistence port for principal records and hearts.
type UserRepository interface {
	Upsert(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// AddHeart and RemoveHeart adjust set membership and return the updated set.
	AddHeart(ctx context.Context, userID, storeID string) ([]string, error)
	RemoveHeart(ctx context.Context, userID, storeID string) ([]string, error)
}

// ReviewRepository is the persistence port for reviews.
type ReviewRepository interface {
	Insert(ctx context.Context, review *domain.Review) error
	FindByStore(ctx context.Context, storeID string) ([]domain.Review, error)
}

// Paging defaults shared by the query surface.
const (
	DefaultPageSize      = 4
	DefaultSearchLimit   = 10
	DefaultNearbyLimit   = 10
	DefaultTopRatedLimit = 10
	DefaultMaxDistanceM  = 10000
	slugConflictRetries  = 3
)

// SaveStoreCommand captures the caller-supplied fields of a store write.
// Photo arrives as an opaque filename from the upload collaborator.
type SaveStoreCommand struct {
	Name        string
	Description string
	Tags        []string
	Address     string
	Coordinates []float64
	Photo       string
}

// AddReviewCommand captures a review submission.
type AddReviewCommand struct {
	Rating int
	Text   string
}

// Principal is the identity handed over by the auth collaborator.
type Principal struct {
	ID    string
	Email string
	Name  string
}

// StorePage is the paginated list envelope. Count and TotalPages give the
// caller enough to redirect off an out-of-range page.
type StorePage struct {
	Stores     []domain.Store
	Page       int
	PageSize   int
	Count      int64
	TotalPages int
}

// StoreDetail is a store with its author and reviews resolved.
type StoreDetail struct {
	Store   domain.Store
	Author  *domain.User
	Reviews []domain.Review
}

// TagDirectory is the combined fetch backing the tag browse screen.
type TagDirectory struct {
	Tags   []domain.TagCount
	Stores []domain.Store
	Active string
}

// StoreService owns the store write path: validation, slug assignment,
// ownership checks, persistence.
type StoreService interface {
	Create(ctx context.Context, authorID string, cmd SaveStoreCommand) (*domain.Store, error)
	Update(ctx context.Context, storeID, actingUserID string, cmd SaveStoreCommand) (*domain.Store, error)
}

// StoreQueryService is the read-only surface over the store collection.
type StoreQueryService interface {
	List(ctx context.Context, page int) (*StorePage, error)
	FindBySlug(ctx context.Context, slug string) (*StoreDetail, error)
	Search(ctx context.Context, query string) ([]domain.Store, error)
	Nearby(ctx context.Context, lng, lat float64) ([]domain.StoreSummary, error)
	TagDirectory(ctx context.Context, tag string) (*TagDirectory, error)
	TopRated(ctx context.Context) ([]domain.RatedStore, error)
}

// UserService manages principal records and heart toggles.
type UserService interface {
	EnsurePrincipal(ctx context.Context, principal Principal) (*domain.User, error)
	ToggleHeart(ctx context.Context, userID, storeID string) ([]string, error)
	HeartedStores(ctx context.Context, userID string) ([]domain.Store, error)
}

// ReviewService handles review submission.
type ReviewService interface {
	Add(ctx context.Context, authorID, storeID string, cmd AddReviewCommand) (*domain.Review, error)
}
