package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// storeService implements StoreService.
type storeService struct {
	stores StoreRepository
	now    func() time.Time
}

// NewStoreService creates the store write-side service.
func NewStoreService(stores StoreRepository) StoreService {
	return &storeService{stores: stores, now: time.Now}
}

// ConfirmOwnership fails with an AuthorizationError when the acting user does
// not own the store. It never mutates anything.
func ConfirmOwnership(store *domain.Store, actingUserID string) error {
	if store.AuthorID != actingUserID {
		return &domain.AuthorizationError{Reason: "you must own a store in order to edit it"}
	}
	return nil
}

func (s *storeService) Create(ctx context.Context, authorID string, cmd SaveStoreCommand) (*domain.Store, error) {
	store, err := buildStore(authorID, cmd)
	if err != nil {
		return nil, err
	}
	store.Created = s.now().UTC()

	err = s.saveWithSlug(ctx, store, "", func(ctx context.Context) error {
		return s.stores.Insert(ctx, store)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeService) Update(ctx context.Context, storeID, actingUserID string, cmd SaveStoreCommand) (*domain.Store, error) {
	existing, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := ConfirmOwnership(existing, actingUserID); err != nil {
		return nil, err
	}

	updated, err := buildStore(existing.AuthorID, cmd)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.Created = existing.Created

	// An unchanged name keeps the existing slug untouched.
	if updated.Name == existing.Name {
		updated.Slug = existing.Slug
		if err := s.stores.Update(ctx, updated); err != nil {
			return nil, err
		}
		return updated, nil
	}

	err = s.saveWithSlug(ctx, updated, existing.ID, func(ctx context.Context) error {
		return s.stores.Update(ctx, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// buildStore trims and validates the command, returning a store ready for
// slug assignment.
func buildStore(authorID string, cmd SaveStoreCommand) (*domain.Store, error) {
	draft := domain.StoreDraft{
		Name:        strings.TrimSpace(cmd.Name),
		Description: strings.TrimSpace(cmd.Description),
		Tags:        trimTags(cmd.Tags),
		Address:     strings.TrimSpace(cmd.Address),
		Coordinates: cmd.Coordinates,
		Photo:       strings.TrimSpace(cmd.Photo),
		AuthorID:    authorID,
	}
	if err := domain.Validate(draft); err != nil {
		return nil, err
	}

	return &domain.Store{
		Name:        draft.Name,
		Description: draft.Description,
		Tags:        draft.Tags,
		Location: domain.Location{
			Type:        domain.GeoJSONPoint,
			Coordinates: append([]float64(nil), draft.Coordinates...),
			Address:     draft.Address,
		},
		Photo:    draft.Photo,
		AuthorID: draft.AuthorID,
	}, nil
}

// saveWithSlug resolves the slug from the name and persists, retrying a
// bounded number of times when the unique index reports a losing race.
//
// The suffix is count-based: n existing matches for the candidate pattern
// yield candidate-(n+1). After deletions the count can land on a taken or
// skipped number; the retry loop absorbs the former rather than searching
// for the strictly smallest free suffix.
func (s *storeService) saveWithSlug(ctx context.Context, store *domain.Store, excludeID string, persist func(context.Context) error) error {
	candidate := domain.Slugify(store.Name)

	var lastErr error
	for attempt := 0; attempt < slugConflictRetries; attempt++ {
		matches, err := s.stores.CountSlugMatches(ctx, candidate, excludeID)
		if err != nil {
			return err
		}

		store.Slug = candidate
		if matches > 0 {
			store.Slug = fmt.Sprintf("%s-%d", candidate, matches+1)
		}

		err = persist(ctx)
		if err == nil {
			return nil
		}

		var conflict *domain.ConflictError
		if !errors.As(err, &conflict) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

func trimTags(tags []string) []string {
	trimmed := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			trimmed = append(trimmed, tag)
		}
	}
	return trimmed
}
