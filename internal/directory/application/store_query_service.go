package application

import (
	"context"
	"errors"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// storeQueryService implements StoreQueryService. Every operation is
// read-only and issues at most two concurrent data-store calls.
type storeQueryService struct {
	stores  StoreRepository
	users   UserRepository
	reviews ReviewRepository
}

// NewStoreQueryService creates the read-side service over the three
// repositories. Users and reviews are only consulted to resolve the derived
// fields of a store detail.
func NewStoreQueryService(stores StoreRepository, users UserRepository, reviews ReviewRepository) StoreQueryService {
	return &storeQueryService{stores: stores, users: users, reviews: reviews}
}

func (s *storeQueryService) List(ctx context.Context, page int) (*StorePage, error) {
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * DefaultPageSize

	var (
		stores []domain.Store
		count  int64
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		stores, err = s.stores.FindPage(groupCtx, skip, DefaultPageSize)
		return err
	})
	group.Go(func() error {
		var err error
		count, err = s.stores.Count(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &StorePage{
		Stores:     stores,
		Page:       page,
		PageSize:   DefaultPageSize,
		Count:      count,
		TotalPages: int(math.Ceil(float64(count) / float64(DefaultPageSize))),
	}, nil
}

func (s *storeQueryService) FindBySlug(ctx context.Context, slug string) (*StoreDetail, error) {
	store, err := s.stores.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}

	detail := &StoreDetail{Store: *store}
	author, err := s.users.FindByID(ctx, store.AuthorID)
	if err != nil {
		// A dangling author reference is tolerated; infrastructure trouble is not.
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	} else {
		detail.Author = author
	}
	reviews, err := s.reviews.FindByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	detail.Reviews = reviews
	return detail, nil
}

func (s *storeQueryService) Search(ctx context.Context, query string) ([]domain.Store, error) {
	return s.stores.Search(ctx, strings.TrimSpace(query), DefaultSearchLimit)
}

func (s *storeQueryService) Nearby(ctx context.Context, lng, lat float64) ([]domain.StoreSummary, error) {
	return s.stores.Near(ctx, lng, lat, DefaultNearbyLimit, DefaultMaxDistanceM)
}

// TagDirectory fetches the tag counts and the tag-filtered stores together
// so one call renders both panes of the tag browse screen.
func (s *storeQueryService) TagDirectory(ctx context.Context, tag string) (*TagDirectory, error) {
	tag = strings.TrimSpace(tag)

	var (
		tags   []domain.TagCount
		stores []domain.Store
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		tags, err = s.stores.TagCounts(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		stores, err = s.stores.FindByTag(groupCtx, tag)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &TagDirectory{Tags: tags, Stores: stores, Active: tag}, nil
}

func (s *storeQueryService) TopRated(ctx context.Context) ([]domain.RatedStore, error) {
	return s.stores.TopRated(ctx, DefaultTopRatedLimit)
}
