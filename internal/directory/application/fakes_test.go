package application

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// fakeStoreRepo is an in-memory StoreRepository. Insert and Update enforce
// slug uniqueness the way the real unique index does, so the slug retry path
// can be exercised without a database.
type fakeStoreRepo struct {
	stores    []domain.Store
	reviews   []domain.Review
	nextID    int
	countHook func(candidate, excludeID string) (int64, bool)
	insertErr error
	updateErr error
}

func (r *fakeStoreRepo) Insert(_ context.Context, store *domain.Store) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, existing := range r.stores {
		if existing.Slug == store.Slug {
			return &domain.ConflictError{Resource: "store", Key: store.Slug}
		}
	}
	r.nextID++
	store.ID = fmt.Sprintf("store-%d", r.nextID)
	r.stores = append(r.stores, *store)
	return nil
}

func (r *fakeStoreRepo) Update(_ context.Context, store *domain.Store) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for _, existing := range r.stores {
		if existing.ID != store.ID && existing.Slug == store.Slug {
			return &domain.ConflictError{Resource: "store", Key: store.Slug}
		}
	}
	for i, existing := range r.stores {
		if existing.ID == store.ID {
			r.stores[i] = *store
			return nil
		}
	}
	return &domain.NotFoundError{Resource: "store", Key: store.ID}
}

func (r *fakeStoreRepo) FindByID(_ context.Context, id string) (*domain.Store, error) {
	for _, store := range r.stores {
		if store.ID == id {
			found := store
			return &found, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "store", Key: id}
}

func (r *fakeStoreRepo) FindBySlug(_ context.Context, slug string) (*domain.Store, error) {
	for _, store := range r.stores {
		if store.Slug == slug {
			found := store
			return &found, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "store", Key: slug}
}

func (r *fakeStoreRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Store, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	result := make([]domain.Store, 0)
	for _, store := range r.stores {
		if wanted[store.ID] {
			result = append(result, store)
		}
	}
	return result, nil
}

func (r *fakeStoreRepo) CountSlugMatches(_ context.Context, candidate, excludeID string) (int64, error) {
	if r.countHook != nil {
		if count, ok := r.countHook(candidate, excludeID); ok {
			return count, nil
		}
	}
	pattern := regexp.MustCompile("(?i)" + domain.SlugPattern(candidate))
	var count int64
	for _, store := range r.stores {
		if store.ID != excludeID && pattern.MatchString(store.Slug) {
			count++
		}
	}
	return count, nil
}

func (r *fakeStoreRepo) FindPage(_ context.Context, skip, limit int) ([]domain.Store, error) {
	sorted := append([]domain.Store(nil), r.stores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Created.After(sorted[j].Created)
	})
	if skip >= len(sorted) {
		return []domain.Store{}, nil
	}
	end := skip + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[skip:end], nil
}

func (r *fakeStoreRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.stores)), nil
}

func (r *fakeStoreRepo) Search(_ context.Context, query string, limit int) ([]domain.Store, error) {
	result := make([]domain.Store, 0)
	for _, store := range r.stores {
		if len(result) == limit {
			break
		}
		result = append(result, store)
	}
	return result, nil
}

func (r *fakeStoreRepo) Near(_ context.Context, _, _ float64, limit, _ int) ([]domain.StoreSummary, error) {
	result := make([]domain.StoreSummary, 0)
	for _, store := range r.stores {
		if len(result) == limit {
			break
		}
		result = append(result, domain.StoreSummary{
			Slug:        store.Slug,
			Name:        store.Name,
			Description: store.Description,
			Location:    store.Location,
			Photo:       store.Photo,
		})
	}
	return result, nil
}

func (r *fakeStoreRepo) TagCounts(_ context.Context) ([]domain.TagCount, error) {
	counts := make(map[string]int)
	for _, store := range r.stores {
		for _, tag := range store.Tags {
			counts[tag]++
		}
	}
	result := make([]domain.TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, domain.TagCount{Tag: tag, Count: count})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count == result[j].Count {
			return result[i].Tag < result[j].Tag
		}
		return result[i].Count > result[j].Count
	})
	return result, nil
}

func (r *fakeStoreRepo) FindByTag(_ context.Context, tag string) ([]domain.Store, error) {
	result := make([]domain.Store, 0)
	for _, store := range r.stores {
		if tag == "" {
			if len(store.Tags) > 0 {
				result = append(result, store)
			}
			continue
		}
		for _, t := range store.Tags {
			if t == tag {
				result = append(result, store)
				break
			}
		}
	}
	return result, nil
}

func (r *fakeStoreRepo) TopRated(_ context.Context, limit int) ([]domain.RatedStore, error) {
	rated := make([]domain.RatedStore, 0)
	for _, store := range r.stores {
		var sum, n int
		for _, review := range r.reviews {
			if review.StoreID == store.ID {
				sum += review.Rating
				n++
			}
		}
		if n < 2 {
			continue
		}
		rated = append(rated, domain.RatedStore{
			Store:         store,
			AverageRating: float64(sum) / float64(n),
			ReviewCount:   n,
		})
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].AverageRating > rated[j].AverageRating
	})
	if len(rated) > limit {
		rated = rated[:limit]
	}
	return rated, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	existing, ok := r.users[user.ID]
	if ok {
		existing.Email = user.Email
		existing.Name = user.Name
		r.users[user.ID] = existing
		return nil
	}
	r.users[user.ID] = domain.User{ID: user.ID, Email: user.Email, Name: user.Name, Hearts: []string{}}
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "user", Key: id}
	}
	found := user
	return &found, nil
}

func (r *fakeUserRepo) AddHeart(_ context.Context, userID, storeID string) ([]string, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "user", Key: userID}
	}
	if !user.HasHearted(storeID) {
		user.Hearts = append(user.Hearts, storeID)
	}
	r.users[userID] = user
	return append([]string(nil), user.Hearts...), nil
}

func (r *fakeUserRepo) RemoveHeart(_ context.Context, userID, storeID string) ([]string, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "user", Key: userID}
	}
	hearts := make([]string, 0, len(user.Hearts))
	for _, id := range user.Hearts {
		if id != storeID {
			hearts = append(hearts, id)
		}
	}
	user.Hearts = hearts
	r.users[userID] = user
	return append([]string(nil), hearts...), nil
}

// fakeReviewRepo is an in-memory ReviewRepository.
type fakeReviewRepo struct {
	reviews []domain.Review
	nextID  int
}

func (r *fakeReviewRepo) Insert(_ context.Context, review *domain.Review) error {
	r.nextID++
	review.ID = fmt.Sprintf("review-%d", r.nextID)
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepo) FindByStore(_ context.Context, storeID string) ([]domain.Review, error) {
	result := make([]domain.Review, 0)
	for _, review := range r.reviews {
		if review.StoreID == storeID {
			result = append(result, review)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Created.After(result[j].Created)
	})
	return result, nil
}
