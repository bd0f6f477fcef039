package application

import (
	"context"
	"strings"
	"time"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviews ReviewRepository
	stores  StoreRepository
	now     func() time.Time
}

// NewReviewService creates the review write-side service.
func NewReviewService(reviews ReviewRepository, stores StoreRepository) ReviewService {
	return &reviewService{reviews: reviews, stores: stores, now: time.Now}
}

func (s *reviewService) Add(ctx context.Context, authorID, storeID string, cmd AddReviewCommand) (*domain.Review, error) {
	draft := domain.ReviewDraft{
		Rating: cmd.Rating,
		Text:   strings.TrimSpace(cmd.Text),
	}
	if err := domain.Validate(draft); err != nil {
		return nil, err
	}

	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		StoreID:  store.ID,
		AuthorID: authorID,
		Rating:   draft.Rating,
		Text:     draft.Text,
		Created:  s.now().UTC(),
	}
	if err := s.reviews.Insert(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
