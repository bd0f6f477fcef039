package application

import (
	"context"
	"strings"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// userService implements UserService.
type userService struct {
	users  UserRepository
	stores StoreRepository
}

// NewUserService creates the principal/hearts service.
func NewUserService(users UserRepository, stores StoreRepository) UserService {
	return &userService{users: users, stores: stores}
}

// EnsurePrincipal upserts the JWT-derived identity so author references and
// hearts resolve against a local record. Hearts survive the upsert untouched.
func (s *userService) EnsurePrincipal(ctx context.Context, principal Principal) (*domain.User, error) {
	draft := domain.PrincipalDraft{
		ID:    strings.TrimSpace(principal.ID),
		Email: strings.ToLower(strings.TrimSpace(principal.Email)),
		Name:  strings.TrimSpace(principal.Name),
	}
	if err := domain.Validate(draft); err != nil {
		return nil, err
	}

	user := &domain.User{ID: draft.ID, Email: draft.Email, Name: draft.Name}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, user.ID)
}

// ToggleHeart flips the store's membership in the user's hearts set and
// returns the updated set. Toggling twice restores the original state.
func (s *userService) ToggleHeart(ctx context.Context, userID, storeID string) ([]string, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.HasHearted(storeID) {
		return s.users.RemoveHeart(ctx, userID, storeID)
	}
	return s.users.AddHeart(ctx, userID, storeID)
}

func (s *userService) HeartedStores(ctx context.Context, userID string) ([]domain.Store, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Hearts) == 0 {
		return []domain.Store{}, nil
	}
	return s.stores.FindByIDs(ctx, user.Hearts)
}
