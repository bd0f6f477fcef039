package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

func TestEnsurePrincipalUpsertsAndKeepsHearts(t *testing.T) {
	users := newFakeUserRepo()
	stores := &fakeStoreRepo{}
	svc := NewUserService(users, stores)
	ctx := context.Background()

	user, err := svc.EnsurePrincipal(ctx, Principal{ID: "u1", Email: "A@Example.com", Name: " Ada "})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)
	assert.Equal(t, "Ada", user.Name)

	_, err = users.AddHeart(ctx, "u1", "s1")
	require.NoError(t, err)

	// A later login must not wipe the hearts set.
	user, err = svc.EnsurePrincipal(ctx, Principal{ID: "u1", Email: "a@example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, user.Hearts)
}

func TestEnsurePrincipalRejectsInvalidEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), &fakeStoreRepo{})

	_, err := svc.EnsurePrincipal(context.Background(), Principal{ID: "u1", Email: "nope", Name: "Ada"})

	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestToggleHeartRoundTrip(t *testing.T) {
	users := newFakeUserRepo()
	stores := &fakeStoreRepo{stores: []domain.Store{{ID: "s1", Slug: "bar"}}}
	svc := NewUserService(users, stores)
	ctx := context.Background()

	require.NoError(t, users.Upsert(ctx, &domain.User{ID: "u1", Email: "a@example.com", Name: "Ada"}))

	hearts, err := svc.ToggleHeart(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, hearts)

	hearts, err = svc.ToggleHeart(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Empty(t, hearts, "toggling twice restores the original state")
}

func TestToggleHeartUnknownStore(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), &fakeStoreRepo{})

	_, err := svc.ToggleHeart(context.Background(), "u1", "missing")

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestHeartedStores(t *testing.T) {
	users := newFakeUserRepo()
	stores := &fakeStoreRepo{stores: []domain.Store{
		{ID: "s1", Slug: "bar"},
		{ID: "s2", Slug: "grill"},
	}}
	svc := NewUserService(users, stores)
	ctx := context.Background()

	require.NoError(t, users.Upsert(ctx, &domain.User{ID: "u1", Email: "a@example.com", Name: "Ada"}))

	hearted, err := svc.HeartedStores(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, hearted)

	_, err = svc.ToggleHeart(ctx, "u1", "s2")
	require.NoError(t, err)

	hearted, err = svc.HeartedStores(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, hearted, 1)
	assert.Equal(t, "grill", hearted[0].Slug)
}
