package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

func validCommand(name string) SaveStoreCommand {
	return SaveStoreCommand{
		Name:        name,
		Description: "A fine establishment.",
		Tags:        []string{"coffee"},
		Address:     "1 Main St",
		Coordinates: []float64{-122.67, 45.52},
	}
}

func TestCreateAssignsSlugFromName(t *testing.T) {
	repo := &fakeStoreRepo{}
	svc := NewStoreService(repo)

	store, err := svc.Create(context.Background(), "u1", validCommand("Maple Street Diner"))

	require.NoError(t, err)
	assert.Equal(t, "maple-street-diner", store.Slug)
	assert.Equal(t, "u1", store.AuthorID)
	assert.Equal(t, domain.GeoJSONPoint, store.Location.Type)
	assert.False(t, store.Created.IsZero())
}

func TestCreateDuplicateNamesGetCountSuffix(t *testing.T) {
	repo := &fakeStoreRepo{}
	svc := NewStoreService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, "u1", validCommand("Bar"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, "u1", validCommand("Bar"))
	require.NoError(t, err)
	third, err := svc.Create(ctx, "u1", validCommand("Bar"))
	require.NoError(t, err)

	assert.Equal(t, "bar", first.Slug)
	assert.Equal(t, "bar-2", second.Slug)
	assert.Equal(t, "bar-3", third.Slug)
}

func TestCreateCollectsAllValidationErrors(t *testing.T) {
	repo := &fakeStoreRepo{}
	svc := NewStoreService(repo)

	_, err := svc.Create(context.Background(), "u1", SaveStoreCommand{Name: "  "})

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	fields := make([]string, 0, len(validation.Fields))
	for _, f := range validation.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "location.address")
	assert.Contains(t, fields, "location.coordinates")
	assert.Empty(t, repo.stores, "nothing persists on validation failure")
}

func TestCreateRejectsNameThatSlugsToNothing(t *testing.T) {
	repo := &fakeStoreRepo{}
	svc := NewStoreService(repo)

	_, err := svc.Create(context.Background(), "u1", validCommand("!!!"))

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Len(t, validation.Fields, 1)
	assert.Equal(t, "name", validation.Fields[0].Field)
	assert.Empty(t, repo.stores, "nothing persists for an unroutable name")
}

func TestUpdateKeepsSlugWhenNameUnchanged(t *testing.T) {
	repo := &fakeStoreRepo{}
	svc := NewStoreService(repo)
	ctx := context.Background()

	store, err := svc.Create(ctx, "u1", validCommand("Bar"))
	require.NoError(t, err)

	cmd := validCommand("Bar")
	cmd.Description = "Now with a new patio."
	updated, err := svc.Update(ctx, store.ID, "u1", cmd)

	require.NoError(t, err)
	assert.Equal(t, "bar", updated.Slug)
	assert.Equal(t, "Now with a new patio.", updated.Description)
}

func TestUpdateReslugsWhenNameChanges(t *testing.T) {
	repo := &fakeStoreRepo{}
	svc := NewStoreService(repo)
	ctx := context.Background()

	store, err := svc.Create(ctx, "u1", validCommand("Bar"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, store.ID, "u1", validCommand("Grill"))

	require.NoError(t, err)
	assert.Equal(t, "grill", updated.Slug)
}

func TestUpdateExcludesSelfFromSlugCount(t *testing.T) {
	repo := &fakeStoreRepo{}
	svc := NewStoreService(repo)
	ctx := context.Background()

	store, err := svc.Create(ctx, "u1", validCommand("Bar"))
	require.NoError(t, err)

	// Renaming Bar to BAR re-slugs to the same candidate; the store's own
	// record must not count as a collision.
	updated, err := svc.Update(ctx, store.ID, "u1", validCommand("BAR"))

	require.NoError(t, err)
	assert.Equal(t, "bar", updated.Slug)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	repo := &fakeStoreRepo{}
	svc := NewStoreService(repo)
	ctx := context.Background()

	store, err := svc.Create(ctx, "u1", validCommand("Bar"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, store.ID, "intruder", validCommand("Bar"))

	var authz *domain.AuthorizationError
	assert.ErrorAs(t, err, &authz)
}

func TestConfirmOwnership(t *testing.T) {
	store := &domain.Store{AuthorID: "u1"}

	assert.NoError(t, ConfirmOwnership(store, "u1"))

	err := ConfirmOwnership(store, "u2")
	var authz *domain.AuthorizationError
	assert.ErrorAs(t, err, &authz)
}

func TestCreateRetriesAfterSlugConflict(t *testing.T) {
	// Simulate losing the check-then-write race: the count says the slug is
	// free, but a concurrent writer has already claimed it. The second
	// attempt sees the honest count and lands on bar-2.
	repo := &fakeStoreRepo{
		stores: []domain.Store{{ID: "store-0", Name: "Bar", Slug: "bar"}},
	}
	stale := true
	repo.countHook = func(candidate, excludeID string) (int64, bool) {
		if stale {
			stale = false
			return 0, true
		}
		return 0, false // fall through to the honest count
	}
	svc := NewStoreService(repo)

	store, err := svc.Create(context.Background(), "u1", validCommand("Bar"))

	require.NoError(t, err)
	assert.Equal(t, "bar-2", store.Slug)
}

func TestCreateGivesUpAfterBoundedRetries(t *testing.T) {
	repo := &fakeStoreRepo{
		stores: []domain.Store{{ID: "store-0", Name: "Bar", Slug: "bar"}},
	}
	// Every attempt sees a stale zero count and collides.
	repo.countHook = func(candidate, excludeID string) (int64, bool) {
		return 0, true
	}
	svc := NewStoreService(repo)

	_, err := svc.Create(context.Background(), "u1", validCommand("Bar"))

	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestUpdateMissingStore(t *testing.T) {
	repo := &fakeStoreRepo{}
	svc := NewStoreService(repo)

	_, err := svc.Update(context.Background(), "missing", "u1", validCommand("Bar"))

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
