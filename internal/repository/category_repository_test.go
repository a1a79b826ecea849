package repository

import (
	"context"
	"testing"
	"time"

	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/testutil"
	"campus_voice_backend/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryListActiveUsesCache(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	ctx := context.Background()
	store := cache.NewMemoryStore(8, time.Minute)
	repo := NewCategoryRepository(db, store, time.Minute)

	testutil.CreateCategory(t, db, "Sports", true)
	testutil.CreateCategory(t, db, "Academic", true)
	testutil.CreateCategory(t, db, "Retired", false)

	categories, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Academic", categories[0].Name)
	assert.Equal(t, "Sports", categories[1].Name)

	// Rows written behind the repository's back stay invisible until invalidation.
	testutil.CreateCategory(t, db, "Health", true)
	categories, err = repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	repo.Invalidate(ctx)
	categories, err = repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 3)
}

func TestCategoryFindActiveByID(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(db, nil, 0)

	active := testutil.CreateCategory(t, db, "Library", true)
	inactive := testutil.CreateCategory(t, db, "Old", false)

	got, err := repo.FindActiveByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.Name, got.Name)

	_, err = repo.FindActiveByID(ctx, inactive.ID)
	assert.Error(t, err)

	require.NoError(t, repo.Create(ctx, &model.Category{Name: "New", IsActive: true}))
	categories, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}
