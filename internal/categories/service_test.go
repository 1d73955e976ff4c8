package categories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/streetside/storefront-backend/pkg/errors"
)

func setupCategoriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func testCategoryService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupCategoriesTestDB(t)))
	require.NoError(t, err)
	return svc
}

func TestCreateAndListCategories(t *testing.T) {
	svc := testCategoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCategoryInput{Slug: "Hoodies", Name: "Худи"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateCategoryInput{Slug: "shirts", Name: "Футболки"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Slugs are normalized to lowercase on write.
	slugs := []string{list[0].Slug, list[1].Slug}
	assert.Contains(t, slugs, "hoodies")
	assert.Contains(t, slugs, "shirts")
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	svc := testCategoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCategoryInput{Slug: "sale", Name: "Распродажа"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCategoryInput{Slug: "sale", Name: "Another"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateCategoryValidation(t *testing.T) {
	svc := testCategoryService(t)

	_, err := svc.Create(context.Background(), CreateCategoryInput{Slug: "", Name: "No Slug"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateCategoryPartial(t *testing.T) {
	svc := testCategoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCategoryInput{Slug: "womens", Name: "Женское"})
	require.NoError(t, err)

	name := "Women's"
	updated, err := svc.Update(ctx, created.ID, UpdateCategoryInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Women's", updated.Name)
	// Omitted slug keeps its stored value.
	assert.Equal(t, "womens", updated.Slug)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	svc := testCategoryService(t)

	name := "anything"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateCategoryInput{Name: &name})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteCategoryIdempotent(t *testing.T) {
	svc := testCategoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCategoryInput{Slug: "new", Name: "Новинки"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	// Deleting again is a no-op, not an error.
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateCategoryEmptyEditTouchesTimestamp(t *testing.T) {
	conn := setupCategoriesTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCategoryInput{Slug: "sale", Name: "Распродажа"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	updated, err := svc.Update(ctx, created.ID, UpdateCategoryInput{})
	require.NoError(t, err)

	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, created.Name, updated.Name)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}
