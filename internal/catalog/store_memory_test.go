package catalog

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(Seed()...)

	created, err := s.Create(ctx, NewProduct{Title: "Mug", Price: decimal.RequireFromString("7.125"), Category: "home"})
	require.NoError(t, err)
	assert.Equal(t, int64(21), created.ID)
	assert.Equal(t, 7.13, created.Price)
	assert.Zero(t, created.Rating)

	price := decimal.RequireFromString("8")
	updated, err := s.Update(ctx, created.ID, Patch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 8.0, updated.Price)
	assert.Equal(t, "Mug", updated.Title)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	deleted, err := s.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, deleted)

	_, err = s.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = s.Delete(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemStore_Validation(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	_, err := s.Create(ctx, NewProduct{Title: "  ", Price: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = s.Create(ctx, NewProduct{Title: "x", Price: decimal.NewFromInt(-1)})
	assert.True(t, errors.Is(err, ErrInvalid))

	empty := ""
	_, err = s.Update(ctx, 1, Patch{Title: &empty})
	assert.True(t, errors.Is(err, ErrInvalid))

	p, err := s.Create(ctx, NewProduct{Title: "first"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID, "empty store starts at 1")
}

func TestMemStore_CategoriesFollowIDOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore(
		Product{ID: 4, Category: "b"},
		Product{ID: 1, Category: "a"},
		Product{ID: 3, Category: "b"},
		Product{ID: 2, Category: "c"},
	)

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, cats)
}
