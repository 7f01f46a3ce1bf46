package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probmark/probmark/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "probmark.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := &store.Problem{
		Content:    "#problem\nSolve $x^2 = 4$",
		Solution:   "#solution\nx = 2 or x = -2",
		Answer:     "x = ±2",
		Categories: []string{"algebra", "quadratics"},
	}
	require.NoError(t, s.Save(ctx, p))
	require.NotZero(t, p.ID)
	require.False(t, p.Created.IsZero())

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Content, got.Content)
	assert.Equal(t, p.Solution, got.Solution)
	assert.Equal(t, p.Answer, got.Answer)
	assert.Equal(t, []string{"algebra", "quadratics"}, got.Categories)
}

func TestSaveUpdates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := &store.Problem{Content: "#problem\noriginal", Categories: []string{"algebra"}}
	require.NoError(t, s.Save(ctx, p))

	p.Content = "#problem\nrevised"
	p.Categories = []string{"geometry"}
	require.NoError(t, s.Save(ctx, p))

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "#problem\nrevised", got.Content)
	assert.Equal(t, []string{"geometry"}, got.Categories)
}

func TestSaveRequiresContent(t *testing.T) {
	s := openTestStore(t)
	err := s.Save(context.Background(), &store.Problem{Content: "   "})
	require.Error(t, err)
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), 9999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &store.Problem{
		Content: "#problem\nfactor the polynomial", Categories: []string{"algebra"},
	}))
	require.NoError(t, s.Save(ctx, &store.Problem{
		Content: "#problem\nfind the area", Categories: []string{"geometry"},
	}))

	all, err := s.List(ctx, store.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	algebra, err := s.List(ctx, store.ListFilter{Category: "algebra"})
	require.NoError(t, err)
	require.Len(t, algebra, 1)
	assert.Contains(t, algebra[0].Content, "polynomial")

	area, err := s.List(ctx, store.ListFilter{Search: "area"})
	require.NoError(t, err)
	require.Len(t, area, 1)

	none, err := s.List(ctx, store.ListFilter{Search: "calculus"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := &store.Problem{Content: "#problem\ntemporary"}
	require.NoError(t, s.Save(ctx, p))
	require.NoError(t, s.Delete(ctx, p.ID))

	_, err := s.Get(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, p.ID), store.ErrNotFound)
}

func TestCategories(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &store.Problem{
		Content: "#problem\none", Categories: []string{"b", "a"},
	}))

	names, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}
