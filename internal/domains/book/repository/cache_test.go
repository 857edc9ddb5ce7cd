package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "bookstore-api/internal/domains/author/model"
	"bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/testutil"
	"bookstore-api/pkg/logger"
)

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCache()
	for _, k := range []string{"book:4", "book:5", "books:all", "author:1", "author:2", "authors:all"} {
		require.NoError(t, c.Set(ctx, k, "cached", time.Minute))
	}
	r := NewPostgresRepository(nil, c, logger.Nop())

	r.invalidate(ctx, 4)

	assert.Equal(t, []string{"authors:all", "book:5"}, c.Keys())
	assert.Equal(t, []string{"book:4", "books:all"}, c.Deleted)
	assert.Equal(t, []string{"author:*"}, c.Patterns)
}

func TestFindByIDHitsTheCache(t *testing.T) {
	ctx := context.Background()
	c := testutil.NewCache()
	authorID := int64(2)
	require.NoError(t, c.Set(ctx, "book:9", model.Book{
		ID:       9,
		Title:    "Go",
		AuthorID: &authorID,
		Author:   &authormodel.Author{ID: 2, FirstName: "Jane"},
	}, time.Minute))

	r := NewPostgresRepository(nil, c, logger.Nop())

	b, err := r.FindByID(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Go", b.Title)
	require.NotNil(t, b.Author)
	assert.Equal(t, "Jane", b.Author.FirstName)
}
