//go:build integration

package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "bookstore-api/internal/domains/author/model"
	authorrepo "bookstore-api/internal/domains/author/repository"
	"bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/domains/book/repository"
	"bookstore-api/internal/shared/apperr"
	"bookstore-api/internal/testutil"
	"bookstore-api/pkg/cache"
	"bookstore-api/pkg/logger"
)

func TestCatalogRepositories(t *testing.T) {
	pool := testutil.NewPostgres(t)
	ctx := context.Background()

	authors := authorrepo.NewPostgresRepository(pool, cache.Noop{}, logger.Nop())
	books := repository.NewPostgresRepository(pool, cache.Noop{}, logger.Nop())

	jane := &authormodel.Author{FirstName: "Jane", LastName: "Doe", Bio: "writes"}
	ok, err := authors.Create(ctx, jane)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotZero(t, jane.ID)

	price := decimal.RequireFromString("39.99")
	year := 2015
	book := &model.Book{Title: "Go", Year: &year, Price: &price, AuthorID: &jane.ID}
	ok, err = books.Create(ctx, book)
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("book carries its author", func(t *testing.T) {
		got, err := books.FindByID(ctx, book.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Author)
		assert.Equal(t, "Jane", got.Author.FirstName)
		assert.True(t, price.Equal(*got.Price))
		assert.Equal(t, 2015, *got.Year)
	})

	t.Run("author carries its books", func(t *testing.T) {
		got, err := authors.FindByID(ctx, jane.ID)
		require.NoError(t, err)
		require.Len(t, got.Books, 1)
		assert.Equal(t, "Go", got.Books[0].Title)
	})

	t.Run("referenced author cannot be deleted", func(t *testing.T) {
		_, err := authors.Delete(ctx, jane)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrReferenced))

		exists, err := authors.Exists(ctx, jane.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("unknown author id is rejected by the store", func(t *testing.T) {
		missing := int64(9999)
		_, err := books.Create(ctx, &model.Book{Title: "Orphan", AuthorID: &missing})
		assert.True(t, errors.Is(err, apperr.ErrReferenced))
	})

	t.Run("update and delete", func(t *testing.T) {
		book.Title = "Go 2"
		ok, err := books.Update(ctx, book)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = books.Delete(ctx, book)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = books.FindByID(ctx, book.ID)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))

		ok, err = authors.Delete(ctx, jane)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = authors.Update(ctx, jane)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("save has nothing to commit", func(t *testing.T) {
		ok, err := books.Save(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCatalogCacheEviction(t *testing.T) {
	pool := testutil.NewPostgres(t)
	ctx := context.Background()
	c := testutil.NewCache()

	authors := authorrepo.NewPostgresRepository(pool, c, logger.Nop())
	books := repository.NewPostgresRepository(pool, c, logger.Nop())

	jane := &authormodel.Author{FirstName: "Jane", LastName: "Doe"}
	_, err := authors.Create(ctx, jane)
	require.NoError(t, err)

	got, err := authors.FindByID(ctx, jane.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Books)

	book := &model.Book{Title: "Go", AuthorID: &jane.ID}
	_, err = books.Create(ctx, book)
	require.NoError(t, err)

	t.Run("new book evicts the cached author", func(t *testing.T) {
		got, err := authors.FindByID(ctx, jane.ID)
		require.NoError(t, err)
		require.Len(t, got.Books, 1)
		assert.Equal(t, "Go", got.Books[0].Title)
	})

	t.Run("renamed author evicts the cached book", func(t *testing.T) {
		_, err := books.FindByID(ctx, book.ID)
		require.NoError(t, err)
		_, err = books.FindAll(ctx)
		require.NoError(t, err)

		jane.FirstName = "Janet"
		_, err = authors.Update(ctx, jane)
		require.NoError(t, err)

		got, err := books.FindByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Janet", got.Author.FirstName)

		all, err := books.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Janet", all[0].Author.FirstName)
	})
}
