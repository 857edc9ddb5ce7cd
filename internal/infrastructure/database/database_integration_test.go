//go:build integration

package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-api/internal/infrastructure/database"
	"bookstore-api/internal/testutil"
)

func TestMigrateIsIdempotent(t *testing.T) {
	pool := testutil.NewPostgres(t)

	applied, err := database.Migrate(context.Background(), pool)
	require.NoError(t, err)
	assert.Empty(t, applied)

	var n int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestSessionSaveChanges(t *testing.T) {
	pool := testutil.NewPostgres(t)
	ctx := context.Background()

	s := database.NewSession(pool)
	affected, err := s.SaveChanges(ctx)
	require.NoError(t, err)
	assert.Zero(t, affected)

	var id int64
	s.Add(`INSERT INTO authors (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		[]any{"Jane", "Doe"}, &id)
	s.Update(`UPDATE authors SET bio = $1 WHERE id = $2`, "late", int64(999))
	assert.Equal(t, 2, s.Pending())

	affected, err = s.SaveChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NotZero(t, id)
	assert.Zero(t, s.Pending())

	t.Run("rolls back on failure", func(t *testing.T) {
		s.Add(`INSERT INTO authors (first_name, last_name) VALUES ($1, $2) RETURNING id`,
			[]any{"John", "Roe"}, new(int64))
		s.Add(`INSERT INTO books (title, author_id) VALUES ($1, $2) RETURNING id`,
			[]any{"Orphan", int64(12345)}, new(int64))

		_, err := s.SaveChanges(ctx)
		require.Error(t, err)

		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n))
		assert.Equal(t, 1, n)
	})
}
