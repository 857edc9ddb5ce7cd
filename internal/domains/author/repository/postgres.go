package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"bookstore-api/internal/domains/author/model"
	"bookstore-api/internal/infrastructure/database"
	"bookstore-api/internal/shared/apperr"
	"bookstore-api/internal/shared/repository"
	"bookstore-api/internal/shared/utils"
	"bookstore-api/pkg/cache"
	"bookstore-api/pkg/logger"
)

// Cache key constants
const (
	authorCacheKeyPrefix = "author:"
	authorListKey        = "authors:all"
	bookCachePattern     = "book:*"
	bookListKey          = "books:all"
	cacheTTL             = 15 * time.Minute
)

// PostgresRepository implements repository.Repository[model.Author] on pgx,
// with cache-aside reads through cache.Cache.
type PostgresRepository struct {
	db    database.DB
	cache cache.Cache
	log   *logger.Logger
}

var _ repository.Repository[model.Author] = (*PostgresRepository)(nil)

func NewPostgresRepository(db database.DB, c cache.Cache, log *logger.Logger) *PostgresRepository {
	if c == nil {
		c = cache.Noop{}
	}
	return &PostgresRepository{db: db, cache: c, log: log}
}

func authorKey(id int64) string {
	return fmt.Sprintf("%s%d", authorCacheKeyPrefix, id)
}

// FindAll returns every author in id order, without books.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	if found, err := r.cache.Get(ctx, authorListKey, &authors); err == nil && found {
		return authors, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, first_name, last_name, COALESCE(bio, '')
		FROM authors
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	authors, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Author, error) {
		var a model.Author
		err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Bio)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan authors: %w", err)
	}
	if authors == nil {
		authors = []model.Author{}
	}

	r.store(ctx, authorListKey, authors)
	return authors, nil
}

// FindByID loads the author with its books.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	var a model.Author
	if found, err := r.cache.Get(ctx, authorKey(id), &a); err == nil && found {
		return &a, nil
	}

	err := r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, COALESCE(bio, '')
		FROM authors
		WHERE id = $1
	`, id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Bio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	books, err := r.findBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Books = books

	r.store(ctx, authorKey(id), a)
	return &a, nil
}

func (r *PostgresRepository) findBooks(ctx context.Context, authorID int64) ([]model.BookSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, year, isbn, summary, image, price
		FROM books
		WHERE author_id = $1
		ORDER BY id
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books of author %d: %w", authorID, err)
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.BookSummary, error) {
		var (
			b     model.BookSummary
			price decimal.NullDecimal
		)
		err := row.Scan(&b.ID, &b.Title, &b.Year, &b.ISBN, &b.Summary, &b.Image, &price)
		b.Price = utils.DecimalPtr(price)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan books of author %d: %w", authorID, err)
	}
	return books, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *model.Author) (bool, error) {
	s := database.NewSession(r.db)
	s.Add(`
		INSERT INTO authors (first_name, last_name, bio)
		VALUES ($1, $2, $3)
		RETURNING id
	`, []any{a.FirstName, a.LastName, a.Bio}, &a.ID)

	ok, err := r.commit(ctx, s)
	if err != nil {
		return false, fmt.Errorf("failed to create author: %w", err)
	}
	if ok {
		r.invalidate(ctx, a.ID)
	}
	return ok, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a *model.Author) (bool, error) {
	s := database.NewSession(r.db)
	s.Update(`
		UPDATE authors
		SET first_name = $2, last_name = $3, bio = $4
		WHERE id = $1
	`, a.ID, a.FirstName, a.LastName, a.Bio)

	ok, err := r.commit(ctx, s)
	if err != nil {
		return false, fmt.Errorf("failed to update author %d: %w", a.ID, err)
	}
	if ok {
		r.invalidate(ctx, a.ID)
	}
	return ok, nil
}

// Delete fails with apperr.ErrReferenced while books still point at the author.
func (r *PostgresRepository) Delete(ctx context.Context, a *model.Author) (bool, error) {
	s := database.NewSession(r.db)
	s.Remove(`DELETE FROM authors WHERE id = $1`, a.ID)

	ok, err := r.commit(ctx, s)
	if err != nil {
		return false, fmt.Errorf("failed to delete author %d: %w", a.ID, err)
	}
	if ok {
		r.invalidate(ctx, a.ID)
	}
	return ok, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author %d: %w", id, err)
	}
	return exists, nil
}

// Save has nothing to commit: every mutation above saves its own session.
func (r *PostgresRepository) Save(ctx context.Context) (bool, error) {
	return r.commit(ctx, database.NewSession(r.db))
}

func (r *PostgresRepository) commit(ctx context.Context, s *database.Session) (bool, error) {
	n, err := s.SaveChanges(ctx)
	if err != nil {
		return false, apperr.FromPG(err)
	}
	return n > 0, nil
}

// ========================================
// CACHE HELPERS
// ========================================

func (r *PostgresRepository) store(ctx context.Context, key string, value interface{}) {
	if err := r.cache.Set(ctx, key, value, cacheTTL); err != nil {
		r.log.Warn("cache set failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

// invalidate drops the author and every cached book, since books embed their author.
func (r *PostgresRepository) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, authorKey(id), authorListKey, bookListKey); err != nil {
		r.log.Warn("cache delete failed", map[string]interface{}{"author_id": id, "error": err.Error()})
	}
	if err := r.cache.DeletePattern(ctx, bookCachePattern); err != nil {
		r.log.Warn("cache delete pattern failed", map[string]interface{}{"pattern": bookCachePattern, "error": err.Error()})
	}
}
