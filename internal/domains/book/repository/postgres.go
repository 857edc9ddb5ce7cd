package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	authormodel "bookstore-api/internal/domains/author/model"
	"bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/infrastructure/database"
	"bookstore-api/internal/shared/apperr"
	"bookstore-api/internal/shared/repository"
	"bookstore-api/internal/shared/utils"
	"bookstore-api/pkg/cache"
	"bookstore-api/pkg/logger"
)

// Cache key constants
const (
	bookCacheKeyPrefix = "book:"
	bookListKey        = "books:all"
	authorCachePattern = "author:*"
	cacheTTL           = 15 * time.Minute
)

// Every read joins the author so lists and lookups carry the same shape.
const selectBooks = `
	SELECT b.id, b.title, b.year, b.isbn, b.summary, b.image, b.price, b.author_id,
	       a.id, a.first_name, a.last_name, COALESCE(a.bio, '')
	FROM books b
	LEFT JOIN authors a ON a.id = b.author_id
`

// PostgresRepository implements repository.Repository[model.Book] on pgx,
// with cache-aside reads through cache.Cache.
type PostgresRepository struct {
	db    database.DB
	cache cache.Cache
	log   *logger.Logger
}

var _ repository.Repository[model.Book] = (*PostgresRepository)(nil)

func NewPostgresRepository(db database.DB, c cache.Cache, log *logger.Logger) *PostgresRepository {
	if c == nil {
		c = cache.Noop{}
	}
	return &PostgresRepository{db: db, cache: c, log: log}
}

func bookKey(id int64) string {
	return fmt.Sprintf("%s%d", bookCacheKeyPrefix, id)
}

// scanBook reads one row of selectBooks.
func scanBook(row pgx.Row) (model.Book, error) {
	var (
		b         model.Book
		price     decimal.NullDecimal
		authorID  *int64
		firstName *string
		lastName  *string
		bio       *string
	)

	err := row.Scan(
		&b.ID, &b.Title, &b.Year, &b.ISBN, &b.Summary, &b.Image, &price, &b.AuthorID,
		&authorID, &firstName, &lastName, &bio,
	)
	if err != nil {
		return b, err
	}

	b.Price = utils.DecimalPtr(price)
	if authorID != nil {
		b.Author = &authormodel.Author{
			ID:        *authorID,
			FirstName: deref(firstName),
			LastName:  deref(lastName),
			Bio:       deref(bio),
		}
	}
	return b, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FindAll returns every book in id order, each with its author.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if found, err := r.cache.Get(ctx, bookListKey, &books); err == nil && found {
		return books, nil
	}

	rows, err := r.db.Query(ctx, selectBooks+` ORDER BY b.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Book, error) {
		return scanBook(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan books: %w", err)
	}
	if books == nil {
		books = []model.Book{}
	}

	r.store(ctx, bookListKey, books)
	return books, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	if found, err := r.cache.Get(ctx, bookKey(id), &b); err == nil && found {
		return &b, nil
	}

	b, err := scanBook(r.db.QueryRow(ctx, selectBooks+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	r.store(ctx, bookKey(id), b)
	return &b, nil
}

func (r *PostgresRepository) Create(ctx context.Context, b *model.Book) (bool, error) {
	s := database.NewSession(r.db)
	s.Add(`
		INSERT INTO books (title, year, isbn, summary, image, price, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, []any{b.Title, b.Year, b.ISBN, b.Summary, b.Image, utils.NullDecimal(b.Price), b.AuthorID}, &b.ID)

	ok, err := r.commit(ctx, s)
	if err != nil {
		return false, fmt.Errorf("failed to create book: %w", err)
	}
	if ok {
		r.invalidate(ctx, b.ID)
	}
	return ok, nil
}

func (r *PostgresRepository) Update(ctx context.Context, b *model.Book) (bool, error) {
	s := database.NewSession(r.db)
	s.Update(`
		UPDATE books
		SET title = $2, year = $3, isbn = $4, summary = $5, image = $6, price = $7, author_id = $8
		WHERE id = $1
	`, b.ID, b.Title, b.Year, b.ISBN, b.Summary, b.Image, utils.NullDecimal(b.Price), b.AuthorID)

	ok, err := r.commit(ctx, s)
	if err != nil {
		return false, fmt.Errorf("failed to update book %d: %w", b.ID, err)
	}
	if ok {
		r.invalidate(ctx, b.ID)
	}
	return ok, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, b *model.Book) (bool, error) {
	s := database.NewSession(r.db)
	s.Remove(`DELETE FROM books WHERE id = $1`, b.ID)

	ok, err := r.commit(ctx, s)
	if err != nil {
		return false, fmt.Errorf("failed to delete book %d: %w", b.ID, err)
	}
	if ok {
		r.invalidate(ctx, b.ID)
	}
	return ok, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book %d: %w", id, err)
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

// invalidate drops the book, the list, and every cached author (authors embed their books).
func (r *PostgresRepository) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, bookKey(id), bookListKey); err != nil {
		r.log.Warn("cache delete failed", map[string]interface{}{"book_id": id, "error": err.Error()})
	}
	if err := r.cache.DeletePattern(ctx, authorCachePattern); err != nil {
		r.log.Warn("cache delete pattern failed", map[string]interface{}{"pattern": authorCachePattern, "error": err.Error()})
	}
}
