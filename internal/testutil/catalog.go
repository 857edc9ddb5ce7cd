package testutil

import (
	"context"

	authormodel "bookstore-api/internal/domains/author/model"
	bookmodel "bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/shared/apperr"
)

// Catalog is an in-memory author/book store with the relations and the
// restrict-on-delete rule of the PostgreSQL schema.
type Catalog struct {
	Authors *Memory[authormodel.Author]
	Books   *Memory[bookmodel.Book]
}

func NewCatalog() *Catalog {
	c := &Catalog{
		Authors: NewMemory(
			func(a *authormodel.Author) int64 { return a.ID },
			func(a *authormodel.Author, id int64) { a.ID = id },
		),
		Books: NewMemory(
			func(b *bookmodel.Book) int64 { return b.ID },
			func(b *bookmodel.Book, id int64) { b.ID = id },
		),
	}

	c.Authors.Hydrate = func(a *authormodel.Author) {
		a.Books = nil
		c.Books.Each(func(b bookmodel.Book) {
			if b.AuthorID != nil && *b.AuthorID == a.ID {
				a.Books = append(a.Books, authormodel.BookSummary{
					ID:      b.ID,
					Title:   b.Title,
					Year:    b.Year,
					ISBN:    b.ISBN,
					Summary: b.Summary,
					Image:   b.Image,
					Price:   b.Price,
				})
			}
		})
	}

	c.Authors.BeforeDelete = func(a *authormodel.Author) error {
		var referenced bool
		c.Books.Each(func(b bookmodel.Book) {
			if b.AuthorID != nil && *b.AuthorID == a.ID {
				referenced = true
			}
		})
		if referenced {
			return apperr.ErrReferenced
		}
		return nil
	}

	c.Books.Hydrate = func(b *bookmodel.Book) {
		b.Author = nil
		if b.AuthorID == nil {
			return
		}
		c.Authors.mu.Lock()
		a, ok := c.Authors.items[*b.AuthorID]
		c.Authors.mu.Unlock()
		if ok {
			a.Books = nil
			b.Author = &a
		}
	}

	return c
}

// AddAuthor stores an author and returns its id.
func (c *Catalog) AddAuthor(first, last string) int64 {
	a := &authormodel.Author{FirstName: first, LastName: last}
	_, _ = c.Authors.Create(context.Background(), a)
	return a.ID
}

// AddBook stores a book and returns its id.
func (c *Catalog) AddBook(title string, authorID *int64) int64 {
	b := &bookmodel.Book{Title: title, AuthorID: authorID}
	_, _ = c.Books.Create(context.Background(), b)
	return b.ID
}
