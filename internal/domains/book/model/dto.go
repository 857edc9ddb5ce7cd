package model

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	authormodel "bookstore-api/internal/domains/author/model"
)

// Constants for validation
const (
	MaxTitleLength   = 500
	MaxISBNLength    = 50
	MaxImageLength   = 500
	MaxSummaryLength = 10000
	MinYear          = 0
	MaxYear          = 9999
	// PriceScale and MaxPrice mirror the NUMERIC(10, 2) price column.
	PriceScale = 2
)

var MaxPrice = decimal.New(1, 8)

var (
	ErrIDMismatch     = errors.New("body id does not match path id")
	ErrAuthorNotFound = errors.New("author does not exist")
)

// BookDTO - GET responses. Author is mapped one level deep, without its books.
type BookDTO struct {
	ID       int64                  `json:"id"`
	Title    string                 `json:"title"`
	Year     *int                   `json:"year,omitempty"`
	ISBN     *string                `json:"isbn,omitempty"`
	Summary  *string                `json:"summary,omitempty"`
	Image    *string                `json:"image,omitempty"`
	Price    *decimal.Decimal       `json:"price,omitempty"`
	AuthorID *int64                 `json:"author_id,omitempty"`
	Author   *authormodel.AuthorDTO `json:"author,omitempty"`
}

// BookCreateDTO - POST /api/books
type BookCreateDTO struct {
	Title    string           `json:"title"`
	Year     *int             `json:"year,omitempty"`
	ISBN     *string          `json:"isbn,omitempty"`
	Summary  *string          `json:"summary,omitempty"`
	Image    *string          `json:"image,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	AuthorID *int64           `json:"author_id,omitempty"`
}

func (r BookCreateDTO) Validate() error {
	return validation.ValidateStruct(&r, bookRules(&r.Title, &r.Year, &r.ISBN, &r.Summary, &r.Image, &r.Price, &r.AuthorID)...)
}

// BookUpdateDTO - PUT /api/books/:id. Full replace; ID is optional in the body.
type BookUpdateDTO struct {
	ID       *int64           `json:"id,omitempty"`
	Title    string           `json:"title"`
	Year     *int             `json:"year,omitempty"`
	ISBN     *string          `json:"isbn,omitempty"`
	Summary  *string          `json:"summary,omitempty"`
	Image    *string          `json:"image,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	AuthorID *int64           `json:"author_id,omitempty"`
}

func (r BookUpdateDTO) Validate() error {
	return validation.ValidateStruct(&r, bookRules(&r.Title, &r.Year, &r.ISBN, &r.Summary, &r.Image, &r.Price, &r.AuthorID)...)
}

// MatchesID reports whether the body id, when present, agrees with the path id.
func (r BookUpdateDTO) MatchesID(id int64) bool {
	return r.ID == nil || *r.ID == id
}

func bookRules(title *string, year **int, isbn, summary, image **string, price **decimal.Decimal, authorID **int64) []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(title,
			validation.Required.Error("title is required"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(year, validation.Min(MinYear), validation.Max(MaxYear)),
		validation.Field(isbn, validation.Length(0, MaxISBNLength)),
		validation.Field(summary, validation.Length(0, MaxSummaryLength)),
		validation.Field(image, validation.Length(0, MaxImageLength)),
		validation.Field(price, validation.By(validPrice)),
		validation.Field(authorID, validation.Min(int64(0))),
	}
}

// validPrice accepts only prices the store keeps unchanged.
func validPrice(value interface{}) error {
	p, _ := value.(*decimal.Decimal)
	if p == nil {
		return nil
	}
	if p.IsNegative() {
		return errors.New("must not be negative")
	}
	if !p.Equal(p.Truncate(PriceScale)) {
		return fmt.Errorf("must have at most %d decimal places", PriceScale)
	}
	if p.GreaterThanOrEqual(MaxPrice) {
		return fmt.Errorf("must be less than %s", MaxPrice.String())
	}
	return nil
}

// ========================================
// MAPPERS
// ========================================

func (b *Book) ToDTO() *BookDTO {
	dto := &BookDTO{
		ID:       b.ID,
		Title:    b.Title,
		Year:     b.Year,
		ISBN:     b.ISBN,
		Summary:  b.Summary,
		Image:    b.Image,
		Price:    b.Price,
		AuthorID: b.AuthorID,
	}
	if b.Author != nil {
		dto.Author = &authormodel.AuthorDTO{
			ID:        b.Author.ID,
			FirstName: b.Author.FirstName,
			LastName:  b.Author.LastName,
			Bio:       b.Author.Bio,
		}
	}
	return dto
}

func (r *BookCreateDTO) ToEntity() *Book {
	return &Book{
		Title:    r.Title,
		Year:     r.Year,
		ISBN:     r.ISBN,
		Summary:  r.Summary,
		Image:    r.Image,
		Price:    r.Price,
		AuthorID: r.AuthorID,
	}
}

// ApplyTo overwrites every mutable field of b and drops the loaded author,
// which may no longer match AuthorID. The id is never touched.
func (r *BookUpdateDTO) ApplyTo(b *Book) {
	b.Title = r.Title
	b.Year = r.Year
	b.ISBN = r.ISBN
	b.Summary = r.Summary
	b.Image = r.Image
	b.Price = r.Price
	b.AuthorID = r.AuthorID
	b.Author = nil
}
