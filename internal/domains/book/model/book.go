package model

import (
	"github.com/shopspring/decimal"

	authormodel "bookstore-api/internal/domains/author/model"
)

// Book is the persisted book row. Author is a non-owning reference filled
// by FindByID when AuthorID is set.
type Book struct {
	ID       int64               `json:"id"`
	Title    string              `json:"title"`
	Year     *int                `json:"year,omitempty"`
	ISBN     *string             `json:"isbn,omitempty"`
	Summary  *string             `json:"summary,omitempty"`
	Image    *string             `json:"image,omitempty"`
	Price    *decimal.Decimal    `json:"price,omitempty"`
	AuthorID *int64              `json:"author_id,omitempty"`
	Author   *authormodel.Author `json:"author,omitempty"`
}
