package model

import (
	"github.com/shopspring/decimal"
)

// Author is the persisted author row. Books is only populated by FindByID.
type Author struct {
	ID        int64         `json:"id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Bio       string        `json:"bio"`
	Books     []BookSummary `json:"books,omitempty"`
}

// BookSummary is a book as seen from its author, without the back reference.
type BookSummary struct {
	ID      int64            `json:"id"`
	Title   string           `json:"title"`
	Year    *int             `json:"year,omitempty"`
	ISBN    *string          `json:"isbn,omitempty"`
	Summary *string          `json:"summary,omitempty"`
	Image   *string          `json:"image,omitempty"`
	Price   *decimal.Decimal `json:"price,omitempty"`
}

// FullName returns "First Last".
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}
