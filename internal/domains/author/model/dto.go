package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

const (
	MaxNameLength = 100
	MaxBioLength  = 5000
)

var ErrIDMismatch = errors.New("body id does not match path id")

// AuthorDTO - GET responses
type AuthorDTO struct {
	ID        int64            `json:"id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Bio       string           `json:"bio"`
	Books     []BookSummaryDTO `json:"books,omitempty"`
}

type BookSummaryDTO struct {
	ID      int64            `json:"id"`
	Title   string           `json:"title"`
	Year    *int             `json:"year,omitempty"`
	ISBN    *string          `json:"isbn,omitempty"`
	Summary *string          `json:"summary,omitempty"`
	Image   *string          `json:"image,omitempty"`
	Price   *decimal.Decimal `json:"price,omitempty"`
}

// AuthorCreateDTO - POST /api/authors
type AuthorCreateDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}

func (r AuthorCreateDTO) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&r.Bio, validation.Length(0, MaxBioLength)),
	)
}

// AuthorUpdateDTO - PUT /api/authors/:id. Full replace; ID is optional in the body.
type AuthorUpdateDTO struct {
	ID        *int64 `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}

func (r AuthorUpdateDTO) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&r.Bio, validation.Length(0, MaxBioLength)),
	)
}

// MatchesID reports whether the body id, when present, agrees with the path id.
func (r AuthorUpdateDTO) MatchesID(id int64) bool {
	return r.ID == nil || *r.ID == id
}

// ========================================
// MAPPERS
// ========================================

// ToDTO maps an author and, one level deep, its books.
func (a *Author) ToDTO() *AuthorDTO {
	dto := &AuthorDTO{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Bio:       a.Bio,
	}
	if len(a.Books) > 0 {
		dto.Books = make([]BookSummaryDTO, len(a.Books))
		for i, b := range a.Books {
			dto.Books[i] = b.ToDTO()
		}
	}
	return dto
}

func (b BookSummary) ToDTO() BookSummaryDTO {
	return BookSummaryDTO{
		ID:      b.ID,
		Title:   b.Title,
		Year:    b.Year,
		ISBN:    b.ISBN,
		Summary: b.Summary,
		Image:   b.Image,
		Price:   b.Price,
	}
}

func (r *AuthorCreateDTO) ToEntity() *Author {
	return &Author{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
	}
}

// ApplyTo overwrites every mutable field of a. The id is never touched.
func (r *AuthorUpdateDTO) ApplyTo(a *Author) {
	a.FirstName = r.FirstName
	a.LastName = r.LastName
	a.Bio = r.Bio
}
