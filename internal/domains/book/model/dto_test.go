package model

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "bookstore-api/internal/domains/author/model"
)

func ptr[T any](v T) *T { return &v }

func TestBookCreateDTOValidate(t *testing.T) {
	assert.NoError(t, BookCreateDTO{Title: "Go"}.Validate())
	assert.NoError(t, BookCreateDTO{Title: "Go", Year: ptr(2015), Price: ptr(decimal.NewFromInt(0))}.Validate())
	assert.NoError(t, BookCreateDTO{Title: "Go", Price: ptr(decimal.RequireFromString("10.50"))}.Validate())
	assert.NoError(t, BookCreateDTO{Title: "Go", Price: ptr(decimal.RequireFromString("10.500"))}.Validate())
	assert.NoError(t, BookCreateDTO{Title: "Go", Price: ptr(decimal.RequireFromString("99999999.99"))}.Validate())

	tests := []struct {
		name  string
		dto   BookCreateDTO
		field string
	}{
		{"missing title", BookCreateDTO{}, "title"},
		{"year out of range", BookCreateDTO{Title: "Go", Year: ptr(10000)}, "year"},
		{"negative price", BookCreateDTO{Title: "Go", Price: ptr(decimal.NewFromInt(-1))}, "price"},
		{"price with three decimals", BookCreateDTO{Title: "Go", Price: ptr(decimal.RequireFromString("10.555"))}, "price"},
		{"price beyond the column", BookCreateDTO{Title: "Go", Price: ptr(decimal.RequireFromString("100000000"))}, "price"},
		{"negative author id", BookCreateDTO{Title: "Go", AuthorID: ptr(int64(-2))}, "author_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dto.Validate()
			require.Error(t, err)
			errs, ok := err.(validation.Errors)
			require.True(t, ok)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestBookMapping(t *testing.T) {
	authorID := int64(3)
	b := &Book{
		ID:       1,
		Title:    "Go",
		ISBN:     ptr("978"),
		AuthorID: &authorID,
		Author: &authormodel.Author{
			ID:        3,
			FirstName: "Jane",
			Books:     []authormodel.BookSummary{{ID: 1, Title: "Go"}},
		},
	}

	dto := b.ToDTO()
	require.NotNil(t, dto.Author)
	assert.Equal(t, "Jane", dto.Author.FirstName)
	assert.Nil(t, dto.Author.Books, "nested author is mapped one level deep")
	assert.Equal(t, "978", *dto.ISBN)

	assert.Nil(t, (&Book{Title: "x"}).ToDTO().Author)
}

func TestBookUpdateApplyTo(t *testing.T) {
	old := int64(1)
	b := &Book{ID: 5, Title: "Old", AuthorID: &old, Author: &authormodel.Author{ID: 1}}

	req := &BookUpdateDTO{Title: "New", Year: ptr(2020)}
	req.ApplyTo(b)

	assert.Equal(t, int64(5), b.ID)
	assert.Equal(t, "New", b.Title)
	assert.Nil(t, b.AuthorID)
	assert.Nil(t, b.Author)
	assert.Equal(t, 2020, *b.Year)

	assert.True(t, req.MatchesID(5))
	assert.False(t, (&BookUpdateDTO{ID: ptr(int64(4))}).MatchesID(5))

	created := (&BookCreateDTO{Title: "Go", Summary: ptr("s")}).ToEntity()
	assert.Zero(t, created.ID)
	assert.Equal(t, "s", *created.Summary)
}
