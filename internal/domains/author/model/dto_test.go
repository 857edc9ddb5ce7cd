package model

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorCreateDTOValidate(t *testing.T) {
	assert.NoError(t, AuthorCreateDTO{FirstName: "Jane", LastName: "Doe"}.Validate())

	err := AuthorCreateDTO{Bio: strings.Repeat("x", MaxBioLength+1)}.Validate()
	require.Error(t, err)

	errs, ok := err.(validation.Errors)
	require.True(t, ok)
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "last_name")
	assert.Contains(t, errs, "bio")
}

func TestAuthorMapping(t *testing.T) {
	price := decimal.RequireFromString("10.50")
	a := &Author{
		ID:        4,
		FirstName: "Jane",
		LastName:  "Doe",
		Bio:       "bio",
		Books:     []BookSummary{{ID: 9, Title: "Go", Price: &price}},
	}

	dto := a.ToDTO()
	assert.Equal(t, int64(4), dto.ID)
	assert.Equal(t, "Jane Doe", a.FullName())
	require.Len(t, dto.Books, 1)
	assert.Equal(t, "Go", dto.Books[0].Title)
	assert.True(t, price.Equal(*dto.Books[0].Price))

	assert.Nil(t, (&Author{ID: 1}).ToDTO().Books)
}

func TestAuthorCreateAndUpdate(t *testing.T) {
	create := &AuthorCreateDTO{FirstName: "Jane", LastName: "Doe", Bio: "b"}
	a := create.ToEntity()
	assert.Zero(t, a.ID)
	assert.Equal(t, "Jane", a.FirstName)

	a.ID = 7
	id := int64(7)
	update := &AuthorUpdateDTO{ID: &id, FirstName: "Janet", LastName: "Roe"}
	assert.True(t, update.MatchesID(7))
	assert.False(t, update.MatchesID(8))
	assert.True(t, (&AuthorUpdateDTO{}).MatchesID(8))

	update.ApplyTo(a)
	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, "Janet", a.FirstName)
	assert.Equal(t, "Roe", a.LastName)
	assert.Empty(t, a.Bio)
}
