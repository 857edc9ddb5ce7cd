package apperr

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error kinds shared by every repository and handler.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("resource not found")
	ErrReferenced    = errors.New("resource is referenced by other records")
	ErrConflict      = errors.New("resource already exists")
	ErrNoRowsChanged = errors.New("no rows were changed")
)

// Kind is one row of the error → response table.
type Kind struct {
	Status int
	Code   string
}

// IsValidation reports whether err carries ozzo-validation field errors.
func IsValidation(err error) bool {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	var verr validation.Error
	return errors.As(err, &verr)
}

// IsStoreError reports whether err carries a PostgreSQL error, whose text
// must not reach the client.
func IsStoreError(err error) bool {
	var pg *pgconn.PgError
	return errors.As(err, &pg)
}

var (
	kindValidation = Kind{http.StatusBadRequest, "VALIDATION_FAILED"}
	kindInternal   = Kind{http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"}
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrBadRequest, Kind{http.StatusBadRequest, "BAD_REQUEST"}},
	{ErrUnauthorized, Kind{http.StatusUnauthorized, "UNAUTHORIZED"}},
	{ErrForbidden, Kind{http.StatusForbidden, "FORBIDDEN"}},
	{ErrNotFound, Kind{http.StatusNotFound, "NOT_FOUND"}},
	{ErrReferenced, Kind{http.StatusConflict, "REFERENCED"}},
	{ErrConflict, Kind{http.StatusConflict, "CONFLICT"}},
	{ErrNoRowsChanged, kindInternal},
}

// KindOf maps err to its HTTP status and error code. Unknown errors are 500.
func KindOf(err error) Kind {
	if err == nil {
		return Kind{Status: http.StatusOK}
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return kindInternal
	}
	if IsValidation(err) {
		return kindValidation
	}

	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return kindInternal
}

// FromPG translates the PostgreSQL constraint errors the API cares about
// into error kinds, keeping the original error in the chain. Other errors
// are returned unchanged.
func FromPG(err error) error {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return err
	}

	switch pg.Code {
	case "23503": // foreign_key_violation
		return errors.Join(ErrReferenced, err)
	case "23505": // unique_violation
		return errors.Join(ErrConflict, err)
	case "23502", "22001", "22003": // not_null_violation, string_data_right_truncation, numeric_value_out_of_range
		return errors.Join(ErrBadRequest, err)
	default:
		return err
	}
}
