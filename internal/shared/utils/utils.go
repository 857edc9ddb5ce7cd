package utils

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ParseID parses a path id. Non-numeric and negative values are rejected.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	if id < 0 {
		return 0, fmt.Errorf("invalid id %q: must not be negative", s)
	}
	return id, nil
}

// DecimalPtr converts a scanned NUMERIC column into an optional decimal.
func DecimalPtr(nd decimal.NullDecimal) *decimal.Decimal {
	if !nd.Valid {
		return nil
	}
	d := nd.Decimal
	return &d
}

// NullDecimal is the inverse of DecimalPtr, used as a query argument.
func NullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
