package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	txutil "bookstore-api/pkg/database"
)

// ErrNoRowReturned aborts SaveChanges when a staged RETURNING statement
// produced no row, e.g. an INSERT ... SELECT whose SELECT matched nothing.
var ErrNoRowReturned = errors.New("staged statement returned no row")

// change is one staged statement. When dest is set the statement is expected
// to RETURN one row, which is scanned into dest.
type change struct {
	sql  string
	args []any
	dest []any
}

// Session is the unit of work of the data context: statements are staged with
// Add/Update/Remove and only reach the store on SaveChanges, all in one transaction.
// A Session belongs to a single call and is not safe for concurrent use.
type Session struct {
	db      txutil.Beginner
	changes []change
}

func NewSession(db txutil.Beginner) *Session {
	return &Session{db: db}
}

// Add stages an INSERT ... RETURNING; the returned row is scanned into dest on save.
func (s *Session) Add(sql string, args []any, dest ...any) {
	s.changes = append(s.changes, change{sql: sql, args: args, dest: dest})
}

// Update stages an UPDATE statement.
func (s *Session) Update(sql string, args ...any) {
	s.changes = append(s.changes, change{sql: sql, args: args})
}

// Remove stages a DELETE statement.
func (s *Session) Remove(sql string, args ...any) {
	s.changes = append(s.changes, change{sql: sql, args: args})
}

// Pending returns the number of staged statements.
func (s *Session) Pending() int {
	return len(s.changes)
}

// SaveChanges applies every staged statement in one transaction and returns the
// number of rows changed. Nothing staged means nothing changed. A RETURNING
// statement without a row rolls everything back with ErrNoRowReturned. The
// staged statements are discarded whether or not the commit succeeds.
func (s *Session) SaveChanges(ctx context.Context) (int64, error) {
	if len(s.changes) == 0 {
		return 0, nil
	}

	changes := s.changes
	s.changes = nil

	return txutil.WithTransactionResult(ctx, s.db, func(tx pgx.Tx) (int64, error) {
		var affected int64

		for _, ch := range changes {
			if ch.dest != nil {
				err := tx.QueryRow(ctx, ch.sql, ch.args...).Scan(ch.dest...)
				if errors.Is(err, pgx.ErrNoRows) {
					return 0, ErrNoRowReturned
				}
				if err != nil {
					return 0, err
				}
				affected++
				continue
			}

			tag, err := tx.Exec(ctx, ch.sql, ch.args...)
			if err != nil {
				return 0, err
			}
			affected += tag.RowsAffected()
		}

		return affected, nil
	})
}
