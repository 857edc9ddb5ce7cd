package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bookstore-api/internal/domains/user/model"
	"bookstore-api/internal/infrastructure/database"
	"bookstore-api/internal/shared/apperr"
)

// UserRepository is the identity store: accounts and their roles.
type UserRepository interface {
	FindByUserName(ctx context.Context, userName string) (*model.User, error)
	ExistsByUserName(ctx context.Context, userName string) (bool, error)
	// Create inserts the user and links its roles in one transaction.
	Create(ctx context.Context, u *model.User) error
	// EnsureRole creates the role if missing and reports whether it did.
	EnsureRole(ctx context.Context, name string) (bool, error)
}

type postgresRepository struct {
	db database.DB
}

func NewPostgresRepository(db database.DB) UserRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) FindByUserName(ctx context.Context, userName string) (*model.User, error) {
	query := `
		SELECT u.id, u.user_name, u.email, u.password_hash, u.created_at,
		       COALESCE(array_agg(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		LEFT JOIN roles r ON r.id = ur.role_id
		WHERE u.user_name = $1
		GROUP BY u.id
	`

	var u model.User
	err := r.db.QueryRow(ctx, query, userName).Scan(
		&u.ID,
		&u.UserName,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.Roles,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user %q: %w", userName, err)
	}

	return &u, nil
}

func (r *postgresRepository) ExistsByUserName(ctx context.Context, userName string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE user_name = $1)`, userName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user %q: %w", userName, err)
	}
	return exists, nil
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) error {
	s := database.NewSession(r.db)
	s.Add(`
		INSERT INTO users (id, user_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, []any{u.ID, u.UserName, u.Email, u.PasswordHash}, &u.CreatedAt)

	for _, role := range u.Roles {
		var roleID int64
		s.Add(`
			INSERT INTO user_roles (user_id, role_id)
			SELECT $1, id FROM roles WHERE name = $2
			RETURNING role_id
		`, []any{u.ID, role}, &roleID)
	}

	if _, err := s.SaveChanges(ctx); err != nil {
		if errors.Is(err, database.ErrNoRowReturned) {
			return fmt.Errorf("failed to create user %q: %w", u.UserName, model.ErrUnknownRole)
		}
		err = apperr.FromPG(err)
		if errors.Is(err, apperr.ErrConflict) {
			return fmt.Errorf("%w: %s", model.ErrUserExists, u.UserName)
		}
		return fmt.Errorf("failed to create user %q: %w", u.UserName, err)
	}
	return nil
}

func (r *postgresRepository) EnsureRole(ctx context.Context, name string) (bool, error) {
	tag, err := r.db.Exec(ctx, `INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return false, fmt.Errorf("failed to ensure role %q: %w", name, err)
	}
	return tag.RowsAffected() > 0, nil
}
