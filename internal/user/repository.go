// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/mpke-dev/beatstore/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	RoleForUser(ctx context.Context, userID int64) (string, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts the user and its single role assignment in one transaction.
// The schema keeps the user_roles join table, but every account gets exactly
// one role row.
func (r *repository) Create(ctx context.Context, user *User) error {
	role := user.Role
	if role == "" {
		role = RoleUser
	}

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO users (email, password_hash, name)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`

		if err := tx.GetContext(ctx, user, query,
			user.Email,
			user.PasswordHash,
			user.Name,
		); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		var roleID int64
		roleQuery := `SELECT id FROM roles WHERE name = $1`
		if err := tx.GetContext(ctx, &roleID, roleQuery, role); err != nil {
			return fmt.Errorf("lookup role %q: %w", role, err)
		}

		assignQuery := `
			INSERT INTO user_roles (user_id, role_id)
			VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, assignQuery, user.ID, roleID); err != nil {
			return fmt.Errorf("assign role: %w", err)
		}

		return nil
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	user.Role = role
	return nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.name, u.created_at,
		       r.name AS role
		FROM users u
		JOIN user_roles ur ON u.id = ur.user_id
		JOIN roles r ON ur.role_id = r.id
		WHERE u.email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.name, u.created_at,
		       r.name AS role
		FROM users u
		JOIN user_roles ur ON u.id = ur.user_id
		JOIN roles r ON ur.role_id = r.id
		WHERE u.id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) RoleForUser(
	ctx context.Context,
	userID int64,
) (string, error) {
	query := `
		SELECT r.name
		FROM user_roles ur
		JOIN roles r ON ur.role_id = r.id
		WHERE ur.user_id = $1`

	var role string
	err := r.db.GetContext(ctx, &role, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		// Token verified but the account has no role row; treat as no role
		// rather than an auth failure.
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get role for user: %w", err)
	}

	return role, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	userID int64,
	passwordHash string,
) error {
	query := `UPDATE users SET password_hash = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
