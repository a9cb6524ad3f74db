// AngelaMos | 2026
// repository.go

package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mpke-dev/beatstore/internal/core"
)

type Repository interface {
	Add(ctx context.Context, userID, beatID, licenseID int64) error
	ListActive(ctx context.Context, userID int64) ([]Item, error)
	Delete(ctx context.Context, cartID, userID int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Add relies on the partial unique index over active rows: a duplicate
// (user, beat, license) triple comes back as 23505 rather than being checked
// first, so two concurrent adds can never both succeed.
func (r *repository) Add(
	ctx context.Context,
	userID, beatID, licenseID int64,
) error {
	query := `
		INSERT INTO carts (user_id, beat_id, license_id, order_id)
		VALUES ($1, $2, $3, NULL)`

	if _, err := r.db.ExecContext(ctx, query, userID, beatID, licenseID); err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("add cart item: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("add cart item: %w", err)
	}

	return nil
}

func (r *repository) ListActive(
	ctx context.Context,
	userID int64,
) ([]Item, error) {
	query := `
		SELECT c.id AS cart_id,
		       b.id AS beat_id,
		       b.title AS beat_title,
		       b.bpm,
		       b.musical_key,
		       l.id AS license_id,
		       l.name AS license_name
		FROM carts c
		JOIN beats b ON c.beat_id = b.id
		JOIN licenses l ON c.license_id = l.id
		WHERE c.user_id = $1 AND c.order_id IS NULL
		ORDER BY c.id`

	var items []Item
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	return items, nil
}

// Delete is scoped to the owner; a missing row and a foreign row are
// indistinguishable to the caller.
func (r *repository) Delete(ctx context.Context, cartID, userID int64) error {
	query := `DELETE FROM carts WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, cartID, userID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete cart item: %w", core.ErrNotFound)
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
