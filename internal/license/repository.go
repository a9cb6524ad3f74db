// AngelaMos | 2026
// repository.go

package license

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mpke-dev/beatstore/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]License, error)
	ListByName(ctx context.Context, name string) ([]License, error)
	BeatMP3Only(ctx context.Context, beatID int64) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]License, error) {
	query := `SELECT id, name, price FROM licenses ORDER BY price`

	var licenses []License
	if err := r.db.SelectContext(ctx, &licenses, query); err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}

	return licenses, nil
}

func (r *repository) ListByName(
	ctx context.Context,
	name string,
) ([]License, error) {
	query := `SELECT id, name, price FROM licenses WHERE name = $1`

	var licenses []License
	if err := r.db.SelectContext(ctx, &licenses, query, name); err != nil {
		return nil, fmt.Errorf("list licenses by name: %w", err)
	}

	return licenses, nil
}

func (r *repository) BeatMP3Only(
	ctx context.Context,
	beatID int64,
) (bool, error) {
	query := `SELECT mp3_only FROM beats WHERE id = $1`

	var mp3Only bool
	err := r.db.GetContext(ctx, &mp3Only, query, beatID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("get beat flags: %w", core.ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("get beat flags: %w", err)
	}

	return mp3Only, nil
}
