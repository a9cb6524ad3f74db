// AngelaMos | 2026
// repository.go

package opinion

import (
	"context"
	"fmt"

	"github.com/mpke-dev/beatstore/internal/core"
)

type Repository interface {
	Create(ctx context.Context, o *Opinion) error
	ListForBeat(ctx context.Context, beatID int64) ([]Opinion, error)
	IsAuthor(ctx context.Context, opinionID, userID int64) (bool, error)
	Delete(ctx context.Context, opinionID int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Opinion) error {
	query := `
		INSERT INTO opinions (content, beat_id, user_id, name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	if err := r.db.GetContext(ctx, o, query,
		o.Content,
		o.BeatID,
		o.UserID,
		o.Name,
	); err != nil {
		return fmt.Errorf("insert opinion: %w", err)
	}

	return nil
}

func (r *repository) ListForBeat(
	ctx context.Context,
	beatID int64,
) ([]Opinion, error) {
	query := `
		SELECT id, beat_id, user_id, name, content, created_at
		FROM opinions
		WHERE beat_id = $1
		ORDER BY created_at DESC, id DESC`

	var opinions []Opinion
	if err := r.db.SelectContext(ctx, &opinions, query, beatID); err != nil {
		return nil, fmt.Errorf("list opinions: %w", err)
	}

	return opinions, nil
}

func (r *repository) IsAuthor(
	ctx context.Context,
	opinionID, userID int64,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM opinions WHERE id = $1 AND user_id = $2
		)`

	var isAuthor bool
	if err := r.db.GetContext(ctx, &isAuthor, query, opinionID, userID); err != nil {
		return false, fmt.Errorf("check opinion author: %w", err)
	}

	return isAuthor, nil
}

func (r *repository) Delete(ctx context.Context, opinionID int64) error {
	query := `DELETE FROM opinions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, opinionID)
	if err != nil {
		return fmt.Errorf("delete opinion: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete opinion: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete opinion: %w", core.ErrNotFound)
	}

	return nil
}
