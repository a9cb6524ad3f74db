// AngelaMos | 2026
// repository.go

package beat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mpke-dev/beatstore/internal/core"
)

type Repository interface {
	Search(ctx context.Context, params SearchRequest) ([]Beat, int, error)
	GetWithAuthors(ctx context.Context, id int64) (*Detail, error)
	ListTags(ctx context.Context) ([]string, error)
	ListAuthors(ctx context.Context) ([]Author, error)
	CreateWithAuthors(
		ctx context.Context,
		b *Beat,
		authorNames []string,
		archiveURL string,
	) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Search applies every supplied filter conjunctively; absent filters impose
// no constraint. The match count is taken before limit/offset so pagination
// totals stay consistent with the predicate.
func (r *repository) Search(
	ctx context.Context,
	params SearchRequest,
) ([]Beat, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Title != "" {
		conditions = append(conditions, fmt.Sprintf(
			"title ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.Title)+"%")
		argIdx++
	}

	if len(params.Tags) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			"tags @> $%d", argIdx))
		args = append(args, pq.Array(params.Tags))
		argIdx++
	}

	if params.MusicalKey != "" {
		conditions = append(conditions, fmt.Sprintf(
			"musical_key ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.MusicalKey)+"%")
		argIdx++
	}

	if params.BPMMin != nil {
		conditions = append(conditions, fmt.Sprintf("bpm >= $%d", argIdx))
		args = append(args, *params.BPMMin)
		argIdx++
	}

	if params.BPMMax != nil {
		conditions = append(conditions, fmt.Sprintf("bpm <= $%d", argIdx))
		args = append(args, *params.BPMMax)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM beats WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count beats: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, title, bpm, musical_key, tags, mp3_url, image_url,
		       sample, mp3_only, created_at
		FROM beats
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.Limit, params.Offset())

	var beats []Beat
	if err := r.db.SelectContext(ctx, &beats, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search beats: %w", err)
	}

	return beats, total, nil
}

func (r *repository) GetWithAuthors(
	ctx context.Context,
	id int64,
) (*Detail, error) {
	query := `
		SELECT b.id, b.title, b.bpm, b.musical_key, b.tags, b.mp3_url,
		       b.image_url, b.sample, b.mp3_only, b.created_at,
		       array_agg(a.name ORDER BY a.name) AS authors
		FROM beats b
		JOIN beat_author ba ON b.id = ba.beat_id
		JOIN authors a ON ba.author_id = a.id
		WHERE b.id = $1
		GROUP BY b.id`

	var detail Detail
	err := r.db.GetContext(ctx, &detail, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get beat: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get beat: %w", err)
	}

	return &detail, nil
}

func (r *repository) ListTags(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT unnest(tags) AS tag FROM beats ORDER BY tag`

	var tags []string
	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

func (r *repository) ListAuthors(ctx context.Context) ([]Author, error) {
	query := `SELECT id, name FROM authors ORDER BY name`

	var authors []Author
	if err := r.db.SelectContext(ctx, &authors, query); err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	return authors, nil
}

// CreateWithAuthors inserts the beat, upserts each credited author by name,
// links the pairs, and records the optional project archive, all in one
// transaction.
func (r *repository) CreateWithAuthors(
	ctx context.Context,
	b *Beat,
	authorNames []string,
	archiveURL string,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		insertBeat := `
			INSERT INTO beats
				(title, bpm, musical_key, tags, mp3_url, image_url,
				 sample, mp3_only)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at`

		if err := tx.GetContext(ctx, b, insertBeat,
			b.Title,
			b.BPM,
			b.MusicalKey,
			b.Tags,
			b.MP3URL,
			b.ImageURL,
			b.Sample,
			b.MP3Only,
		); err != nil {
			return fmt.Errorf("insert beat: %w", err)
		}

		upsertAuthor := `
			INSERT INTO authors (name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`

		linkAuthor := `
			INSERT INTO beat_author (beat_id, author_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`

		for _, name := range authorNames {
			var authorID int64
			if err := tx.GetContext(ctx, &authorID, upsertAuthor, name); err != nil {
				return fmt.Errorf("upsert author %q: %w", name, err)
			}

			if _, err := tx.ExecContext(ctx, linkAuthor, b.ID, authorID); err != nil {
				return fmt.Errorf("link author %q: %w", name, err)
			}
		}

		if archiveURL != "" {
			insertFile := `
				INSERT INTO files (beat_id, file_url)
				VALUES ($1, $2)`
			if _, err := tx.ExecContext(ctx, insertFile, b.ID, archiveURL); err != nil {
				return fmt.Errorf("insert archive: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("create beat: %w", err)
	}

	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
