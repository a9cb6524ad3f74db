// AngelaMos | 2026
// entity.go

package opinion

import (
	"time"
)

// Opinion is a comment on a beat. UserID is null for anonymous posters; Name
// is the display name, defaulted when blank.
type Opinion struct {
	ID        int64     `db:"id"         json:"id"`
	BeatID    int64     `db:"beat_id"    json:"beat_id"`
	UserID    *int64    `db:"user_id"    json:"user_id"`
	Name      string    `db:"name"       json:"name"`
	Content   string    `db:"content"    json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const defaultDisplayName = "Anon"
