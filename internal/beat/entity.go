// AngelaMos | 2026
// entity.go

package beat

import (
	"time"

	"github.com/lib/pq"
)

type Beat struct {
	ID         int64          `db:"id"          json:"id"`
	Title      string         `db:"title"       json:"title"`
	BPM        int            `db:"bpm"         json:"bpm"`
	MusicalKey string         `db:"musical_key" json:"musical_key"`
	Tags       pq.StringArray `db:"tags"        json:"tags"`
	MP3URL     string         `db:"mp3_url"     json:"mp3_url"`
	ImageURL   string         `db:"image_url"   json:"image_url"`
	Sample     bool           `db:"sample"      json:"sample"`
	MP3Only    bool           `db:"mp3_only"    json:"mp3_only"`
	CreatedAt  time.Time      `db:"created_at"  json:"created_at"`
}

// Detail is a Beat plus the aggregated author credits. Beats are only
// reachable through the author join, so a row with no credits reads as
// not found.
type Detail struct {
	Beat
	Authors pq.StringArray `db:"authors" json:"authors"`
}

type Author struct {
	ID   int64  `db:"id"   json:"id"`
	Name string `db:"name" json:"name"`
}
