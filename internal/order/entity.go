// AngelaMos | 2026
// entity.go

package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle is created → paid; total_price is computed once at
// checkout and never recomputed.
type Order struct {
	ID             int64           `db:"id"               json:"id"`
	UserID         int64           `db:"user_id"          json:"user_id"`
	TotalPrice     decimal.Decimal `db:"total_price"      json:"total_price"`
	DiscountCodeID *int64          `db:"discount_code_id" json:"discount_code_id"`
	IsPaid         bool            `db:"is_paid"          json:"is_paid"`
	PaidAt         *time.Time      `db:"paid_at"          json:"paid_at"`
	CreatedAt      time.Time       `db:"created_at"       json:"created_at"`
}

type DiscountCode struct {
	ID                 int64           `db:"id"                  json:"id"`
	Code               string          `db:"code"                json:"code"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage" json:"discount_percentage"`
	IsActive           bool            `db:"is_active"           json:"is_active"`
	ExpiresAt          *time.Time      `db:"expires_at"          json:"expires_at"`
}

// Item is a finalized cart line as rendered on the order detail page.
type Item struct {
	CartID     int64  `db:"cart_id"     json:"cart_id"`
	BeatID     int64  `db:"beat_id"     json:"beat_id"`
	Title      string `db:"title"       json:"title"`
	BPM        int    `db:"bpm"         json:"bpm"`
	MusicalKey string `db:"musical_key" json:"musical_key"`
	ImageURL   string `db:"image_url"   json:"image_url"`
	MP3URL     string `db:"mp3_url"     json:"mp3_url"`
}

// DownloadLine carries what fulfillment needs for one purchased beat.
type DownloadLine struct {
	BeatID     int64   `db:"beat_id"`
	Title      string  `db:"title"`
	MP3URL     string  `db:"mp3_url"`
	ArchiveURL *string `db:"archive_url"`
}

// Buyer identifies the order's owner for the fulfillment email.
type Buyer struct {
	Email string `db:"email"`
	Name  string `db:"name"`
}
