// AngelaMos | 2026
// entity.go

package cart

// Item is an active cart row joined with the display fields the storefront
// renders.
type Item struct {
	CartID      int64  `db:"cart_id"      json:"cart_id"`
	BeatID      int64  `db:"beat_id"      json:"beat_id"`
	BeatTitle   string `db:"beat_title"   json:"beat_title"`
	BPM         int    `db:"bpm"          json:"bpm"`
	MusicalKey  string `db:"musical_key"  json:"musical_key"`
	LicenseID   int64  `db:"license_id"   json:"license_id"`
	LicenseName string `db:"license_name" json:"license_name"`
}
