// AngelaMos | 2026
// entity.go

package license

import (
	"github.com/shopspring/decimal"
)

type License struct {
	ID    int64           `db:"id"    json:"id"`
	Name  string          `db:"name"  json:"name"`
	Price decimal.Decimal `db:"price" json:"price"`
}

// MP3OnlyName is the license tier an mp3-only beat is restricted to.
const MP3OnlyName = "mp3-only"
