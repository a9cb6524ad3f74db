// AngelaMos | 2026
// dto.go

package beat

import (
	"strconv"
	"strings"
)

const defaultPageSize = 12

// SearchRequest carries the storefront's filter body. BPMRange is the
// comma-joined "min,max" pair the client posts; Normalize resolves it into
// the inclusive bounds the query builder reads.
type SearchRequest struct {
	Page       int      `json:"page"       validate:"omitempty,min=1"`
	Limit      int      `json:"limit"      validate:"omitempty,min=1,max=100"`
	Title      string   `json:"title"      validate:"omitempty,max=255"`
	Tags       []string `json:"tags"       validate:"omitempty,dive,min=1,max=64"`
	MusicalKey string   `json:"musicalKey" validate:"omitempty,max=32"`
	BPMRange   string   `json:"bpmRange"   validate:"omitempty,max=16"`

	BPMMin *int `json:"-"`
	BPMMax *int `json:"-"`
}

func (r *SearchRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = defaultPageSize
	}
	r.parseBPMRange()
}

// parseBPMRange splits the "min,max" filter. Either side may be empty; a
// side that does not parse as an integer imposes no constraint.
func (r *SearchRequest) parseBPMRange() {
	if r.BPMRange == "" {
		return
	}

	parts := strings.SplitN(r.BPMRange, ",", 2)

	if v, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
		r.BPMMin = &v
	}
	if len(parts) == 2 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			r.BPMMax = &v
		}
	}
}

func (r *SearchRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

type SearchResponse struct {
	Data        []Beat `json:"data"`
	TotalCount  int    `json:"totalCount"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}

// TotalPages is ceil(total/limit); a zero-result search still reports page 0.
func TotalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}

type TagOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type UploadResponse struct {
	Message string `json:"message"`
	BeatID  int64  `json:"beatId"`
}
