// AngelaMos | 2026
// dto_test.go

package beat_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpke-dev/beatstore/internal/beat"
)

func TestSearchRequestNormalizeDefaults(t *testing.T) {
	var req beat.SearchRequest

	req.Normalize()

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 12, req.Limit)
	assert.Equal(t, 0, req.Offset())
}

func TestSearchRequestOffset(t *testing.T) {
	req := beat.SearchRequest{Page: 3, Limit: 12}
	req.Normalize()

	assert.Equal(t, 24, req.Offset())
}

func TestSearchRequestBPMRangeFromBody(t *testing.T) {
	var req beat.SearchRequest
	body := []byte(`{"page":1,"limit":12,"bpmRange":"40,120"}`)
	require.NoError(t, json.Unmarshal(body, &req))

	req.Normalize()

	require.NotNil(t, req.BPMMin)
	require.NotNil(t, req.BPMMax)
	assert.Equal(t, 40, *req.BPMMin)
	assert.Equal(t, 120, *req.BPMMax)
}

func TestSearchRequestBPMRangeBounds(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantMin *int
		wantMax *int
	}{
		{"both bounds", "40,120", ptr(40), ptr(120)},
		{"spaces tolerated", " 40 , 120 ", ptr(40), ptr(120)},
		{"lower only", "40,", ptr(40), nil},
		{"upper only", ",120", nil, ptr(120)},
		{"empty", "", nil, nil},
		{"garbage ignored", "fast", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := beat.SearchRequest{BPMRange: tt.in}
			req.Normalize()

			assert.Equal(t, tt.wantMin, req.BPMMin)
			assert.Equal(t, tt.wantMax, req.BPMMax)
		})
	}
}

func ptr(v int) *int { return &v }

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"exact multiple", 24, 12, 2},
		{"partial last page", 25, 12, 3},
		{"fewer than one page", 5, 12, 1},
		{"no results", 0, 12, 0},
		{"limit one", 7, 1, 7},
		{"invalid limit", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, beat.TotalPages(tt.total, tt.limit))
		})
	}
}
