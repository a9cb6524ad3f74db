// AngelaMos | 2026
// service_test.go

package beat_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpke-dev/beatstore/internal/beat"
	"github.com/mpke-dev/beatstore/internal/config"
	"github.com/mpke-dev/beatstore/internal/core"
)

type fakeRepo struct {
	beats  []beat.Beat
	total  int
	detail *beat.Detail
	tags   []string

	lastParams beat.SearchRequest
}

func (f *fakeRepo) Search(
	ctx context.Context,
	params beat.SearchRequest,
) ([]beat.Beat, int, error) {
	f.lastParams = params
	return f.beats, f.total, nil
}

func (f *fakeRepo) GetWithAuthors(
	ctx context.Context,
	id int64,
) (*beat.Detail, error) {
	if f.detail == nil {
		return nil, core.ErrNotFound
	}
	return f.detail, nil
}

func (f *fakeRepo) ListTags(ctx context.Context) ([]string, error) {
	return f.tags, nil
}

func (f *fakeRepo) ListAuthors(ctx context.Context) ([]beat.Author, error) {
	return nil, nil
}

func (f *fakeRepo) CreateWithAuthors(
	ctx context.Context,
	b *beat.Beat,
	authorNames []string,
	archiveURL string,
) error {
	return nil
}

type fakePresigner struct{}

func (fakePresigner) PresignURL(
	ctx context.Context,
	prefix, storedURL string,
) (string, error) {
	return "https://signed.example/" + prefix + storedURL, nil
}

type fakeUploader struct{}

func (fakeUploader) Upload(
	ctx context.Context,
	prefix, filename, contentType string,
	body io.Reader,
) (string, error) {
	return "https://store.example/" + prefix + filename, nil
}

func newService(repo *fakeRepo) *beat.Service {
	return beat.NewService(repo, fakePresigner{}, fakeUploader{}, config.StorageConfig{
		ImagePrefix: "images/",
		AudioPrefix: "mp3/",
	})
}

func TestSearchSignsMediaURLs(t *testing.T) {
	repo := &fakeRepo{
		beats: []beat.Beat{
			{ID: 1, MP3URL: "one.mp3", ImageURL: "one.png"},
		},
		total: 1,
	}
	svc := newService(repo)

	resp, err := svc.Search(context.Background(), beat.SearchRequest{})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "https://signed.example/mp3/one.mp3", resp.Data[0].MP3URL)
	assert.Equal(
		t,
		"https://signed.example/images/one.png",
		resp.Data[0].ImageURL,
	)
}

func TestSearchPaginationFields(t *testing.T) {
	repo := &fakeRepo{total: 25}
	svc := newService(repo)

	resp, err := svc.Search(context.Background(), beat.SearchRequest{Page: 2})

	require.NoError(t, err)
	assert.Equal(t, 25, resp.TotalCount)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, 12, repo.lastParams.Limit)
}

func TestGetMissingBeat(t *testing.T) {
	svc := newService(&fakeRepo{})

	_, err := svc.Get(context.Background(), 99)

	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestTagsBecomeOptions(t *testing.T) {
	svc := newService(&fakeRepo{tags: []string{"trap", "lofi"}})

	options, err := svc.Tags(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []beat.TagOption{
		{Value: "trap", Label: "trap"},
		{Value: "lofi", Label: "lofi"},
	}, options)
}
