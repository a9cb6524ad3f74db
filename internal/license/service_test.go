// AngelaMos | 2026
// service_test.go

package license_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpke-dev/beatstore/internal/core"
	"github.com/mpke-dev/beatstore/internal/license"
)

type fakeRepo struct {
	all      []license.License
	mp3Only  map[int64]bool
	restrict []license.License
}

func (f *fakeRepo) List(ctx context.Context) ([]license.License, error) {
	return f.all, nil
}

func (f *fakeRepo) ListByName(
	ctx context.Context,
	name string,
) ([]license.License, error) {
	return f.restrict, nil
}

func (f *fakeRepo) BeatMP3Only(
	ctx context.Context,
	beatID int64,
) (bool, error) {
	flag, ok := f.mp3Only[beatID]
	if !ok {
		return false, core.ErrNotFound
	}
	return flag, nil
}

func ptr(v int64) *int64 { return &v }

func TestListWithoutBeatReturnsAll(t *testing.T) {
	repo := &fakeRepo{
		all: []license.License{
			{ID: 1, Name: "mp3-only"},
			{ID: 2, Name: "basic"},
		},
	}
	svc := license.NewService(repo)

	licenses, err := svc.List(context.Background(), nil)

	require.NoError(t, err)
	assert.Len(t, licenses, 2)
}

func TestListMP3OnlyBeatRestricted(t *testing.T) {
	repo := &fakeRepo{
		all: []license.License{
			{ID: 1, Name: "mp3-only"},
			{ID: 2, Name: "basic"},
		},
		mp3Only: map[int64]bool{5: true},
		restrict: []license.License{
			{ID: 1, Name: "mp3-only"},
		},
	}
	svc := license.NewService(repo)

	licenses, err := svc.List(context.Background(), ptr(5))

	require.NoError(t, err)
	require.Len(t, licenses, 1)
	assert.Equal(t, "mp3-only", licenses[0].Name)
}

func TestListRegularBeatGetsAll(t *testing.T) {
	repo := &fakeRepo{
		all: []license.License{
			{ID: 1, Name: "mp3-only"},
			{ID: 2, Name: "basic"},
		},
		mp3Only: map[int64]bool{5: false},
	}
	svc := license.NewService(repo)

	licenses, err := svc.List(context.Background(), ptr(5))

	require.NoError(t, err)
	assert.Len(t, licenses, 2)
}

func TestListAbsentBeat(t *testing.T) {
	svc := license.NewService(&fakeRepo{mp3Only: map[int64]bool{}})

	_, err := svc.List(context.Background(), ptr(99))

	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestListFilteredToEmpty(t *testing.T) {
	repo := &fakeRepo{
		mp3Only:  map[int64]bool{5: true},
		restrict: nil,
	}
	svc := license.NewService(repo)

	_, err := svc.List(context.Background(), ptr(5))

	require.ErrorIs(t, err, license.ErrNoLicenses)
}
