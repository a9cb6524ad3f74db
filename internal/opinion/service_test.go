// AngelaMos | 2026
// service_test.go

package opinion_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpke-dev/beatstore/internal/core"
	"github.com/mpke-dev/beatstore/internal/opinion"
)

type fakeRepo struct {
	authors     map[int64]int64 // opinion id -> author user id
	deleteCalls int
	created     *opinion.Opinion
}

func (f *fakeRepo) Create(ctx context.Context, o *opinion.Opinion) error {
	o.ID = 1
	f.created = o
	return nil
}

func (f *fakeRepo) ListForBeat(
	ctx context.Context,
	beatID int64,
) ([]opinion.Opinion, error) {
	return nil, nil
}

func (f *fakeRepo) IsAuthor(
	ctx context.Context,
	opinionID, userID int64,
) (bool, error) {
	return f.authors[opinionID] == userID, nil
}

func (f *fakeRepo) Delete(ctx context.Context, opinionID int64) error {
	f.deleteCalls++
	if _, ok := f.authors[opinionID]; !ok {
		return core.ErrNotFound
	}
	delete(f.authors, opinionID)
	return nil
}

func TestCreateDefaultsDisplayName(t *testing.T) {
	repo := &fakeRepo{}
	svc := opinion.NewService(repo)

	created, err := svc.Create(context.Background(), 5, nil, "  ", "nice beat")

	require.NoError(t, err)
	assert.Equal(t, "Anon", created.Name)
	assert.Nil(t, created.UserID)
}

func TestCreateKeepsGivenName(t *testing.T) {
	repo := &fakeRepo{}
	svc := opinion.NewService(repo)
	userID := int64(3)

	created, err := svc.Create(
		context.Background(),
		5,
		&userID,
		"Mo",
		"solid drums",
	)

	require.NoError(t, err)
	assert.Equal(t, "Mo", created.Name)
	require.NotNil(t, created.UserID)
	assert.EqualValues(t, 3, *created.UserID)
}

func TestDeleteByAuthor(t *testing.T) {
	repo := &fakeRepo{authors: map[int64]int64{10: 3}}
	svc := opinion.NewService(repo)

	err := svc.Delete(context.Background(), 10, 3, false)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.deleteCalls)
}

func TestDeleteByAdmin(t *testing.T) {
	repo := &fakeRepo{authors: map[int64]int64{10: 3}}
	svc := opinion.NewService(repo)

	err := svc.Delete(context.Background(), 10, 99, true)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.deleteCalls)
}

func TestDeleteByStrangerForbidden(t *testing.T) {
	repo := &fakeRepo{authors: map[int64]int64{10: 3}}
	svc := opinion.NewService(repo)

	err := svc.Delete(context.Background(), 10, 4, false)

	require.ErrorIs(t, err, core.ErrForbidden)
	assert.Zero(t, repo.deleteCalls, "row must stay intact")
}
