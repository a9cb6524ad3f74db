// AngelaMos | 2026
// service.go

package opinion

import (
	"context"
	"fmt"
	"strings"

	"github.com/mpke-dev/beatstore/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records a comment. The user id is nil for anonymous posters; a
// blank display name falls back to the default.
func (s *Service) Create(
	ctx context.Context,
	beatID int64,
	userID *int64,
	name, content string,
) (*Opinion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultDisplayName
	}

	o := &Opinion{
		BeatID:  beatID,
		UserID:  userID,
		Name:    name,
		Content: content,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) ListForBeat(
	ctx context.Context,
	beatID int64,
) ([]Opinion, error) {
	opinions, err := s.repo.ListForBeat(ctx, beatID)
	if err != nil {
		return nil, err
	}
	if opinions == nil {
		opinions = []Opinion{}
	}

	return opinions, nil
}

// Delete removes a comment if the caller authored it or holds the admin
// role; anyone else gets a forbidden error and the row stays put.
func (s *Service) Delete(
	ctx context.Context,
	opinionID, userID int64,
	isAdmin bool,
) error {
	if !isAdmin {
		owned, err := s.repo.IsAuthor(ctx, opinionID, userID)
		if err != nil {
			return err
		}
		if !owned {
			return fmt.Errorf("delete opinion: %w", core.ErrForbidden)
		}
	}

	return s.repo.Delete(ctx, opinionID)
}
