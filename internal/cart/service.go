// AngelaMos | 2026
// service.go

package cart

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(
	ctx context.Context,
	userID, beatID, licenseID int64,
) error {
	return s.repo.Add(ctx, userID, beatID, licenseID)
}

func (s *Service) List(ctx context.Context, userID int64) ([]Item, error) {
	items, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}

	return items, nil
}

func (s *Service) Remove(ctx context.Context, cartID, userID int64) error {
	return s.repo.Delete(ctx, cartID, userID)
}
