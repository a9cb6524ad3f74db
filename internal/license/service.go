// AngelaMos | 2026
// service.go

package license

import (
	"context"
	"errors"
)

// ErrNoLicenses reports an empty result set, as opposed to the beat itself
// being absent. Both surface as 404; only the message differs.
var ErrNoLicenses = errors.New("no licenses found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every license, or, when a beat is given, the set a buyer may
// select for that beat. An mp3-only beat is restricted to the mp3-only tier.
func (s *Service) List(
	ctx context.Context,
	beatID *int64,
) ([]License, error) {
	if beatID == nil {
		licenses, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(licenses) == 0 {
			return nil, ErrNoLicenses
		}
		return licenses, nil
	}

	mp3Only, err := s.repo.BeatMP3Only(ctx, *beatID)
	if err != nil {
		return nil, err
	}

	var licenses []License
	if mp3Only {
		licenses, err = s.repo.ListByName(ctx, MP3OnlyName)
	} else {
		licenses, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	if len(licenses) == 0 {
		return nil, ErrNoLicenses
	}

	return licenses, nil
}
