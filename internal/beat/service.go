// AngelaMos | 2026
// service.go

package beat

import (
	"context"
	"fmt"

	"github.com/mpke-dev/beatstore/internal/config"
)

// Presigner turns a stored object URL into a time-limited signed URL for the
// prefix it lives under.
type Presigner interface {
	PresignURL(ctx context.Context, prefix, storedURL string) (string, error)
}

type Service struct {
	repo      Repository
	presigner Presigner
	uploader  Uploader
	storage   config.StorageConfig
}

func NewService(
	repo Repository,
	presigner Presigner,
	uploader Uploader,
	storage config.StorageConfig,
) *Service {
	return &Service{
		repo:      repo,
		presigner: presigner,
		uploader:  uploader,
		storage:   storage,
	}
}

func (s *Service) Search(
	ctx context.Context,
	params SearchRequest,
) (*SearchResponse, error) {
	params.Normalize()

	beats, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	for i := range beats {
		if err := s.signBeatURLs(ctx, &beats[i]); err != nil {
			return nil, err
		}
	}

	if beats == nil {
		beats = []Beat{}
	}

	return &SearchResponse{
		Data:        beats,
		TotalCount:  total,
		TotalPages:  TotalPages(total, params.Limit),
		CurrentPage: params.Page,
	}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	detail, err := s.repo.GetWithAuthors(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.signBeatURLs(ctx, &detail.Beat); err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *Service) Tags(ctx context.Context) ([]TagOption, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]TagOption, 0, len(tags))
	for _, tag := range tags {
		options = append(options, TagOption{Value: tag, Label: tag})
	}

	return options, nil
}

func (s *Service) Authors(ctx context.Context) ([]Author, error) {
	authors, err := s.repo.ListAuthors(ctx)
	if err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []Author{}
	}

	return authors, nil
}

// signBeatURLs swaps the stored media URLs for signed ones. Signed URLs are
// computed per response and never written back.
func (s *Service) signBeatURLs(ctx context.Context, b *Beat) error {
	mp3URL, err := s.presigner.PresignURL(ctx, s.storage.AudioPrefix, b.MP3URL)
	if err != nil {
		return fmt.Errorf("presign mp3 url: %w", err)
	}

	imageURL, err := s.presigner.PresignURL(
		ctx,
		s.storage.ImagePrefix,
		b.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("presign image url: %w", err)
	}

	b.MP3URL = mp3URL
	b.ImageURL = imageURL
	return nil
}
