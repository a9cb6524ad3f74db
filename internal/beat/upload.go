// AngelaMos | 2026
// upload.go

package beat

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mpke-dev/beatstore/internal/core"
)

// Uploader stores an object under the given prefix and returns its stored URL.
type Uploader interface {
	Upload(
		ctx context.Context,
		prefix, filename, contentType string,
		body io.Reader,
	) (string, error)
}

type UploadFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}

type UploadParams struct {
	Title      string
	BPM        int
	MusicalKey string
	Tags       []string
	Authors    []string
	Sample     bool
	MP3Only    bool
	Image      *UploadFile
	MP3        *UploadFile
	Archive    *UploadFile
}

// Upload pushes the media to object storage first, then records the beat.
// A failed insert leaves orphaned objects behind; they are harmless and
// reclaimed by bucket lifecycle rules.
func (s *Service) Upload(
	ctx context.Context,
	params UploadParams,
) (*UploadResponse, error) {
	imageURL, err := s.uploader.Upload(
		ctx,
		s.storage.ImagePrefix,
		params.Image.Name,
		params.Image.ContentType,
		params.Image.Body,
	)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	mp3URL, err := s.uploader.Upload(
		ctx,
		s.storage.AudioPrefix,
		params.MP3.Name,
		params.MP3.ContentType,
		params.MP3.Body,
	)
	if err != nil {
		return nil, fmt.Errorf("upload mp3: %w", err)
	}

	var archiveURL string
	if params.Archive != nil {
		archiveURL, err = s.uploader.Upload(
			ctx,
			s.storage.ArchivePrefix,
			params.Archive.Name,
			params.Archive.ContentType,
			params.Archive.Body,
		)
		if err != nil {
			return nil, fmt.Errorf("upload archive: %w", err)
		}
	}

	b := &Beat{
		Title:      params.Title,
		BPM:        params.BPM,
		MusicalKey: params.MusicalKey,
		Tags:       params.Tags,
		MP3URL:     mp3URL,
		ImageURL:   imageURL,
		Sample:     params.Sample,
		MP3Only:    params.MP3Only,
	}

	if err := s.repo.CreateWithAuthors(ctx, b, params.Authors, archiveURL); err != nil {
		return nil, err
	}

	return &UploadResponse{
		Message: "beat uploaded successfully",
		BeatID:  b.ID,
	}, nil
}

const maxUploadMemory = 32 << 20 // 32 MiB before spilling to disk

func (h *Handler) RegisterUploadRoutes(r chi.Router) {
	r.Post("/upload-beat", h.Upload)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		core.BadRequest(w, "invalid multipart form")
		return
	}
	defer func() {
		//nolint:errcheck // temp file cleanup
		_ = r.MultipartForm.RemoveAll()
	}()

	title := strings.TrimSpace(r.FormValue("title"))
	musicalKey := strings.TrimSpace(r.FormValue("musical_key"))
	tags := splitCommaList(r.FormValue("tags"))
	authors := splitCommaList(r.FormValue("authors"))

	bpm, bpmErr := strconv.Atoi(strings.TrimSpace(r.FormValue("bpm")))

	image, imageErr := formFile(r, "image")
	mp3, mp3Err := formFile(r, "mp3")
	archive, _ := formFile(r, "file")

	if title == "" || musicalKey == "" || len(tags) == 0 ||
		len(authors) == 0 || bpmErr != nil || bpm <= 0 ||
		imageErr != nil || mp3Err != nil {
		core.BadRequest(w, "missing fields or files")
		return
	}

	params := UploadParams{
		Title:      title,
		BPM:        bpm,
		MusicalKey: musicalKey,
		Tags:       tags,
		Authors:    authors,
		Sample:     r.FormValue("sample") == "true",
		MP3Only:    r.FormValue("mp3_only") == "true",
		Image:      image,
		MP3:        mp3,
		Archive:    archive,
	}

	resp, err := h.service.Upload(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func formFile(r *http.Request, field string) (*UploadFile, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}

	return &UploadFile{
		Name:        header.Filename,
		ContentType: contentTypeOf(header),
		Body:        file,
	}, nil
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func splitCommaList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
