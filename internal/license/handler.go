// AngelaMos | 2026
// handler.go

package license

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mpke-dev/beatstore/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/licenses", h.List)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var beatID *int64
	if raw := r.URL.Query().Get("beatId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			core.BadRequest(w, "invalid beat id")
			return
		}
		beatID = &id
	}

	licenses, err := h.service.List(r.Context(), beatID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "beat")
		case errors.Is(err, ErrNoLicenses):
			core.JSONError(w, core.NotFoundError("no licenses available"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, licenses)
}
