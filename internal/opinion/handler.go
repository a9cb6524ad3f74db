// AngelaMos | 2026
// handler.go

package opinion

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mpke-dev/beatstore/internal/core"
	"github.com/mpke-dev/beatstore/internal/middleware"
)

type CreateRequest struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the opinion endpoints under a beat. Creation works
// with or without a caller identity, so it sits behind OptionalAuth rather
// than the authenticator; deletion requires one.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth, authenticator func(http.Handler) http.Handler,
) {
	r.Route("/beats/{beatID}/opinions", func(r chi.Router) {
		r.With(optionalAuth).Post("/", h.Create)
		r.Get("/", h.List)
		r.With(authenticator).Delete("/{opinionID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	beatID, err := strconv.ParseInt(chi.URLParam(r, "beatID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid beat id")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		core.BadRequest(w, "content is required")
		return
	}

	var userID *int64
	if id, ok := middleware.GetUserID(r.Context()); ok {
		userID = &id
	}

	created, err := h.service.Create(
		r.Context(),
		beatID,
		userID,
		req.Author,
		req.Content,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, created)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	beatID, err := strconv.ParseInt(chi.URLParam(r, "beatID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid beat id")
		return
	}

	opinions, err := h.service.ListForBeat(r.Context(), beatID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, opinions)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	opinionID, err := strconv.ParseInt(chi.URLParam(r, "opinionID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid opinion id")
		return
	}

	err = h.service.Delete(
		r.Context(),
		opinionID,
		identity.ID,
		identity.Role == "admin",
	)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "you can only delete your own opinions")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "opinion")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Message(w, http.StatusOK, "opinion deleted successfully")
}
