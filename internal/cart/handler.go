// AngelaMos | 2026
// handler.go

package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mpke-dev/beatstore/internal/core"
	"github.com/mpke-dev/beatstore/internal/middleware"
)

type AddRequest struct {
	BeatID    int64 `json:"beat_id"`
	LicenseID int64 `json:"license_id"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/carts", h.Add)
	r.Get("/carts", h.List)
	r.Delete("/carts/{cartID}", h.Remove)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if req.BeatID == 0 || req.LicenseID == 0 {
		core.BadRequest(w, "beat_id and license_id are required")
		return
	}

	err := h.service.Add(r.Context(), userID, req.BeatID, req.LicenseID)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(
				w,
				core.ConflictError("this item is already in your cart"),
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, http.StatusCreated, "item added to cart")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, items)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	cartID, err := strconv.ParseInt(chi.URLParam(r, "cartID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid cart id")
		return
	}

	if err := h.service.Remove(r.Context(), cartID, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.JSONError(
				w,
				core.NotFoundError("item not found or not authorized"),
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, http.StatusOK, "item removed from cart")
}
