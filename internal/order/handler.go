// AngelaMos | 2026
// handler.go

package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mpke-dev/beatstore/internal/core"
	"github.com/mpke-dev/beatstore/internal/middleware"
)

type CheckoutRequest struct {
	DiscountCode string `json:"discountCode"`
}

type CheckoutResponse struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}

type PaymentRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the authenticated order endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.Checkout)
	r.Get("/orders", h.List)
	r.Get("/orders/{orderID}", h.Get)
	r.Post("/orders/{orderID}/payment", h.Payment)
	r.Post("/orders/{orderID}/send-files", h.SendFiles)
}

// RegisterPublicRoutes mounts the endpoints that need no caller identity.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/discount-codes/{code}", h.GetDiscount)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	var req CheckoutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
	}

	created, err := h.service.Checkout(r.Context(), userID, req.DiscountCode)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			core.BadRequest(w, "your cart is empty")
		case errors.Is(err, ErrInvalidDiscount):
			core.BadRequest(w, "invalid or expired discount code")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, CheckoutResponse{
		Message: "order created successfully",
		Order:   created,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	orders, err := h.service.List(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, orders)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid order id")
		return
	}

	detail, err := h.service.Get(r.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "order")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, detail)
}

func (h *Handler) Payment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid order id")
		return
	}

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if req.PaymentStatus != "success" {
		core.BadRequest(w, "payment not successful")
		return
	}

	updated, err := h.service.MarkPaid(r.Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "order")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, updated)
}

func (h *Handler) SendFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		core.Unauthorized(w, "authentication required")
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid order id")
		return
	}

	if err := h.service.SendFiles(r.Context(), orderID, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "order")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, http.StatusOK, "files sent to buyer")
}

func (h *Handler) GetDiscount(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	dc, err := h.service.ValidateDiscount(r.Context(), code)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.JSONError(
				w,
				core.NotFoundError("discount code not valid or expired"),
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, dc)
}
