package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
	"github.com/Rahulelano/events-backend/internal/service"
)

// DiscountHandler holds the HTTP handlers for local-shop discounts.
type DiscountHandler struct {
	svc *service.DiscountService
}

// NewDiscountHandler constructs a DiscountHandler.
func NewDiscountHandler(svc *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{svc: svc}
}

// List handles GET /api/discounts.
func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	discounts, pagination, err := h.svc.List(r.Context(), featuredOnly, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list discounts")
		return
	}
	if discounts == nil {
		discounts = []model.Discount{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"discounts":  discounts,
		"pagination": pagination,
	})
}

// Featured handles GET /api/discounts/featured.
func (h *DiscountHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	discounts, pagination, err := h.svc.List(r.Context(), true, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list discounts")
		return
	}
	if discounts == nil {
		discounts = []model.Discount{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"discounts":  discounts,
		"pagination": pagination,
	})
}

// Get handles GET /api/discounts/{id}.
func (h *DiscountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	discount, err := h.svc.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "discount not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get discount")
		}
		return
	}

	writeJSON(w, http.StatusOK, discount)
}

// Create handles POST /api/admin/discounts.
func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.DiscountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	discount, err := h.svc.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create discount")
		return
	}

	writeJSON(w, http.StatusCreated, discount)
}

// Update handles PUT /api/admin/discounts/{id}.
func (h *DiscountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.DiscountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.Update(r.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "discount not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update discount")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Discount updated successfully"})
}

// Delete handles DELETE /api/admin/discounts/{id}.
func (h *DiscountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "discount not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete discount")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Discount deleted successfully"})
}
