package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
	"github.com/Rahulelano/events-backend/internal/service"
)

// BookingHandler holds the HTTP handlers for bookings.
type BookingHandler struct {
	svc *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Create(r.Context(), req)
	if err != nil {
		var insufficient *repository.InsufficientInventoryError
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "event not found")
		case errors.As(err, &insufficient):
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
				Error:     "not enough tickets available",
				Available: &insufficient.Available,
			})
		default:
			writeError(w, http.StatusInternalServerError, "failed to create booking")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Cancel handles PUT /api/bookings/{id}/cancel.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Cancel(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "booking not found")
		case errors.Is(err, repository.ErrAlreadyCancelled):
			writeError(w, http.StatusBadRequest, "booking is already cancelled")
		default:
			writeError(w, http.StatusInternalServerError, "failed to cancel booking")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled successfully"})
}

// GetByReference handles GET /api/bookings/reference/{reference}.
func (h *BookingHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	booking, err := h.svc.GetByReference(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "booking not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get booking")
		}
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// List handles GET /api/bookings (admin-gated).
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("event_id")
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	bookings, pagination, err := h.svc.List(r.Context(), eventID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	if bookings == nil {
		bookings = []model.BookingDetail{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bookings":   bookings,
		"pagination": pagination,
	})
}
