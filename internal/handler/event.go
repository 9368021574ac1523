package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
	"github.com/Rahulelano/events-backend/internal/service"
)

// EventHandler holds the HTTP handlers for events.
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// List handles GET /api/events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.EventFilter{
		CategoryID: q.Get("category"),
		Featured:   q.Get("featured") == "true",
		Trending:   q.Get("trending") == "true",
		Upcoming:   q.Get("upcoming") == "true",
		Search:     q.Get("search"),
	}
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	events, pagination, err := h.svc.List(r.Context(), filter, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events":     events,
		"pagination": pagination,
	})
}

// Hero handles GET /api/events/hero.
func (h *EventHandler) Hero(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Hero(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no hero event configured")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get hero event")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// HeroSlider handles GET /api/events/hero-slider.
func (h *EventHandler) HeroSlider(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.HeroSlider(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list hero events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// Get handles GET /api/events/{id}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.svc.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "event not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get event")
		}
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Create handles POST /api/admin/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// Update handles PUT /api/admin/events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.Update(r.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "event not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update event")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Event updated successfully"})
}

// Delete handles DELETE /api/admin/events/{id}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "event not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete event")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}
