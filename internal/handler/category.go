package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
	"github.com/Rahulelano/events-backend/internal/service"
)

// CategoryHandler holds the HTTP handlers for categories.
type CategoryHandler struct {
	svc *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// Create handles POST /api/admin/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	category, err := h.svc.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrDuplicateName):
			writeError(w, http.StatusConflict, "a category with this name already exists")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create category")
		}
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// Update handles PUT /api/admin/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.Update(r.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, repository.ErrDuplicateName):
			writeError(w, http.StatusConflict, "a category with this name already exists")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update category")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Category updated successfully"})
}

// Delete handles DELETE /api/admin/categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, repository.ErrCategoryInUse):
			writeError(w, http.StatusConflict, "category still has events and cannot be deleted")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete category")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
