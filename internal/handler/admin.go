package handler

import (
	"errors"
	"net/http"

	"github.com/Rahulelano/events-backend/internal/auth"
	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/service"
)

// AdminHandler holds the HTTP handlers for admin login, token
// verification and the dashboard.
type AdminHandler struct {
	svc *service.AdminService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid email or password")
		default:
			writeError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Verify handles GET /api/admin/verify. The auth middleware has already
// validated the token and loaded the account.
func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	admin, ok := auth.AdminFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "admin": admin.Profile()})
}

// Dashboard handles GET /api/admin/dashboard/stats.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.DashboardStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load dashboard stats")
		return
	}
	if stats.CategoryStats == nil {
		stats.CategoryStats = []model.CategoryStat{}
	}
	if stats.RecentBookings == nil {
		stats.RecentBookings = []model.BookingDetail{}
	}
	writeJSON(w, http.StatusOK, stats)
}
