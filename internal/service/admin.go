package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Rahulelano/events-backend/internal/auth"
	"github.com/Rahulelano/events-backend/internal/logging"
	"github.com/Rahulelano/events-backend/internal/metrics"
	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
	"github.com/Rahulelano/events-backend/internal/validation"
)

// AdminStore is the persistence surface the admin service depends on.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id string) error
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
}

// AdminService handles admin login and the dashboard.
type AdminService struct {
	admins AdminStore
	tokens *auth.TokenManager
}

// NewAdminService constructs an AdminService.
func NewAdminService(admins AdminStore, tokens *auth.TokenManager) *AdminService {
	return &AdminService{admins: admins, tokens: tokens}
}

// Login authenticates an admin and issues a session token. All failure
// modes collapse into ErrInvalidCredentials so the response does not leak
// which part of the credentials was wrong.
func (s *AdminService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	admin, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.LoginAttempt("failure")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		metrics.LoginAttempt("failure")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(admin)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	// Best effort; a failed stamp must not block the login.
	if err := s.admins.UpdateLastLogin(ctx, admin.ID); err != nil {
		logging.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to update last login")
	}

	metrics.LoginAttempt("success")
	return &model.LoginResponse{Token: token, Admin: admin.Profile()}, nil
}

// DashboardStats returns the admin dashboard aggregates.
func (s *AdminService) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	stats, err := s.admins.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return stats, nil
}
