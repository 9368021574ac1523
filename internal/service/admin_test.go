package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rahulelano/events-backend/internal/auth"
	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeAdminStore struct {
	admin       *model.AdminUser
	lastLoginID string
	dashboardFn func(ctx context.Context) (*model.DashboardStats, error)
}

func (f *fakeAdminStore) GetByEmail(_ context.Context, email string) (*model.AdminUser, error) {
	if f.admin == nil || f.admin.Email != email {
		return nil, repository.ErrNotFound
	}
	return f.admin, nil
}

func (f *fakeAdminStore) UpdateLastLogin(_ context.Context, id string) error {
	f.lastLoginID = id
	return nil
}

func (f *fakeAdminStore) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	return f.dashboardFn(ctx)
}

func newTestAdmin(t *testing.T, password string) *model.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.AdminUser{
		ID:           uuid.NewString(),
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Name:         "Portal Admin",
		Role:         "admin",
		IsActive:     true,
	}
}

func newTestTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tokens, err := auth.NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	return tokens
}

func TestAdminLoginSuccess(t *testing.T) {
	admin := newTestAdmin(t, "s3cret-pass")
	store := &fakeAdminStore{admin: admin}
	tokens := newTestTokenManager(t)
	svc := NewAdminService(store, tokens)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    " Admin@Example.COM ",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, admin.ID, resp.Admin.ID)
	assert.Equal(t, admin.Email, resp.Admin.Email)
	assert.Equal(t, admin.ID, store.lastLoginID, "last login should be stamped")

	claims, err := tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
	assert.Equal(t, admin.Role, claims.Role)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	store := &fakeAdminStore{admin: newTestAdmin(t, "correct")}
	svc := NewAdminService(store, newTestTokenManager(t))

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "admin@example.com",
		Password: "incorrect",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, store.lastLoginID)
}

func TestAdminLoginUnknownEmail(t *testing.T) {
	store := &fakeAdminStore{admin: newTestAdmin(t, "whatever")}
	svc := NewAdminService(store, newTestTokenManager(t))

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLoginValidation(t *testing.T) {
	svc := NewAdminService(&fakeAdminStore{}, newTestTokenManager(t))

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "admin@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
