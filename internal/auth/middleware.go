package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Rahulelano/events-backend/internal/logging"
	"github.com/Rahulelano/events-backend/internal/model"
	"github.com/Rahulelano/events-backend/internal/repository"
)

type contextKey string

const adminContextKey contextKey = "admin"

// AdminResolver loads admin accounts during token verification.
type AdminResolver interface {
	GetByID(ctx context.Context, id string) (*model.AdminUser, error)
}

// Gate protects admin routes. Every request re-checks the account's
// active flag, so deactivating an admin revokes outstanding tokens
// immediately instead of at expiry.
type Gate struct {
	tokens *TokenManager
	admins AdminResolver
}

// NewGate constructs a Gate.
func NewGate(tokens *TokenManager, admins AdminResolver) *Gate {
	return &Gate{tokens: tokens, admins: admins}
}

// RequireAdmin rejects requests without a valid bearer token belonging to
// an active admin account. On success the admin is placed in the request
// context for AdminFromContext.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			unauthorized(w, "missing authorization token")
			return
		}

		claims, err := g.tokens.Validate(tokenString)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		admin, err := g.admins.GetByID(r.Context(), claims.AdminID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				unauthorized(w, "invalid or expired token")
				return
			}
			logging.Error().Err(err).Msg("admin lookup failed during token verification")
			writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "internal server error"})
			return
		}
		if !admin.IsActive {
			unauthorized(w, "account is deactivated")
			return
		}

		ctx := context.WithValue(r.Context(), adminContextKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminFromContext returns the authenticated admin placed by RequireAdmin.
func AdminFromContext(ctx context.Context) (*model.AdminUser, bool) {
	admin, ok := ctx.Value(adminContextKey).(*model.AdminUser)
	return admin, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnauthorized, model.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
