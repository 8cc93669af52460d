package access

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

type ctxKey struct{}

type Verifier interface {
	Verify(token string) (*domain.Identity, error)
}

func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// IdentityFrom returns the caller identity, or nil for anonymous requests.
func IdentityFrom(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(ctxKey{}).(*domain.Identity)
	return identity
}

// Authenticate attaches the identity from a bearer token to the request
// context. Requests without a token continue anonymously; an invalid token is
// rejected.
func Authenticate(verifier Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("rejected bearer token", zap.Error(err))
				writeDenied(w, http.StatusUnauthorized, "invalid credentials")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireRoles runs Authorize before the handler so that a caller outside
// required never reaches any data access.
func RequireRoles(required RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFrom(r.Context())
			if decision := Authorize(identity, required); !decision.Allowed {
				if identity == nil {
					writeDenied(w, http.StatusUnauthorized, "authentication required")
					return
				}
				writeDenied(w, http.StatusForbidden, "role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type deniedResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeDenied(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(deniedResponse{Success: false, Error: message})
}

// RequireOwner checks that the caller is the user a request is scoped to.
func RequireOwner(ctx context.Context, userID string) error {
	identity := IdentityFrom(ctx)
	if identity == nil {
		return apperrors.NewUnauthorizedError("authentication required")
	}
	if identity.UserID != userID {
		return apperrors.NewForbiddenError("request is scoped to another user")
	}
	return nil
}
