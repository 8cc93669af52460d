package access

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coilworks/internal/config"
	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

var testAuth = config.AuthConfig{JWTSecret: "test-secret", JWTIssuer: "coilworks"}

func mintToken(t *testing.T, secret, issuer, userID string, role domain.Role, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Phone:  "+91 98765 43210",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewTokenVerifier_RequiresSecret(t *testing.T) {
	_, err := NewTokenVerifier(config.AuthConfig{})
	assert.Error(t, err)
}

func TestTokenVerifier_Verify(t *testing.T) {
	verifier, err := NewTokenVerifier(testAuth)
	require.NoError(t, err)

	token := mintToken(t, "test-secret", "coilworks", "u-1", domain.RoleManager, time.Hour)
	identity, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.UserID)
	assert.Equal(t, domain.RoleManager, identity.Role)
	assert.Equal(t, token, identity.AuthToken)

	_, err = verifier.Verify(mintToken(t, "other-secret", "coilworks", "u-1", domain.RoleUser, time.Hour))
	assert.Error(t, err)

	_, err = verifier.Verify(mintToken(t, "test-secret", "someone-else", "u-1", domain.RoleUser, time.Hour))
	assert.Error(t, err)

	_, err = verifier.Verify(mintToken(t, "test-secret", "coilworks", "u-1", domain.RoleUser, -time.Minute))
	assert.Error(t, err)

	_, err = verifier.Verify(mintToken(t, "test-secret", "coilworks", "u-1", "superuser", time.Hour))
	assert.Error(t, err)
}

func TestMiddleware_RequireRoles(t *testing.T) {
	verifier, err := NewTokenVerifier(testAuth)
	require.NoError(t, err)

	reached := false
	handler := Authenticate(verifier, zap.NewNop())(RequireRoles(OrderManagers)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		assert.Equal(t, "a-1", IdentityFrom(r.Context()).UserID)
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name    string
		auth    string
		status  int
		reached bool
	}{
		{"anonymous", "", http.StatusUnauthorized, false},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, false},
		{"user role", "Bearer " + mintToken(t, "test-secret", "coilworks", "u-1", domain.RoleUser, time.Hour), http.StatusForbidden, false},
		{"admin role", "Bearer " + mintToken(t, "test-secret", "coilworks", "a-1", domain.RoleAdmin, time.Hour), http.StatusNoContent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/enquire", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.reached, reached)
		})
	}
}

func TestRequireOwner(t *testing.T) {
	_, ok := apperrors.IsUnauthorizedError(RequireOwner(context.Background(), "u-1"))
	assert.True(t, ok)

	ctx := WithIdentity(context.Background(), &domain.Identity{UserID: "u-1", Role: domain.RoleUser})
	assert.NoError(t, RequireOwner(ctx, "u-1"))

	_, ok = apperrors.IsForbiddenError(RequireOwner(ctx, "u-2"))
	assert.True(t, ok)
}
