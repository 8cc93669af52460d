package access

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"coilworks/internal/config"
	"coilworks/internal/domain"
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the bearer token body issued by the auth provider.
type Claims struct {
	UserID string      `json:"user_id"`
	Phone  string      `json:"phone"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type TokenVerifier struct {
	secret []byte
	issuer string
}

func NewTokenVerifier(cfg config.AuthConfig) (*TokenVerifier, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &TokenVerifier{secret: []byte(cfg.JWTSecret), issuer: cfg.JWTIssuer}, nil
}

// Verify validates the token and returns the identity it carries.
func (v *TokenVerifier) Verify(token string) (*domain.Identity, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{signingMethod.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no user id")
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("token has invalid role %q", claims.Role)
	}

	return &domain.Identity{
		UserID:    claims.UserID,
		Phone:     claims.Phone,
		Role:      claims.Role,
		AuthToken: token,
	}, nil
}
