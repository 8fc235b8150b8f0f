// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"upkiip/config"
	"upkiip/internal/domain/service"
)

// ErrTokenInvalid is the single outcome for every verification failure.
// Callers cannot tell a tampered token from an expired one, which keeps the
// endpoint from leaking which check failed.
var ErrTokenInvalid = errors.New("invalid session token")

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   string        // Secret key for signing session tokens.
	tokenTTL time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session token secret must be provided")
	}

	ttl := 7 * 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret:   cfg.SecretKey.Session,
		tokenTTL: ttl,
	}, nil
}

// Issue creates a signed session token for the given account. The payload
// carries only the subject and the timestamps; role and active status are
// re-read from the store on every request.
func (s *jwtService) Issue(accountID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Verify checks signature integrity and expiry, in that order (the jwt
// library validates both during Parse). Any failure collapses into
// ErrTokenInvalid.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	registered, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || registered.Subject == "" || registered.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}

	accountID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims := &service.Claims{
		AccountID: accountID,
		ExpiresAt: registered.ExpiresAt.Time,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}

	return claims, nil
}

// TokenDuration returns the configured duration for session tokens.
func (s *jwtService) TokenDuration() time.Duration {
	return s.tokenTTL
}
