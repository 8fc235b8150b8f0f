package service

import (
	"time"

	"github.com/google/uuid"
)

// Claims is the verified content of a session token. The token carries no
// role or authorization claims: role is always re-read from the store on
// each request, so deactivation and role changes take effect immediately.
type Claims struct {
	AccountID uuid.UUID // Subject: the account the token was issued for.
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService defines the interface for issuing and verifying session tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed session token for the given account.
	Issue(accountID uuid.UUID) (string, error)

	// Verify checks a token's signature and expiry. Every failure mode
	// (tampered, malformed, expired) yields the same opaque error so the
	// caller cannot distinguish why a token was rejected.
	Verify(token string) (*Claims, error)

	// TokenDuration returns the configured session token lifetime.
	TokenDuration() time.Duration
}
