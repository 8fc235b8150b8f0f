package context

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"upkiip/internal/domain/entity"
)

// Identity is the authenticated caller attached to a request after the auth
// middleware verified its token and re-read the account from the store. The
// role here reflects the database at request time, never a token claim.
type Identity struct {
	AccountID uuid.UUID
	Email     string
	Role      entity.Role
}

// SetIdentity attaches the authenticated identity to echo.Context.
func SetIdentity(c echo.Context, identity *Identity) {
	c.Set(string(KeyIdentity), identity)
}

// GetIdentity extracts the authenticated identity from echo.Context.
// Returns nil when the request did not pass the auth middleware.
func GetIdentity(c echo.Context) *Identity {
	if identity, ok := c.Get(string(KeyIdentity)).(*Identity); ok {
		return identity
	}

	return nil
}
