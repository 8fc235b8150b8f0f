package middleware

import (
	"fmt"
	"strings"

	deliverycontext "upkiip/internal/delivery/context"
	"upkiip/internal/domain/entity"
	domainerrors "upkiip/internal/domain/errors"
	"upkiip/internal/domain/repository"
	"upkiip/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware authenticates requests from their bearer token. After the
// token verifies, the account is re-read from the store so the role and the
// active flag reflect the database now, not the moment the token was issued.
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	accountRepo repository.AccountRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, accountRepo repository.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, accountRepo: accountRepo}
}

// Authenticate validates the session token and attaches the live identity to
// the request context. Every failure branch rejects the request before any
// downstream handler runs.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrNoToken
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrNoToken
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return domainerrors.ErrInvalidToken
		}

		account, err := m.accountRepo.FindByID(c.Request().Context(), claims.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrSessionAccountNotFound
			}

			return errors.Wrap(err, "failed to load account for session")
		}

		if !account.IsActive {
			return domainerrors.ErrAccountDisabled
		}

		identity := &deliverycontext.Identity{
			AccountID: account.ID,
			Email:     account.Email,
			Role:      account.Role,
		}
		deliverycontext.SetIdentity(c, identity)

		return next(c)
	}
}

// RequireRoles is a middleware factory gating a route to an allow-list of
// roles. It must run after Authenticate. An empty allow-list is a
// configuration error, so it panics at route construction time.
func (m *AuthMiddleware) RequireRoles(allowed ...entity.Role) echo.MiddlewareFunc {
	if len(allowed) == 0 {
		panic("RequireRoles configured with an empty allow-list")
	}

	allowedSet := entity.Roles(allowed)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := deliverycontext.GetIdentity(c)
			if identity == nil {
				return domainerrors.ErrForbidden.WithDetails("identity missing from request context")
			}

			if !allowedSet.Contains(identity.Role) {
				return domainerrors.ErrForbidden.WithDetails(
					fmt.Sprintf("role %q is not allowed on this route", identity.Role))
			}

			return next(c)
		}
	}
}
