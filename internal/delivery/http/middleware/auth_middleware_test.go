package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "upkiip/internal/delivery/context"
	"upkiip/internal/domain/entity"
	domainerrors "upkiip/internal/domain/errors"
	"upkiip/internal/domain/repository"
	"upkiip/internal/domain/service"
	"upkiip/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokenService struct {
	claims *service.Claims
	err    error
}

func (s *stubTokenService) Issue(accountID uuid.UUID) (string, error) {
	return "token-" + accountID.String(), nil
}

func (s *stubTokenService) Verify(string) (*service.Claims, error) {
	return s.claims, s.err
}

func (s *stubTokenService) TokenDuration() time.Duration {
	return time.Hour
}

type stubAccountRepo struct {
	account *entity.Account
	err     error
}

func (s *stubAccountRepo) Create(context.Context, *entity.Account) error { return nil }

func (s *stubAccountRepo) FindByID(context.Context, uuid.UUID) (*entity.Account, error) {
	return s.account, s.err
}

func (s *stubAccountRepo) FindByEmail(context.Context, string) (*entity.Account, error) {
	return s.account, s.err
}

func (s *stubAccountRepo) FindWithProfile(context.Context, uuid.UUID) (*entity.Account, error) {
	return s.account, s.err
}

func (s *stubAccountRepo) UpdatePasswordHash(context.Context, uuid.UUID, string) error { return nil }

func (s *stubAccountRepo) UpdateProfile(context.Context, *entity.Account) error { return nil }

func newAuthTestContext(t *testing.T, authHeader string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}

	return e.NewContext(req, httptest.NewRecorder())
}

func activeAccount() *entity.Account {
	return &entity.Account{
		ID:       uuid.New(),
		Email:    "a@x.com",
		Role:     entity.RoleCustomer,
		IsActive: true,
	}
}

func TestAuthenticate_AttachesLiveIdentity(t *testing.T) {
	account := activeAccount()
	m := NewAuthMiddleware(
		&stubTokenService{claims: &service.Claims{AccountID: account.ID}},
		&stubAccountRepo{account: account},
	)

	c := newAuthTestContext(t, "Bearer some-token")

	var identity *deliverycontext.Identity
	err := m.Authenticate(func(c echo.Context) error {
		identity = deliverycontext.GetIdentity(c)

		return nil
	})(c)

	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, account.ID, identity.AccountID)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.Equal(t, entity.RoleCustomer, identity.Role)
}

func TestAuthenticate_RejectsMissingOrMalformedHeader(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{}, &stubAccountRepo{})

	next := func(c echo.Context) error {
		t.Fatal("next handler must not run")

		return nil
	}

	for _, header := range []string{"", "some-token", "Bearer "} {
		err := m.Authenticate(next)(newAuthTestContext(t, header))
		assert.True(t, errors.Is(err, domainerrors.ErrNoToken), "header %q", header)
	}
}

func TestAuthenticate_RejectsInvalidToken(t *testing.T) {
	m := NewAuthMiddleware(
		&stubTokenService{err: errors.New("bad token")},
		&stubAccountRepo{},
	)

	err := m.Authenticate(func(c echo.Context) error { return nil })(newAuthTestContext(t, "Bearer x"))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestAuthenticate_RejectsDeletedAccount(t *testing.T) {
	m := NewAuthMiddleware(
		&stubTokenService{claims: &service.Claims{AccountID: uuid.New()}},
		&stubAccountRepo{err: repository.ErrAccountNotFound},
	)

	err := m.Authenticate(func(c echo.Context) error { return nil })(newAuthTestContext(t, "Bearer x"))
	assert.True(t, errors.Is(err, domainerrors.ErrSessionAccountNotFound))

	// A vanished account is a session failure, not a missing resource.
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
}

func TestAuthenticate_RejectsDisabledAccount(t *testing.T) {
	account := activeAccount()
	account.IsActive = false

	m := NewAuthMiddleware(
		&stubTokenService{claims: &service.Claims{AccountID: account.ID}},
		&stubAccountRepo{account: account},
	)

	err := m.Authenticate(func(c echo.Context) error { return nil })(newAuthTestContext(t, "Bearer x"))
	assert.True(t, errors.Is(err, domainerrors.ErrAccountDisabled))
}

func TestRequireRoles_AllowsListedRole(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{}, &stubAccountRepo{})
	c := newAuthTestContext(t, "")
	deliverycontext.SetIdentity(c, &deliverycontext.Identity{Role: entity.RoleAdmin})

	called := false
	err := m.RequireRoles(entity.RoleAdmin, entity.RoleInsurance)(func(c echo.Context) error {
		called = true

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestRequireRoles_ForbidsUnlistedRole(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{}, &stubAccountRepo{})
	c := newAuthTestContext(t, "")
	deliverycontext.SetIdentity(c, &deliverycontext.Identity{Role: entity.RoleCustomer})

	err := m.RequireRoles(entity.RoleAdmin)(func(c echo.Context) error {
		t.Fatal("next handler must not run")

		return nil
	})(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "customer")
}

func TestRequireRoles_MissingIdentity(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{}, &stubAccountRepo{})

	err := m.RequireRoles(entity.RoleAdmin)(func(c echo.Context) error {
		t.Fatal("next handler must not run")

		return nil
	})(newAuthTestContext(t, ""))

	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestRequireRoles_EmptyAllowListPanics(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{}, &stubAccountRepo{})

	assert.Panics(t, func() {
		m.RequireRoles()
	})
}
