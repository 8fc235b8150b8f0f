package impl

import (
	"context"
	"testing"

	"upkiip/internal/domain/entity"
	domainerrors "upkiip/internal/domain/errors"
	"upkiip/internal/errors"
	"upkiip/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CustomerCreatesProfileAndWallet(t *testing.T) {
	f := newServiceFixture(t)

	out, err := f.accounts.Register(context.Background(), &usecase.RegisterInput{
		Email:     "a@x.com",
		Password:  "Sec#ret1",
		Role:      entity.RoleCustomer,
		FirstName: "A",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Account)

	assert.NotEqual(t, uuid.Nil, out.Account.ID)
	assert.Equal(t, "a@x.com", out.Account.Email)
	assert.Equal(t, entity.RoleCustomer, out.Account.Role)
	assert.True(t, out.Account.IsActive)
	assert.Equal(t, "token-"+out.Account.ID.String(), out.Token)

	require.NotNil(t, out.Account.Customer)
	assert.Equal(t, "A", out.Account.Customer.FirstName)
	require.NotNil(t, out.Account.Wallet)
	assert.Zero(t, out.Account.Wallet.Balance)
}

func TestRegister_NonCustomerRolesGetTheirProfile(t *testing.T) {
	tests := []struct {
		name  string
		input *usecase.RegisterInput
		check func(t *testing.T, account *entity.Account)
	}{
		{
			name: "provider",
			input: &usecase.RegisterInput{
				Email: "p@x.com", Password: "Sec#ret1", Role: entity.RoleProvider,
				FirstName: "Pat", LastName: "Lee",
			},
			check: func(t *testing.T, account *entity.Account) {
				require.NotNil(t, account.Provider)
				assert.Equal(t, "Pat", account.Provider.FirstName)
				assert.Nil(t, account.Wallet)
			},
		},
		{
			name: "admin",
			input: &usecase.RegisterInput{
				Email: "adm@x.com", Password: "Sec#ret1", Role: entity.RoleAdmin, Name: "Ops",
			},
			check: func(t *testing.T, account *entity.Account) {
				require.NotNil(t, account.Admin)
				assert.Equal(t, "Ops", account.Admin.Name)
				assert.Nil(t, account.Wallet)
			},
		},
		{
			name: "insurance",
			input: &usecase.RegisterInput{
				Email: "ins@x.com", Password: "Sec#ret1", Role: entity.RoleInsurance, CompanyName: "Acme Mutual",
			},
			check: func(t *testing.T, account *entity.Account) {
				require.NotNil(t, account.Insurer)
				assert.Equal(t, "Acme Mutual", account.Insurer.CompanyName)
				assert.Nil(t, account.Wallet)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)

			out, err := f.accounts.Register(context.Background(), tt.input)
			require.NoError(t, err)
			assert.True(t, out.Account.HasProfile())
			tt.check(t, out.Account)
		})
	}
}

func TestRegister_DefaultsAdminAndInsurerNames(t *testing.T) {
	f := newServiceFixture(t)

	adminOut, err := f.accounts.Register(context.Background(), &usecase.RegisterInput{
		Email: "adm@x.com", Password: "Sec#ret1", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)
	require.NotNil(t, adminOut.Account.Admin)
	assert.Equal(t, "Admin", adminOut.Account.Admin.Name)

	insurerOut, err := f.accounts.Register(context.Background(), &usecase.RegisterInput{
		Email: "ins@x.com", Password: "Sec#ret1", Role: entity.RoleInsurance,
	})
	require.NoError(t, err)
	require.NotNil(t, insurerOut.Account.Insurer)
	assert.Equal(t, "Insurance Company", insurerOut.Account.Insurer.CompanyName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newServiceFixture(t)
	seedCustomer(f, "a@x.com", "Sec#ret1")

	_, err := f.accounts.Register(context.Background(), &usecase.RegisterInput{
		Email:    "a@x.com",
		Password: "Other#pw9",
		Role:     entity.RoleCustomer,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
}

func TestRegister_WeakPassword(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.accounts.Register(context.Background(), &usecase.RegisterInput{
		Email:    "a@x.com",
		Password: "short",
		Role:     entity.RoleCustomer,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

	// The failed attempt must not leave a row behind.
	_, err = f.accountRepo.FindByEmail(context.Background(), "a@x.com")
	assert.Error(t, err)
}

func TestRegister_UnknownRole(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.accounts.Register(context.Background(), &usecase.RegisterInput{
		Email:    "a@x.com",
		Password: "Sec#ret1",
		Role:     entity.Role("superuser"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestLogin_Success(t *testing.T) {
	f := newServiceFixture(t)
	account := seedCustomer(f, "a@x.com", "Sec#ret1")

	out, err := f.accounts.Login(context.Background(), &usecase.LoginInput{Email: "a@x.com", Password: "Sec#ret1"})
	require.NoError(t, err)
	assert.Equal(t, account.ID, out.Account.ID)
	assert.Equal(t, "token-"+account.ID.String(), out.Token)
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	f := newServiceFixture(t)
	seedCustomer(f, "a@x.com", "Sec#ret1")

	_, errUnknown := f.accounts.Login(context.Background(), &usecase.LoginInput{Email: "nobody@x.com", Password: "Sec#ret1"})
	_, errWrongPw := f.accounts.Login(context.Background(), &usecase.LoginInput{Email: "a@x.com", Password: "bad#pass9"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.True(t, errors.Is(errUnknown, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(errWrongPw, domainerrors.ErrInvalidCredentials))
}

func TestLogin_DisabledAccount(t *testing.T) {
	f := newServiceFixture(t)
	account := seedCustomer(f, "a@x.com", "Sec#ret1")
	account.IsActive = false

	_, err := f.accounts.Login(context.Background(), &usecase.LoginInput{Email: "a@x.com", Password: "Sec#ret1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountDisabled))
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestGetProfile_MissingProfileRow(t *testing.T) {
	f := newServiceFixture(t)
	account := f.accountRepo.seed(&entity.Account{
		Email:        "broken@x.com",
		PasswordHash: "hashed:Sec#ret1",
		Role:         entity.RoleCustomer,
		IsActive:     true,
	})

	_, err := f.accounts.GetProfile(context.Background(), account.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProfileNotFound))
}

func TestUpdateProfile_Customer(t *testing.T) {
	f := newServiceFixture(t)
	account := seedCustomer(f, "a@x.com", "Sec#ret1")

	updated, err := f.accounts.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{
		AccountID: account.ID,
		FirstName: "Berta",
		City:      "Monterrey",
	})
	require.NoError(t, err)
	assert.Equal(t, "Berta", updated.Customer.FirstName)
	assert.Equal(t, "Diaz", updated.Customer.LastName)
	assert.Equal(t, "Monterrey", updated.Customer.City)
}

func TestUpdateProfile_AdminRejected(t *testing.T) {
	f := newServiceFixture(t)
	account := f.accountRepo.seed(&entity.Account{
		Email:        "adm@x.com",
		PasswordHash: "hashed:Sec#ret1",
		Role:         entity.RoleAdmin,
		IsActive:     true,
		Admin:        &entity.AdminProfile{Name: "Ops"},
	})

	_, err := f.accounts.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{
		AccountID: account.ID,
		FirstName: "nope",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUpdatePassword(t *testing.T) {
	f := newServiceFixture(t)
	account := seedCustomer(f, "a@x.com", "Sec#ret1")

	err := f.accounts.UpdatePassword(context.Background(), &usecase.UpdatePasswordInput{
		AccountID:       account.ID,
		CurrentPassword: "wrong#pw1",
		NewPassword:     "Newer#pw2",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, "hashed:Sec#ret1", account.PasswordHash)

	err = f.accounts.UpdatePassword(context.Background(), &usecase.UpdatePasswordInput{
		AccountID:       account.ID,
		CurrentPassword: "Sec#ret1",
		NewPassword:     "Newer#pw2",
	})
	require.NoError(t, err)
	assert.Equal(t, "hashed:Newer#pw2", account.PasswordHash)

	// Old password no longer logs in, new one does.
	_, err = f.accounts.Login(context.Background(), &usecase.LoginInput{Email: "a@x.com", Password: "Sec#ret1"})
	assert.Error(t, err)
	_, err = f.accounts.Login(context.Background(), &usecase.LoginInput{Email: "a@x.com", Password: "Newer#pw2"})
	assert.NoError(t, err)
}

func TestUpdatePassword_WeakNewPassword(t *testing.T) {
	f := newServiceFixture(t)
	account := seedCustomer(f, "a@x.com", "Sec#ret1")

	err := f.accounts.UpdatePassword(context.Background(), &usecase.UpdatePasswordInput{
		AccountID:       account.ID,
		CurrentPassword: "Sec#ret1",
		NewPassword:     "weak",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
	assert.Equal(t, "hashed:Sec#ret1", account.PasswordHash)
}

func TestForgotPassword(t *testing.T) {
	f := newServiceFixture(t)
	seedCustomer(f, "a@x.com", "Sec#ret1")

	assert.NoError(t, f.accounts.ForgotPassword(context.Background(), "a@x.com"))

	err := f.accounts.ForgotPassword(context.Background(), "nobody@x.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}
