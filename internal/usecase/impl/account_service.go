// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "upkiip/internal/delivery/context"
	"upkiip/internal/domain/entity"
	domainerrors "upkiip/internal/domain/errors"
	"upkiip/internal/domain/repository"
	"upkiip/internal/domain/service"
	"upkiip/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Display names filled in when registration omits them.
const (
	defaultAdminName          = "Admin"
	defaultInsurerCompanyName = "Insurance Company"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process. The account row,
// its role profile and (for customers) its wallet commit or roll back as one
// unit; an account without a profile must never exist.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("role", input.Role.String()), slog.String("email", input.Email))

	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	// Hash outside the transaction; bcrypt is CPU-bound.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newAccount := buildNewAccountEntity(input, hashedPassword)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// Advisory pre-check for a friendlier error. The unique constraint
		// on the insert is the authoritative arbiter under concurrency.
		_, findErr := accountRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check existing account")
		}

		if createErr := accountRepo.Create(ctx, newAccount); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateEmail) {
				return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already registered")
			}

			return errors.Wrap(createErr, "failed to create account during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	token, err := srv.tokenService.Issue(newAccount.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("accountID", newAccount.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Registration completed", slog.String("role", input.Role.String()), slog.Any("accountID", newAccount.ID))

	return &usecase.AuthOutput{Account: newAccount, Token: token}, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password produce the same error; a disabled account with
// valid-looking credentials is reported distinctly, before the password is
// even compared.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.String("reason", "unknown email"))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	if !account.IsActive {
		srv.log(ctx).Warn("Login attempt on disabled account", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrAccountDisabled.WrapMessage("login failed")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.String("reason", "password mismatch"))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("accountID", account.ID))

	return &usecase.AuthOutput{Account: account, Token: token}, nil
}

// GetProfile returns the account joined with the profile row its role dictates.
func (srv *accountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindWithProfile(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("account missing")
		}

		return nil, errors.Wrap(err, "failed to load account profile")
	}

	if !account.HasProfile() {
		srv.log(ctx).Error("Account has no profile row for its role", slog.Any("accountID", account.ID), slog.String("role", account.Role.String()))

		return nil, domainerrors.ErrProfileNotFound.WrapMessage("profile row missing")
	}

	return account, nil
}

// UpdateProfile modifies the caller's own profile row. Only customers and
// providers carry user-editable fields.
func (srv *accountService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	account, err := srv.GetProfile(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	switch account.Role {
	case entity.RoleCustomer:
		applyCustomerProfileUpdate(account.Customer, input)
	case entity.RoleProvider:
		applyProviderProfileUpdate(account.Provider, input)
	case entity.RoleAdmin, entity.RoleInsurance:
		return nil, domainerrors.ErrValidationFailed.WrapMessage("profile editing is not available for this role")
	default:
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	if err := srv.accountRepo.UpdateProfile(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to update profile", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update profile")
	}

	return srv.GetProfile(ctx, input.AccountID)
}

// UpdatePassword re-verifies the current password before storing a new hash.
// Holding a valid token is not proof enough for a credential change.
func (srv *accountService) UpdatePassword(ctx context.Context, input *usecase.UpdatePasswordInput) error {
	account, err := srv.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("account missing")
		}

		return errors.Wrap(err, "failed to load account for password change")
	}

	if !srv.hasher.Check(input.CurrentPassword, account.PasswordHash) {
		srv.log(ctx).Warn("Password change rejected", slog.Any("accountID", account.ID), slog.String("reason", "current password mismatch"))

		return domainerrors.ErrInvalidCredentials.WrapMessage("current password is incorrect")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("accountID", account.ID), slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}

	if err := srv.accountRepo.UpdatePasswordHash(ctx, account.ID, newHash); err != nil {
		srv.log(ctx).Error("Failed to store new password hash", slog.Any("accountID", account.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to store new password hash")
	}

	srv.log(ctx).Info("Password updated", slog.Any("accountID", account.ID))

	return nil
}

// ForgotPassword looks up the account and acknowledges the request. No reset
// token is generated and no email is sent.
func (srv *accountService) ForgotPassword(ctx context.Context, email string) error {
	_, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("no account for this email")
		}

		return errors.Wrap(err, "failed to look up account for password reset")
	}

	srv.log(ctx).Info("Password reset requested", slog.String("email", email))

	return nil
}

func buildNewAccountEntity(input *usecase.RegisterInput, hashedPassword string) *entity.Account {
	account := &entity.Account{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         input.Role,
		IsActive:     true,
	}

	switch input.Role {
	case entity.RoleCustomer:
		account.Customer = &entity.CustomerProfile{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
			Address:   input.Address,
			City:      input.City,
			State:     input.State,
			ZipCode:   input.ZipCode,
		}
		account.Wallet = &entity.Wallet{Balance: 0}
	case entity.RoleProvider:
		account.Provider = &entity.ProviderProfile{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
			Address:   input.Address,
		}
	case entity.RoleAdmin:
		name := input.Name
		if name == "" {
			name = defaultAdminName
		}
		account.Admin = &entity.AdminProfile{Name: name}
	case entity.RoleInsurance:
		companyName := input.CompanyName
		if companyName == "" {
			companyName = defaultInsurerCompanyName
		}
		account.Insurer = &entity.InsurerProfile{CompanyName: companyName}
	}

	return account
}

func applyCustomerProfileUpdate(profile *entity.CustomerProfile, input *usecase.UpdateProfileInput) {
	if input.FirstName != "" {
		profile.FirstName = input.FirstName
	}
	if input.LastName != "" {
		profile.LastName = input.LastName
	}
	if input.Phone != "" {
		profile.Phone = input.Phone
	}
	if input.Address != "" {
		profile.Address = input.Address
	}
	if input.City != "" {
		profile.City = input.City
	}
	if input.State != "" {
		profile.State = input.State
	}
	if input.ZipCode != "" {
		profile.ZipCode = input.ZipCode
	}
}

func applyProviderProfileUpdate(profile *entity.ProviderProfile, input *usecase.UpdateProfileInput) {
	if input.FirstName != "" {
		profile.FirstName = input.FirstName
	}
	if input.LastName != "" {
		profile.LastName = input.LastName
	}
	if input.Phone != "" {
		profile.Phone = input.Phone
	}
	if input.Address != "" {
		profile.Address = input.Address
	}
}
