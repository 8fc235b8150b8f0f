package postgres

import (
	"context"
	"time"

	"upkiip/internal/domain/entity"
	domainerrors "upkiip/internal/domain/errors"
	"upkiip/internal/domain/repository"
	"upkiip/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create persists a new account entity together with its role profile and,
// for customers, its zero-balance wallet. GORM's Create with associations
// inserts the users row and the profile rows as one unit, so callers running
// this inside txManager.Execute get all-or-nothing semantics.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("invalid foreign key reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Copy back the generated ID and timestamps.
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt
	syncProfileTimestamps(account, accountM)

	return nil
}

// FindByID retrieves the bare account row by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves the bare account row by login email.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// FindWithProfile retrieves the account and preloads the profile row its
// role dictates. Customers also get their wallet. The preload set is chosen
// after the role is known, so unrelated profile tables are never queried.
func (repo *accountRepository) FindWithProfile(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	query := repo.db.WithContext(ctx).Where("id = ?", id)
	switch entity.Role(accountM.Role) {
	case entity.RoleCustomer:
		query = query.Preload("Customer").Preload("Wallet")
	case entity.RoleProvider:
		query = query.Preload("Provider")
	case entity.RoleAdmin:
		query = query.Preload("Admin")
	case entity.RoleInsurance:
		query = query.Preload("Insurer")
	}

	if err := query.First(&accountM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load account profile")
	}

	return toAccountDomain(&accountM), nil
}

// UpdatePasswordHash replaces the stored password hash for the account.
func (repo *accountRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password":   passwordHash,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update password hash")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// UpdateProfile persists changes to the account's role profile row. The role
// itself and the credential columns are never touched here.
func (repo *accountRepository) UpdateProfile(ctx context.Context, account *entity.Account) error {
	var result *gorm.DB

	switch account.Role {
	case entity.RoleCustomer:
		if account.Customer == nil {
			return domainerrors.ErrProfileNotFound.WrapMessage("customer profile missing")
		}
		result = repo.db.WithContext(ctx).
			Model(&model.CustomerProfileModel{}).
			Where("user_id = ?", account.ID).
			Updates(map[string]any{
				"first_name": account.Customer.FirstName,
				"last_name":  account.Customer.LastName,
				"phone":      account.Customer.Phone,
				"address":    account.Customer.Address,
				"city":       account.Customer.City,
				"state":      account.Customer.State,
				"zip_code":   account.Customer.ZipCode,
				"updated_at": time.Now(),
			})
	case entity.RoleProvider:
		if account.Provider == nil {
			return domainerrors.ErrProfileNotFound.WrapMessage("provider profile missing")
		}
		result = repo.db.WithContext(ctx).
			Model(&model.ProviderProfileModel{}).
			Where("user_id = ?", account.ID).
			Updates(map[string]any{
				"first_name": account.Provider.FirstName,
				"last_name":  account.Provider.LastName,
				"phone":      account.Provider.Phone,
				"address":    account.Provider.Address,
				"updated_at": time.Now(),
			})
	case entity.RoleAdmin:
		if account.Admin == nil {
			return domainerrors.ErrProfileNotFound.WrapMessage("admin profile missing")
		}
		result = repo.db.WithContext(ctx).
			Model(&model.AdminProfileModel{}).
			Where("user_id = ?", account.ID).
			Updates(map[string]any{
				"name":       account.Admin.Name,
				"updated_at": time.Now(),
			})
	case entity.RoleInsurance:
		if account.Insurer == nil {
			return domainerrors.ErrProfileNotFound.WrapMessage("insurer profile missing")
		}
		result = repo.db.WithContext(ctx).
			Model(&model.InsurerProfileModel{}).
			Where("user_id = ?", account.ID).
			Updates(map[string]any{
				"company_name": account.Insurer.CompanyName,
				"updated_at":   time.Now(),
			})
	default:
		return domainerrors.ErrProfileNotFound.WrapMessage("unknown role")
	}

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	account := &entity.Account{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}

	if data.Customer != nil {
		account.Customer = &entity.CustomerProfile{
			AccountID: data.Customer.AccountID,
			FirstName: data.Customer.FirstName,
			LastName:  data.Customer.LastName,
			Phone:     data.Customer.Phone,
			Address:   data.Customer.Address,
			City:      data.Customer.City,
			State:     data.Customer.State,
			ZipCode:   data.Customer.ZipCode,
			UpdatedAt: data.Customer.UpdatedAt,
		}
	}
	if data.Provider != nil {
		account.Provider = &entity.ProviderProfile{
			AccountID: data.Provider.AccountID,
			FirstName: data.Provider.FirstName,
			LastName:  data.Provider.LastName,
			Phone:     data.Provider.Phone,
			Address:   data.Provider.Address,
			UpdatedAt: data.Provider.UpdatedAt,
		}
	}
	if data.Admin != nil {
		account.Admin = &entity.AdminProfile{
			AccountID: data.Admin.AccountID,
			Name:      data.Admin.Name,
			UpdatedAt: data.Admin.UpdatedAt,
		}
	}
	if data.Insurer != nil {
		account.Insurer = &entity.InsurerProfile{
			AccountID:   data.Insurer.AccountID,
			CompanyName: data.Insurer.CompanyName,
			UpdatedAt:   data.Insurer.UpdatedAt,
		}
	}
	if data.Wallet != nil {
		account.Wallet = &entity.Wallet{
			AccountID: data.Wallet.AccountID,
			Balance:   data.Wallet.Balance,
			UpdatedAt: data.Wallet.UpdatedAt,
		}
	}

	return account
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	accountM := &model.AccountModel{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         data.Role.String(),
		IsActive:     data.IsActive,
	}

	if data.Customer != nil {
		accountM.Customer = &model.CustomerProfileModel{
			AccountID: data.Customer.AccountID,
			FirstName: data.Customer.FirstName,
			LastName:  data.Customer.LastName,
			Phone:     data.Customer.Phone,
			Address:   data.Customer.Address,
			City:      data.Customer.City,
			State:     data.Customer.State,
			ZipCode:   data.Customer.ZipCode,
		}
	}
	if data.Provider != nil {
		accountM.Provider = &model.ProviderProfileModel{
			AccountID: data.Provider.AccountID,
			FirstName: data.Provider.FirstName,
			LastName:  data.Provider.LastName,
			Phone:     data.Provider.Phone,
			Address:   data.Provider.Address,
		}
	}
	if data.Admin != nil {
		accountM.Admin = &model.AdminProfileModel{
			AccountID: data.Admin.AccountID,
			Name:      data.Admin.Name,
		}
	}
	if data.Insurer != nil {
		accountM.Insurer = &model.InsurerProfileModel{
			AccountID:   data.Insurer.AccountID,
			CompanyName: data.Insurer.CompanyName,
		}
	}
	if data.Wallet != nil {
		accountM.Wallet = &model.WalletModel{
			AccountID: data.Wallet.AccountID,
			Balance:   data.Wallet.Balance,
		}
	}

	return accountM
}

// syncProfileTimestamps copies generated timestamps back onto the entity
// after an insert.
func syncProfileTimestamps(account *entity.Account, accountM *model.AccountModel) {
	if account.Customer != nil && accountM.Customer != nil {
		account.Customer.AccountID = accountM.Customer.AccountID
		account.Customer.UpdatedAt = accountM.Customer.UpdatedAt
	}
	if account.Provider != nil && accountM.Provider != nil {
		account.Provider.AccountID = accountM.Provider.AccountID
		account.Provider.UpdatedAt = accountM.Provider.UpdatedAt
	}
	if account.Admin != nil && accountM.Admin != nil {
		account.Admin.AccountID = accountM.Admin.AccountID
		account.Admin.UpdatedAt = accountM.Admin.UpdatedAt
	}
	if account.Insurer != nil && accountM.Insurer != nil {
		account.Insurer.AccountID = accountM.Insurer.AccountID
		account.Insurer.UpdatedAt = accountM.Insurer.UpdatedAt
	}
	if account.Wallet != nil && accountM.Wallet != nil {
		account.Wallet.AccountID = accountM.Wallet.AccountID
		account.Wallet.UpdatedAt = accountM.Wallet.UpdatedAt
	}
}
