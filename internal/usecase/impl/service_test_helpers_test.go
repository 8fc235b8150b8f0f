package impl

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"upkiip/internal/domain/entity"
	domainerrors "upkiip/internal/domain/errors"
	"upkiip/internal/domain/repository"
	"upkiip/internal/domain/service"
	"upkiip/internal/usecase"

	"github.com/google/uuid"
)

// fakeAccountRepo is an in-memory AccountRepository for exercising the
// services without a database.
type fakeAccountRepo struct {
	byID    map[uuid.UUID]*entity.Account
	byEmail map[string]*entity.Account

	createErr error
	updateErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byID:    make(map[uuid.UUID]*entity.Account),
		byEmail: make(map[string]*entity.Account),
	}
}

func (f *fakeAccountRepo) seed(account *entity.Account) *entity.Account {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	f.byID[account.ID] = account
	f.byEmail[account.Email] = account

	return account
}

func (f *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[account.Email]; exists {
		return repository.ErrDuplicateEmail
	}

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	f.seed(account)

	return nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return account, nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	account, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return account, nil
}

func (f *fakeAccountRepo) FindWithProfile(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeAccountRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, passwordHash string) error {
	account, ok := f.byID[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	account.PasswordHash = passwordHash

	return nil
}

func (f *fakeAccountRepo) UpdateProfile(_ context.Context, account *entity.Account) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	f.byID[account.ID] = account
	f.byEmail[account.Email] = account

	return nil
}

// fakeNotificationRepo is an in-memory NotificationRepository.
type fakeNotificationRepo struct {
	notifications []*entity.Notification
	listErr       error
}

func (f *fakeNotificationRepo) ListByAccountID(_ context.Context, accountID uuid.UUID, limit int) ([]*entity.Notification, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	var owned []*entity.Notification
	for _, n := range f.notifications {
		if n.AccountID == accountID {
			owned = append(owned, n)
		}
		if limit > 0 && len(owned) == limit {
			break
		}
	}

	return owned, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, accountID, notificationID uuid.UUID) error {
	for _, n := range f.notifications {
		if n.ID == notificationID && n.AccountID == accountID {
			n.IsRead = true

			return nil
		}
	}

	return repository.ErrNotificationNotFound
}

// fakeTxManager runs the callback against the fakes without any transaction.
type fakeTxManager struct {
	accountRepo      repository.AccountRepository
	notificationRepo repository.NotificationRepository
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f)
}

func (f *fakeTxManager) AccountRepo() repository.AccountRepository {
	return f.accountRepo
}

func (f *fakeTxManager) NotificationRepo() repository.NotificationRepository {
	return f.notificationRepo
}

// fakeHasher applies a reversible marker instead of real bcrypt so tests can
// assert on stored values.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

func (fakeHasher) ValidatePasswordStrength(password string) error {
	if len(password) < 8 || !strings.ContainsAny(password, "!@#$%^&*") {
		return domainerrors.ErrPasswordStrength.WrapMessage("password is too weak")
	}

	return nil
}

// fakeTokenService issues deterministic tokens keyed by account ID.
type fakeTokenService struct {
	issueErr error
}

func (f *fakeTokenService) Issue(accountID uuid.UUID) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}

	return "token-" + accountID.String(), nil
}

func (f *fakeTokenService) Verify(token string) (*service.Claims, error) {
	id, err := uuid.Parse(strings.TrimPrefix(token, "token-"))
	if err != nil {
		return nil, err
	}

	return &service.Claims{AccountID: id, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeTokenService) TokenDuration() time.Duration {
	return time.Hour
}

type serviceFixture struct {
	accountRepo      *fakeAccountRepo
	notificationRepo *fakeNotificationRepo
	tokenService     *fakeTokenService
	accounts         usecase.AccountUsecase
	notifications    usecase.NotificationUsecase
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	accountRepo := newFakeAccountRepo()
	notificationRepo := &fakeNotificationRepo{}
	tokenService := &fakeTokenService{}
	txManager := &fakeTxManager{accountRepo: accountRepo, notificationRepo: notificationRepo}
	logger := slog.New(slog.DiscardHandler)

	return &serviceFixture{
		accountRepo:      accountRepo,
		notificationRepo: notificationRepo,
		tokenService:     tokenService,
		accounts: NewAccountService(AccountServiceParams{
			TxManager:    txManager,
			AccountRepo:  accountRepo,
			Hasher:       fakeHasher{},
			TokenService: tokenService,
			Logger:       logger,
		}),
		notifications: NewNotificationService(NotificationServiceParams{
			NotificationRepo: notificationRepo,
			Logger:           logger,
		}),
	}
}

func seedCustomer(f *serviceFixture, email, password string) *entity.Account {
	return f.accountRepo.seed(&entity.Account{
		Email:        email,
		PasswordHash: "hashed:" + password,
		Role:         entity.RoleCustomer,
		IsActive:     true,
		Customer:     &entity.CustomerProfile{FirstName: "Ana", LastName: "Diaz"},
		Wallet:       &entity.Wallet{Balance: 0},
	})
}
