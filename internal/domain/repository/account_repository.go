// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"upkiip/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// ErrDuplicateEmail is returned when an insert collides with the unique email
// constraint. The constraint, not the advisory pre-check, is the authoritative
// arbiter under concurrent registrations.
var ErrDuplicateEmail = errors.New("email already registered")

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
type AccountRepository interface {
	// Create persists a new account together with its role profile and,
	// for customers, its zero-balance wallet. Callers run it inside a
	// transaction so the rows commit or roll back as one unit.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves the bare account row (no profile joined).
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves the bare account row by login email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindWithProfile retrieves the account with the profile row its role
	// dictates (and the wallet, for customers) preloaded.
	FindWithProfile(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error

	// UpdateProfile persists changes to the account's role profile row.
	UpdateProfile(ctx context.Context, account *entity.Account) error
}
