// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"upkiip/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// The profile fields that matter depend on the role: customers and providers
// carry personal fields, admins carry Name, insurers carry CompanyName.
type RegisterInput struct {
	Email    string
	Password string
	Role     entity.Role

	// Customer and provider fields.
	FirstName string
	LastName  string
	Phone     string
	Address   string

	// Customer-only fields.
	City    string
	State   string
	ZipCode string

	// Admin field.
	Name string

	// Insurance field.
	CompanyName string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdatePasswordInput defines the data required to change a password.
// The current password must re-verify even though the caller already holds
// a valid token.
type UpdatePasswordInput struct {
	AccountID       uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// UpdateProfileInput defines the fields an account may change on its own
// profile. Email, role and active status are not among them.
type UpdateProfileInput struct {
	AccountID uuid.UUID

	FirstName   string
	LastName    string
	Phone       string
	Address     string
	City        string
	State       string
	ZipCode     string
	Name        string
	CompanyName string
}

// --- Output DTOs ---

// AuthOutput returns the account's public identity plus a fresh session token.
type AuthOutput struct {
	Account *entity.Account
	Token   string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates the account, its role profile and (for customers) its
	// wallet atomically, then issues a session token.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GetProfile returns the account with its role profile (and wallet, for
	// customers) attached.
	GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)

	// UpdateProfile modifies the account's role profile and returns the
	// refreshed view.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.Account, error)

	// UpdatePassword verifies the current password and stores a new hash.
	UpdatePassword(ctx context.Context, input *UpdatePasswordInput) error

	// ForgotPassword accepts a reset request for a known email. No reset
	// email is sent; the endpoint acknowledges the request and nothing more.
	ForgotPassword(ctx context.Context, email string) error
}
