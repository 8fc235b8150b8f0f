// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the authentication record at the core of the system. Every
// person or organization using the platform owns exactly one Account with
// exactly one role-specific profile attached to it.
type Account struct {
	ID           uuid.UUID // The unique identifier for the account.
	Email        string    // The login identifier. Unique across all accounts.
	PasswordHash string    // The bcrypt hash of the password. Never serialized or logged.
	Role         Role      // The account's single, immutable role.
	IsActive     bool      // Soft-disable marker. False blocks login and existing tokens.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.

	Customer *CustomerProfile // Set only when Role is customer.
	Provider *ProviderProfile // Set only when Role is provider.
	Admin    *AdminProfile    // Set only when Role is admin.
	Insurer  *InsurerProfile  // Set only when Role is insurance.
	Wallet   *Wallet          // Set only when Role is customer.
}

// CustomerProfile holds data specific to the customer role.
type CustomerProfile struct {
	AccountID uuid.UUID
	FirstName string
	LastName  string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
	UpdatedAt time.Time
}

// ProviderProfile holds data specific to the service-provider role.
type ProviderProfile struct {
	AccountID uuid.UUID
	FirstName string
	LastName  string
	Phone     string
	Address   string
	UpdatedAt time.Time
}

// AdminProfile holds data specific to the administrator role.
type AdminProfile struct {
	AccountID uuid.UUID
	Name      string
	UpdatedAt time.Time
}

// InsurerProfile holds data specific to the insurance-partner role.
type InsurerProfile struct {
	AccountID   uuid.UUID
	CompanyName string
	UpdatedAt   time.Time
}

// Wallet is the customer's balance record. It is created with a zero
// balance at registration and exists only for customer accounts.
type Wallet struct {
	AccountID uuid.UUID
	Balance   float64
	UpdatedAt time.Time
}

// HasProfile reports whether the account carries the profile row its role
// requires. Exhaustive over the closed role set.
func (a *Account) HasProfile() bool {
	switch a.Role {
	case RoleCustomer:
		return a.Customer != nil
	case RoleProvider:
		return a.Provider != nil
	case RoleAdmin:
		return a.Admin != nil
	case RoleInsurance:
		return a.Insurer != nil
	}

	return false
}
