// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role an account can have in the system.
// Roles form a closed set and are immutable after registration.
type Role string

const (
	// RoleCustomer indicates a service-requesting customer account.
	RoleCustomer Role = "customer"
	// RoleProvider indicates a service-provider account.
	RoleProvider Role = "provider"
	// RoleAdmin indicates a platform administrator account.
	RoleAdmin Role = "admin"
	// RoleInsurance indicates an insurance-partner account.
	RoleInsurance Role = "insurance"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin, RoleInsurance:
		return true
	}

	return false
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for logging and responses.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
