// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null;column:password"`
	Role         string    `gorm:"type:varchar(20);not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Customer *CustomerProfileModel `gorm:"foreignKey:AccountID"`
	Provider *ProviderProfileModel `gorm:"foreignKey:AccountID"`
	Admin    *AdminProfileModel    `gorm:"foreignKey:AccountID"`
	Insurer  *InsurerProfileModel  `gorm:"foreignKey:AccountID"`
	Wallet   *WalletModel          `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "users"
}

// CustomerProfileModel mirrors the 'customers' table. AccountID references users.id (UUID).
type CustomerProfileModel struct {
	AccountID uuid.UUID `gorm:"primaryKey;column:user_id"`
	FirstName string    `gorm:"type:varchar(100);not null"`
	LastName  string    `gorm:"type:varchar(100);not null"`
	Phone     string    `gorm:"type:varchar(30)"`
	Address   string    `gorm:"type:varchar(255)"`
	City      string    `gorm:"type:varchar(100)"`
	State     string    `gorm:"type:varchar(100)"`
	ZipCode   string    `gorm:"type:varchar(20)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerProfileModel) TableName() string {
	return "customers"
}

// ProviderProfileModel mirrors the 'providers' table. AccountID references users.id (UUID).
type ProviderProfileModel struct {
	AccountID uuid.UUID `gorm:"primaryKey;column:user_id"`
	FirstName string    `gorm:"type:varchar(100);not null"`
	LastName  string    `gorm:"type:varchar(100);not null"`
	Phone     string    `gorm:"type:varchar(30)"`
	Address   string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProviderProfileModel) TableName() string {
	return "providers"
}

// AdminProfileModel mirrors the 'admins' table. AccountID references users.id (UUID).
type AdminProfileModel struct {
	AccountID uuid.UUID `gorm:"primaryKey;column:user_id"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminProfileModel) TableName() string {
	return "admins"
}

// InsurerProfileModel mirrors the 'insurers' table. AccountID references users.id (UUID).
type InsurerProfileModel struct {
	AccountID   uuid.UUID `gorm:"primaryKey;column:user_id"`
	CompanyName string    `gorm:"type:varchar(150);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (InsurerProfileModel) TableName() string {
	return "insurers"
}

// WalletModel mirrors the 'wallets' table. One row per customer account,
// created with a zero balance at registration.
type WalletModel struct {
	AccountID uuid.UUID `gorm:"primaryKey;column:user_id"`
	Balance   float64   `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (WalletModel) TableName() string {
	return "wallets"
}
