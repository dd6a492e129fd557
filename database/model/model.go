// Package model defines the persisted entities of the tradedesk panel.
package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
)

// Wallet holds a user's deposit destination. Read-only in the panel flows;
// populated out of band.
type Wallet struct {
	Address string `json:"address"`
	QRCode  string `json:"qrCode"`
}

// User is the central record: credentials, balance and the per-user trade,
// withdrawal and screenshot histories hang off it.
type User struct {
	Id       uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string  `json:"username" gorm:"uniqueIndex;not null"`
	Email    string  `json:"email" gorm:"uniqueIndex;not null"`
	Password string  `json:"-" gorm:"not null"` // bcrypt hash, never plaintext
	Role     string  `json:"role" gorm:"not null;default:user"`
	Balance  float64 `json:"balance" gorm:"not null;default:0"`

	Trades      []Trade      `json:"trades" gorm:"foreignKey:UserId"`
	Withdrawals []Withdrawal `json:"withdrawals" gorm:"foreignKey:UserId"`
	Screenshots []Screenshot `json:"screenshots" gorm:"foreignKey:UserId"`
	Wallet      Wallet       `json:"wallet" gorm:"embedded;embeddedPrefix:wallet_"`

	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin is a derived view over Role, the single source of truth.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Trade is a manually entered profit/loss line. Created only by admin entry,
// never deleted.
type Trade struct {
	Id     uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId uint      `json:"-" gorm:"index;not null"`
	Type   string    `json:"type"`
	Profit float64   `json:"profit" gorm:"not null;default:0"`
	Loss   float64   `json:"loss" gorm:"not null;default:0"`
	Date   time.Time `json:"date"`
}

// Withdrawal debits the balance at request time and moves from pending to
// approved under admin action only. The uuid primary key is the stable handle
// admin approval uses.
type Withdrawal struct {
	Id       string    `json:"id" gorm:"primaryKey;size:36"`
	UserId   uint      `json:"-" gorm:"index;not null"`
	Amount   float64   `json:"amount" gorm:"not null"`
	Wallet   string    `json:"wallet"`
	Currency string    `json:"currency"`
	Status   string    `json:"status" gorm:"not null;default:pending"`
	Date     time.Time `json:"date"`
}

// Screenshot references an uploaded deposit proof on disk. Appended only.
type Screenshot struct {
	Id         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId     uint      `json:"-" gorm:"index;not null"`
	Filename   string    `json:"filename" gorm:"not null"`
	UploadedAt time.Time `json:"uploadedAt"`
}
