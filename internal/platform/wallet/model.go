package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type categorizes where the money lives
type Type string

const (
	TypeCash    Type = "cash"
	TypeBank    Type = "bank"
	TypeCredit  Type = "credit"
	TypeEWallet Type = "e_wallet"
)

// IsValid checks if the wallet type is valid
func (t Type) IsValid() bool {
	switch t {
	case TypeCash, TypeBank, TypeCredit, TypeEWallet:
		return true
	}
	return false
}

// Wallet represents a source of funds: cash, a bank account, a credit card or
// an e-wallet. The current balance is never stored; it is a fold over the
// wallet's transactions on top of the initial balance.
type Wallet struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	Name           string           `json:"name"`
	Type           Type             `json:"type"`
	InitialBalance decimal.Decimal  `json:"initial_balance"`
	CreditLimit    *decimal.Decimal `json:"credit_limit,omitempty"` // credit wallets only
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ValidateCreate validates wallet fields for creation
func (w *Wallet) ValidateCreate() error {
	if w.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if w.Name == "" {
		return ErrMissingWalletName
	}
	if len(w.Name) > 100 {
		return ErrWalletNameTooLong
	}
	if !w.Type.IsValid() {
		return ErrInvalidWalletType
	}
	if w.CreditLimit != nil && w.Type != TypeCredit {
		return ErrCreditLimitNotAllowed
	}
	if w.CreditLimit != nil && w.CreditLimit.IsNegative() {
		return ErrNegativeCreditLimit
	}
	return nil
}

// ValidateUpdate validates wallet fields for updates
func (w *Wallet) ValidateUpdate() error {
	if w.ID == uuid.Nil {
		return ErrInvalidWalletID
	}
	if w.Name == "" {
		return ErrMissingWalletName
	}
	if len(w.Name) > 100 {
		return ErrWalletNameTooLong
	}
	if w.Type != "" && !w.Type.IsValid() {
		return ErrInvalidWalletType
	}
	return nil
}

// Balance is a wallet together with its computed current balance
type Balance struct {
	Wallet
	CurrentBalance decimal.Decimal `json:"current_balance"`
}
