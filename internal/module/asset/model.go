package asset

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies an asset. Unit-based kinds carry a quantity and per-unit
// prices; for those the stored values are recomputed from the units on every
// write.
type Kind string

const (
	KindRealEstate Kind = "real_estate"
	KindLand       Kind = "land"
	KindGold       Kind = "gold"
	KindSavings    Kind = "savings"
	KindStock      Kind = "stock"
	KindCrypto     Kind = "crypto"
	KindFund       Kind = "fund"
	KindDebt       Kind = "debt" // money others owe the user, held as an asset
	KindOther      Kind = "other"
)

// IsValid checks if the asset kind is valid
func (k Kind) IsValid() bool {
	switch k {
	case KindRealEstate, KindLand, KindGold, KindSavings, KindStock,
		KindCrypto, KindFund, KindDebt, KindOther:
		return true
	}
	return false
}

// IsUnitBased reports whether the asset is tracked as quantity times price
func (k Kind) IsUnitBased() bool {
	switch k {
	case KindGold, KindStock, KindCrypto, KindFund:
		return true
	}
	return false
}

// IsLiquid reports whether the asset counts toward the liquidity runway.
// Savings and gold can be turned into cash within days; the rest cannot.
func (k Kind) IsLiquid() bool {
	return k == KindSavings || k == KindGold
}

// IsInvested reports whether the asset counts toward the investment ratio
func (k Kind) IsInvested() bool {
	switch k {
	case KindRealEstate, KindLand, KindGold, KindStock, KindCrypto, KindFund:
		return true
	}
	return false
}

// Asset is a single holding in the user's portfolio
type Asset struct {
	ID           uuid.UUID        `json:"id"`
	UserID       uuid.UUID        `json:"user_id"`
	Name         string           `json:"name"`
	Kind         Kind             `json:"kind"`
	Value        decimal.Decimal  `json:"value"`
	InitialValue decimal.Decimal  `json:"initial_value"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	BuyPrice     *decimal.Decimal `json:"buy_price,omitempty"`
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
	Note         string           `json:"note"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ValidateCreate validates asset fields for creation
func (a *Asset) ValidateCreate() error {
	if a.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if a.Name == "" {
		return ErrMissingName
	}
	if !a.Kind.IsValid() {
		return ErrInvalidKind
	}
	if a.Kind.IsUnitBased() {
		if a.Quantity == nil || !a.Quantity.IsPositive() {
			return ErrMissingQuantity
		}
		if a.CurrentPrice == nil || a.CurrentPrice.IsNegative() {
			return ErrMissingPrice
		}
	} else if a.Value.IsNegative() {
		return ErrInvalidValue
	}
	return nil
}

// Normalize derives the stored values of a unit-based asset from its units.
// For other kinds a zero initial value defaults to the current value.
func (a *Asset) Normalize() {
	if a.Kind.IsUnitBased() {
		a.Value = a.Quantity.Mul(*a.CurrentPrice)
		if a.BuyPrice != nil {
			a.InitialValue = a.Quantity.Mul(*a.BuyPrice)
		} else {
			a.InitialValue = a.Value
		}
		return
	}
	if a.InitialValue.IsZero() {
		a.InitialValue = a.Value
	}
}

// GainLoss returns the asset's absolute gain or loss since purchase
func (a *Asset) GainLoss() decimal.Decimal {
	return a.Value.Sub(a.InitialValue)
}

// Portfolio aggregates a user's assets the way the health scorer consumes
// them: total, liquid and invested values plus per-kind breakdown.
type Portfolio struct {
	Total    decimal.Decimal          `json:"total"`
	Liquid   decimal.Decimal          `json:"liquid"`
	Invested decimal.Decimal          `json:"invested"`
	GainLoss decimal.Decimal          `json:"gain_loss"`
	ByKind   map[Kind]decimal.Decimal `json:"by_kind"`
}
