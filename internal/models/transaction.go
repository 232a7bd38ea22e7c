package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// DefaultCategory is assigned to transactions created without a category.
const DefaultCategory = "Other"

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeWithdrawal
}

// Transaction represents a ledger entry. Amount is always positive; Type
// carries the sign.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	GoalID      *string         `gorm:"type:uuid;index" json:"goal_id,omitempty"`
	Type        TransactionType `gorm:"size:20;not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Category    string          `gorm:"size:100;not null;default:'Other'" json:"category"`
	Description string          `gorm:"size:200" json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
}

// SignedAmount returns the amount as a signed delta: positive for deposits,
// negative for withdrawals.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
