package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// Goal represents a savings target. SavedAmount is moved by linked
// transactions and is never clamped to the target or to zero.
type Goal struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string          `gorm:"size:120;not null" json:"name"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"target_amount"`
	SavedAmount  decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"saved_amount"`
	Deadline     *time.Time      `json:"deadline,omitempty"`

	Progress float64 `gorm:"-" json:"progress"`
}

// ProgressPercent returns saved/target*100, or 0 when the target is not positive.
func (g *Goal) ProgressPercent() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	return g.SavedAmount.Div(g.TargetAmount).Mul(hundred).InexactFloat64()
}

// AfterFind fills the derived progress field.
func (g *Goal) AfterFind(tx *gorm.DB) error {
	g.Progress = g.ProgressPercent()
	return nil
}

// AfterSave fills the derived progress field after create and update.
func (g *Goal) AfterSave(tx *gorm.DB) error {
	g.Progress = g.ProgressPercent()
	return nil
}
