package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendsense/backend/internal/types"
	"gorm.io/gorm"
)

// Budget amount bounds and limits.
var (
	minBudgetAmount = decimal.RequireFromString("0.01")
	maxBudgetAmount = decimal.RequireFromString("999999.99")
)

const (
	maxNotesLength     = 1000
	budgetWindowMonths = 12
)

// Budget is a monthly spending budget of a user.
//
// A budget is never deleted, only deactivated. Its status is not stored:
// it is always derived from (ActualSpending, TotalBudget) by the
// classifier in the analytics package.
type Budget struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"uniqueIndex:budget_user_month"`
	Month          types.Month     `json:"month" gorm:"uniqueIndex:budget_user_month"`
	TotalBudget    decimal.Decimal `json:"totalBudget" gorm:"type:DECIMAL(20,8)"`
	ActualSpending decimal.Decimal `json:"actualSpending" gorm:"type:DECIMAL(20,8)"`
	Active         bool            `json:"active" gorm:"default:true"`
	Notes          string          `json:"notes,omitempty"`
}

// BeforeSave validates the budget. Validation is fail-fast: the first
// violated constraint is returned, values are never clamped.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Notes = strings.TrimSpace(b.Notes)

	if b.UserID == uuid.Nil {
		return ErrBudgetUserRequired
	}

	if b.TotalBudget.LessThan(minBudgetAmount) {
		return ErrBudgetAmountTooSmall
	}
	if b.TotalBudget.GreaterThan(maxBudgetAmount) {
		return ErrBudgetAmountTooLarge
	}

	if b.ActualSpending.IsNegative() {
		return ErrSpendingNegative
	}
	if b.ActualSpending.GreaterThan(maxBudgetAmount) {
		return ErrSpendingTooLarge
	}

	if len(b.Notes) > maxNotesLength {
		return ErrNotesTooLong
	}

	// The month must lie in the inclusive 12-month window around the
	// current month.
	if !b.Month.WithinMonths(types.MonthOf(time.Now().In(time.UTC)), budgetWindowMonths) {
		return ErrBudgetMonthOutOfRange
	}

	return nil
}
