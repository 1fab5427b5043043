package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetCategory assigns a part of a budget to a category. A category
// may be assigned to a given budget at most once; a duplicate assignment
// is a hard error, not an upsert.
type BudgetCategory struct {
	DefaultModel
	BudgetID         uuid.UUID        `json:"budgetId" gorm:"uniqueIndex:budget_category_pair"`
	Budget           Budget           `json:"-"`
	CategoryID       uuid.UUID        `json:"categoryId" gorm:"uniqueIndex:budget_category_pair"`
	Category         Category         `json:"-"`
	BudgetAmount     decimal.Decimal  `json:"budgetAmount" gorm:"type:DECIMAL(20,8)"`
	BudgetPercentage *decimal.Decimal `json:"budgetPercentage,omitempty" gorm:"type:DECIMAL(20,8)"`
	ActualAmount     decimal.Decimal  `json:"actualAmount" gorm:"type:DECIMAL(20,8)"`
}

func (b *BudgetCategory) BeforeCreate(tx *gorm.DB) error {
	if err := b.DefaultModel.BeforeCreate(tx); err != nil {
		return err
	}

	return b.validate(tx)
}

func (b *BudgetCategory) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("BudgetAmount") || tx.Statement.Changed("BudgetPercentage") {
		return b.validate(tx)
	}

	return nil
}

func (b *BudgetCategory) validate(tx *gorm.DB) error {
	if b.BudgetAmount.LessThan(minBudgetAmount) {
		return ErrBudgetAmountTooSmall
	}

	if b.BudgetPercentage != nil {
		if b.BudgetPercentage.IsNegative() || b.BudgetPercentage.GreaterThan(decimal.NewFromInt(100)) {
			return ErrBudgetPercentageOutOfRange
		}
	}

	if b.ActualAmount.IsNegative() {
		return ErrSpendingNegative
	}

	// The referenced budget must exist and the line must fit into it.
	var budget Budget
	err := tx.First(&budget, "id = ?", b.BudgetID).Error
	if err != nil {
		return err
	}

	if b.BudgetAmount.GreaterThan(budget.TotalBudget) {
		return ErrBudgetCategoryExceedsTotal
	}

	return tx.First(&Category{}, "id = ?", b.CategoryID).Error
}
