package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendsense/backend/internal/models"
	"github.com/spendsense/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func currentMonth() types.Month {
	return types.MonthOf(time.Now().In(time.UTC))
}

func (suite *TestSuiteStandard) TestBudgetCreate() {
	budget := suite.createTestBudget(models.Budget{
		UserID:      uuid.New(),
		Month:       currentMonth(),
		TotalBudget: decimal.NewFromInt(1500),
		Notes:       "  groceries and rent  ",
	})

	assert.True(suite.T(), budget.ActualSpending.IsZero())
	assert.Equal(suite.T(), "groceries and rent", budget.Notes)
}

func (suite *TestSuiteStandard) TestBudgetValidation() {
	userID := uuid.New()

	tests := []struct {
		name   string
		budget models.Budget
		err    error
	}{
		{
			"missing user",
			models.Budget{Month: currentMonth(), TotalBudget: decimal.NewFromInt(100)},
			models.ErrBudgetUserRequired,
		},
		{
			"zero amount",
			models.Budget{UserID: userID, Month: currentMonth()},
			models.ErrBudgetAmountTooSmall,
		},
		{
			"amount above maximum",
			models.Budget{UserID: userID, Month: currentMonth(), TotalBudget: decimal.NewFromInt(1000000)},
			models.ErrBudgetAmountTooLarge,
		},
		{
			"negative spending",
			models.Budget{UserID: userID, Month: currentMonth(), TotalBudget: decimal.NewFromInt(100), ActualSpending: decimal.NewFromInt(-1)},
			models.ErrSpendingNegative,
		},
		{
			"notes too long",
			models.Budget{UserID: userID, Month: currentMonth(), TotalBudget: decimal.NewFromInt(100), Notes: strings.Repeat("x", 1001)},
			models.ErrNotesTooLong,
		},
		{
			"month too far back",
			models.Budget{UserID: userID, Month: currentMonth().AddDate(0, -13), TotalBudget: decimal.NewFromInt(100)},
			models.ErrBudgetMonthOutOfRange,
		},
		{
			"month too far ahead",
			models.Budget{UserID: userID, Month: currentMonth().AddDate(0, 13), TotalBudget: decimal.NewFromInt(100)},
			models.ErrBudgetMonthOutOfRange,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.budget).Error
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, models.ErrInvalidArgument)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetWindowBoundariesInclusive() {
	// Exactly 12 months back and forward are still valid
	_ = suite.createTestBudget(models.Budget{
		UserID:      uuid.New(),
		Month:       currentMonth().AddDate(0, -12),
		TotalBudget: decimal.NewFromInt(100),
	})
	_ = suite.createTestBudget(models.Budget{
		UserID:      uuid.New(),
		Month:       currentMonth().AddDate(0, 12),
		TotalBudget: decimal.NewFromInt(100),
	})
}

func (suite *TestSuiteStandard) TestBudgetUserMonthUnique() {
	userID := uuid.New()

	_ = suite.createTestBudget(models.Budget{
		UserID:      userID,
		Month:       currentMonth(),
		TotalBudget: decimal.NewFromInt(100),
	})

	duplicate := models.Budget{
		UserID:      userID,
		Month:       currentMonth(),
		TotalBudget: decimal.NewFromInt(200),
	}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrBudgetMonthNotUnique)
}

func (suite *TestSuiteStandard) TestBudgetCategoryValidation() {
	userID := uuid.New()
	budget := suite.createTestBudget(models.Budget{
		UserID:      userID,
		Month:       currentMonth(),
		TotalBudget: decimal.NewFromInt(1000),
	})
	category := suite.createTestCategory(models.Category{Name: uuid.New().String()})

	hundredFifty := decimal.NewFromInt(150)
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name string
		bc   models.BudgetCategory
		err  error
	}{
		{
			"amount below minimum",
			models.BudgetCategory{BudgetID: budget.ID, CategoryID: category.ID},
			models.ErrBudgetAmountTooSmall,
		},
		{
			"amount exceeds parent total",
			models.BudgetCategory{BudgetID: budget.ID, CategoryID: category.ID, BudgetAmount: decimal.NewFromInt(1001)},
			models.ErrBudgetCategoryExceedsTotal,
		},
		{
			"percentage above 100",
			models.BudgetCategory{BudgetID: budget.ID, CategoryID: category.ID, BudgetAmount: decimal.NewFromInt(100), BudgetPercentage: &hundredFifty},
			models.ErrBudgetPercentageOutOfRange,
		},
		{
			"negative percentage",
			models.BudgetCategory{BudgetID: budget.ID, CategoryID: category.ID, BudgetAmount: decimal.NewFromInt(100), BudgetPercentage: &negative},
			models.ErrBudgetPercentageOutOfRange,
		},
		{
			"unknown parent budget",
			models.BudgetCategory{BudgetID: uuid.New(), CategoryID: category.ID, BudgetAmount: decimal.NewFromInt(100)},
			models.ErrResourceNotFound,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.bc).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetCategoryDuplicateIsHardError() {
	budget := suite.createTestBudget(models.Budget{
		UserID:      uuid.New(),
		Month:       currentMonth(),
		TotalBudget: decimal.NewFromInt(1000),
	})
	category := suite.createTestCategory(models.Category{Name: uuid.New().String()})

	first := models.BudgetCategory{BudgetID: budget.ID, CategoryID: category.ID, BudgetAmount: decimal.NewFromInt(100)}
	require.NoError(suite.T(), models.DB.Create(&first).Error)

	// Adding the same category again is rejected, not upserted
	second := models.BudgetCategory{BudgetID: budget.ID, CategoryID: category.ID, BudgetAmount: decimal.NewFromInt(200)}
	err := models.DB.Create(&second).Error
	assert.ErrorIs(suite.T(), err, models.ErrBudgetCategoryNotUnique)

	var count int64
	require.NoError(suite.T(), models.DB.Model(&models.BudgetCategory{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}
