package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendsense/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTransactionValidation() {
	userID := uuid.New()

	tests := []struct {
		name        string
		transaction models.Transaction
		err         error
	}{
		{
			"missing user",
			models.Transaction{Amount: decimal.NewFromInt(10), Kind: models.TransactionExpense},
			models.ErrTransactionUserRequired,
		},
		{
			"negative amount",
			models.Transaction{UserID: userID, Amount: decimal.NewFromInt(-10), Kind: models.TransactionExpense},
			models.ErrTransactionAmountNegative,
		},
		{
			"unknown kind",
			models.Transaction{UserID: userID, Amount: decimal.NewFromInt(10), Kind: "REFUND"},
			models.ErrTransactionKindInvalid,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.transaction).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestCountTransactions() {
	userID := uuid.New()
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	for i := range 5 {
		_ = suite.createTestTransaction(models.Transaction{
			UserID: userID,
			Date:   base.AddDate(0, 0, i),
			Amount: decimal.NewFromInt(10),
			Kind:   models.TransactionExpense,
		})
	}
	_ = suite.createTestTransaction(models.Transaction{
		UserID: uuid.New(),
		Date:   base,
		Amount: decimal.NewFromInt(10),
		Kind:   models.TransactionExpense,
	})

	count, err := models.CountTransactions(userID, time.Time{}, time.Time{})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), count)

	// Inclusive range bounds
	count, err = models.CountTransactions(userID, base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), count)
}

func (suite *TestSuiteStandard) TestTransactionsBetweenOrderedDateDesc() {
	userID := uuid.New()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, day := range []int{2, 0, 1} {
		_ = suite.createTestTransaction(models.Transaction{
			UserID: userID,
			Date:   base.AddDate(0, 0, day),
			Amount: decimal.NewFromInt(int64(day + 1)),
			Kind:   models.TransactionExpense,
		})
	}

	transactions, err := models.TransactionsBetween(userID, time.Time{}, time.Time{}, "")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), transactions, 3)

	for i := 1; i < len(transactions); i++ {
		assert.False(suite.T(), transactions[i].Date.After(transactions[i-1].Date),
			"transactions must be ordered by date descending")
	}
}

func (suite *TestSuiteStandard) TestTransactionsBetweenCategoryGlob() {
	userID := uuid.New()

	for _, category := range []string{"groceries", "groceries/market", "transport", ""} {
		_ = suite.createTestTransaction(models.Transaction{
			UserID:   userID,
			Date:     time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			Amount:   decimal.NewFromInt(10),
			Kind:     models.TransactionExpense,
			Category: category,
		})
	}

	matched, err := models.TransactionsBetween(userID, time.Time{}, time.Time{}, "groceries*")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), matched, 2)

	all, err := models.TransactionsBetween(userID, time.Time{}, time.Time{}, "")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 4)
}
