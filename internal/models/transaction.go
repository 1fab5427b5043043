package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind distinguishes what a transaction does with money.
type TransactionKind string

const (
	TransactionExpense  TransactionKind = "EXPENSE"
	TransactionIncome   TransactionKind = "INCOME"
	TransactionTransfer TransactionKind = "TRANSFER"
)

// Valid reports whether the kind is one of the known values.
func (k TransactionKind) Valid() bool {
	return k == TransactionExpense || k == TransactionIncome || k == TransactionTransfer
}

// Transaction is a single financial movement of a user.
//
// Transactions are immutable once created; the engine only reads them.
type Transaction struct {
	DefaultModel
	UserID   uuid.UUID       `json:"userId" gorm:"index"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Kind     TransactionKind `json:"kind" gorm:"index"`
	Category string          `json:"categoryName,omitempty"` // empty means uncategorized
	Note     string          `json:"note,omitempty"`
}

func (t Transaction) IsExpense() bool  { return t.Kind == TransactionExpense }
func (t Transaction) IsIncome() bool   { return t.Kind == TransactionIncome }
func (t Transaction) IsTransfer() bool { return t.Kind == TransactionTransfer }

// BeforeSave normalizes the date to a UTC calendar date and validates
// the value constraints.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	}
	t.Date = t.Date.In(time.UTC).Truncate(24 * time.Hour)
	t.Category = strings.TrimSpace(t.Category)
	t.Note = strings.TrimSpace(t.Note)

	if t.UserID == uuid.Nil {
		return ErrTransactionUserRequired
	}

	if t.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	if !t.Kind.Valid() {
		return ErrTransactionKindInvalid
	}

	return nil
}

// AfterFind sets the timezone for the date to UTC.
func (t *Transaction) AfterFind(_ *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// CountTransactions returns the number of transactions of a user in the
// date range. It issues a COUNT query, the rows are never loaded; the
// strategy selector depends on this staying cheap for any dataset size.
//
// Zero from/to values leave the respective bound open.
func CountTransactions(userID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := rangeQuery(userID, from, to).Count(&count).Error
	return count, err
}

// TransactionsBetween returns the transactions of a user in the date
// range, ordered by date descending.
//
// categoryGlob optionally filters by category name with glob matching,
// e.g. "groceries*". The empty pattern matches everything.
func TransactionsBetween(userID uuid.UUID, from, to time.Time, categoryGlob string) ([]Transaction, error) {
	var transactions []Transaction
	err := rangeQuery(userID, from, to).
		Order("date DESC, created_at DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	if categoryGlob == "" {
		return transactions, nil
	}

	matched := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if glob.Glob(categoryGlob, t.Category) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func rangeQuery(userID uuid.UUID, from, to time.Time) *gorm.DB {
	q := DB.Model(&Transaction{}).Where("user_id = ?", userID)

	if !from.IsZero() {
		q = q.Where("date(date) >= date(?)", from.In(time.UTC))
	}
	if !to.IsZero() {
		q = q.Where("date(date) <= date(?)", to.In(time.UTC))
	}

	return q
}
