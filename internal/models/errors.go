package models

import "errors"

// The two error kinds of the engine. Every validation error wraps one
// of them so callers can branch with errors.Is while the message stays
// specific to the violated constraint.
var (
	// ErrInvalidArgument marks out-of-range or malformed values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState marks mutations that the entity's lifecycle
	// forbids.
	ErrInvalidState = errors.New("invalid state")
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Transaction errors
var (
	ErrTransactionAmountNegative = invalidArgument("transaction amounts must not be negative")
	ErrTransactionKindInvalid    = invalidArgument("the specified transaction kind is invalid")
	ErrTransactionUserRequired   = invalidArgument("the transaction must reference a user")
)

// Budget errors
var (
	ErrBudgetAmountTooSmall  = invalidArgument("budget amount must be at least 0.01")
	ErrBudgetAmountTooLarge  = invalidArgument("budget amount cannot exceed 999999.99")
	ErrSpendingNegative      = invalidArgument("spending amount cannot be negative")
	ErrSpendingTooLarge      = invalidArgument("spending amount cannot exceed 999999.99")
	ErrNotesTooLong          = invalidArgument("notes cannot exceed 1000 characters")
	ErrBudgetMonthOutOfRange = invalidArgument("budgets can only be created for months within one year of the current month")
	ErrBudgetUserRequired    = invalidArgument("the budget must reference a user")
	ErrBudgetMonthNotUnique  = invalidArgument("a budget already exists for this user and month")
)

// BudgetCategory errors
var (
	ErrBudgetCategoryExceedsTotal = invalidArgument("category budget amount cannot exceed the total budget amount")
	ErrBudgetPercentageOutOfRange = invalidArgument("budget percentage must be between 0 and 100")
	ErrBudgetCategoryNotUnique    = invalidArgument("this category is already assigned to the budget")
)

// Goal errors
var (
	ErrGoalTargetNotPositive   = invalidArgument("goal target amount must be greater than 0")
	ErrGoalProgressNotPositive = invalidArgument("progress amount must be greater than 0")
	ErrGoalStatusInvalid       = invalidArgument("the specified goal status is invalid")
	ErrGoalUserRequired        = invalidArgument("the goal must reference a user")
	ErrGoalDeleted             = invalidState("cannot update a deleted goal")
	ErrGoalDeletedProgress     = invalidState("cannot update progress on a deleted goal")
)

// kindError carries a specific message while matching its kind in
// errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e kindError) Error() string { return e.msg }
func (e kindError) Unwrap() error { return e.kind }

func invalidArgument(msg string) error {
	return kindError{kind: ErrInvalidArgument, msg: msg}
}

func invalidState(msg string) error {
	return kindError{kind: ErrInvalidState, msg: msg}
}
