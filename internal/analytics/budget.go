package analytics

import "github.com/shopspring/decimal"

// BudgetStatus classifies spending against a budget.
type BudgetStatus string

const (
	BudgetStatusUnder   BudgetStatus = "UNDER_BUDGET"
	BudgetStatusAtLimit BudgetStatus = "AT_LIMIT"
	BudgetStatusOver    BudgetStatus = "OVER_BUDGET"
)

// BudgetClassification is the derived state of a budget.
type BudgetClassification struct {
	Status             BudgetStatus    `json:"status"`
	RemainingBudget    decimal.Decimal `json:"remainingBudget"`
	SpendingPercentage decimal.Decimal `json:"spendingPercentage"`
}

var (
	underBudgetMax = decimal.NewFromInt(underBudgetMaxPercent)
	overBudgetMin  = decimal.NewFromInt(overBudgetMinPercent)
)

// ClassifyBudget derives status, remaining amount and spending
// percentage from a budget's totals.
//
// The percentage is 0 when the total budget is zero, never a fault. A
// spending percentage of exactly 95 is still UNDER_BUDGET and exactly
// 105 is already OVER_BUDGET; everything strictly between is AT_LIMIT.
// The remaining budget may be negative.
func ClassifyBudget(totalBudget, actualSpending decimal.Decimal) BudgetClassification {
	percentage := percentOf(actualSpending, totalBudget)

	status := BudgetStatusAtLimit
	switch {
	case percentage.LessThanOrEqual(underBudgetMax):
		status = BudgetStatusUnder
	case percentage.GreaterThanOrEqual(overBudgetMin):
		status = BudgetStatusOver
	}

	return BudgetClassification{
		Status:             status,
		RemainingBudget:    totalBudget.Sub(actualSpending),
		SpendingPercentage: percentage,
	}
}
