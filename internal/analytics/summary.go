package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spendsense/backend/internal/models"
)

// Uncategorized is the category bucket for expenses without a category.
// They are reported explicitly, never merged into another bucket or
// dropped.
const Uncategorized = "uncategorized"

var hundred = decimal.NewFromInt(100)

// CategoryAmount is the aggregate for one expense category.
type CategoryAmount struct {
	Category          string          `json:"categoryName"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	PercentageOfSpend decimal.Decimal `json:"percentageOfSpend"`
	TransactionCount  int             `json:"transactionCount"`
}

// PeriodAmount is the expense total for one period bucket.
type PeriodAmount struct {
	Period string          `json:"period"`
	Amount decimal.Decimal `json:"amount"`
}

// Trend directions.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Trend is the spending delta between a period and its predecessor.
type Trend struct {
	Period           string          `json:"period"`
	Amount           decimal.Decimal `json:"amount"`
	Change           decimal.Decimal `json:"change"`
	ChangePercentage decimal.Decimal `json:"changePercentage"`
	Direction        string          `json:"direction"`
}

// Summary is the full aggregation result for a transaction list.
//
// Every field is always present. Empty inputs produce zero totals and
// empty, non-nil slices so that consumers never need nil checks.
type Summary struct {
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	NetAmount         decimal.Decimal `json:"netAmount"`
	TransactionCount  int             `json:"transactionCount"`
	CategoryBreakdown []CategoryAmount `json:"categoryBreakdown"`
	PeriodBreakdown   []PeriodAmount   `json:"periodBreakdown"`
	Trends            []Trend          `json:"spendingTrends"`

	// AveragePerTransaction divides the total spent by the transaction
	// count, not by elapsed calendar days.
	AveragePerTransaction decimal.Decimal `json:"averagePerTransaction"`
}

// TopCategories returns a copy of the largest categories, truncated to
// the limit. The underlying breakdown is not modified. A limit <= 0
// applies the default.
func (s Summary) TopCategories(limit int) []CategoryAmount {
	if limit <= 0 {
		limit = DefaultTopCategoryLimit
	}
	if limit > len(s.CategoryBreakdown) {
		limit = len(s.CategoryBreakdown)
	}

	top := make([]CategoryAmount, limit)
	copy(top, s.CategoryBreakdown[:limit])
	return top
}

// Summarize folds a transaction list into totals, category and period
// breakdowns and month-over-month trends.
//
// TRANSFER transactions count towards TransactionCount but are excluded
// from both the spent and the income totals.
func Summarize(transactions []models.Transaction, granularity Granularity) Summary {
	summary := Summary{
		TotalSpent:            decimal.Zero,
		TotalIncome:           decimal.Zero,
		NetAmount:             decimal.Zero,
		TransactionCount:      len(transactions),
		CategoryBreakdown:     []CategoryAmount{},
		PeriodBreakdown:       []PeriodAmount{},
		Trends:                []Trend{},
		AveragePerTransaction: decimal.Zero,
	}

	type categoryGroup struct {
		total decimal.Decimal
		count int
	}

	categories := make(map[string]*categoryGroup)
	periods := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		switch {
		case t.IsExpense():
			summary.TotalSpent = summary.TotalSpent.Add(t.Amount)

			name := t.Category
			if name == "" {
				name = Uncategorized
			}
			group, ok := categories[name]
			if !ok {
				group = &categoryGroup{total: decimal.Zero}
				categories[name] = group
			}
			group.total = group.total.Add(t.Amount)
			group.count++

			key := PeriodKey(t.Date, granularity)
			periods[key] = periods[key].Add(t.Amount)
		case t.IsIncome():
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		}
	}

	summary.NetAmount = summary.TotalIncome.Sub(summary.TotalSpent)

	for name, group := range categories {
		summary.CategoryBreakdown = append(summary.CategoryBreakdown, CategoryAmount{
			Category:          name,
			TotalAmount:       group.total,
			PercentageOfSpend: percentOf(group.total, summary.TotalSpent),
			TransactionCount:  group.count,
		})
	}

	// Largest category first, ties broken by name so the order is
	// deterministic.
	sort.Slice(summary.CategoryBreakdown, func(i, j int) bool {
		a, b := summary.CategoryBreakdown[i], summary.CategoryBreakdown[j]
		if !a.TotalAmount.Equal(b.TotalAmount) {
			return a.TotalAmount.GreaterThan(b.TotalAmount)
		}
		return a.Category < b.Category
	})

	for key, amount := range periods {
		summary.PeriodBreakdown = append(summary.PeriodBreakdown, PeriodAmount{
			Period: key,
			Amount: amount,
		})
	}

	sort.Slice(summary.PeriodBreakdown, func(i, j int) bool {
		return summary.PeriodBreakdown[i].Period < summary.PeriodBreakdown[j].Period
	})

	summary.Trends = trends(summary.PeriodBreakdown)

	if len(transactions) > 0 {
		summary.AveragePerTransaction = summary.TotalSpent.
			DivRound(decimal.NewFromInt(int64(len(transactions))), 2)
	}

	return summary
}

// trends computes one record per consecutive period pair. Fewer than
// two periods produce no records.
func trends(periods []PeriodAmount) []Trend {
	result := []Trend{}

	for i := 1; i < len(periods); i++ {
		current, previous := periods[i], periods[i-1]
		change := current.Amount.Sub(previous.Amount)

		direction := TrendStable
		switch change.Sign() {
		case 1:
			direction = TrendIncreasing
		case -1:
			direction = TrendDecreasing
		}

		result = append(result, Trend{
			Period:           current.Period,
			Amount:           current.Amount,
			Change:           change,
			ChangePercentage: percentOf(change, previous.Amount),
			Direction:        direction,
		})
	}

	return result
}

// percentOf returns part/whole*100 with the quotient rounded half-up to
// four fractional digits. A zero whole yields zero, not an error.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}

	return part.DivRound(whole, 4).Mul(hundred)
}
