package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendsense/backend/internal/models"
)

// WeekdayPattern is the expense aggregate for one day of the week.
type WeekdayPattern struct {
	Weekday          string          `json:"dayOfWeek"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	AverageSpent     decimal.Decimal `json:"averageSpent"`
	TransactionCount int             `json:"transactionCount"`
}

// SpendingPatterns holds the anomaly report and the supporting views
// derived from the same dataset.
type SpendingPatterns struct {
	TopTransactions  []models.Transaction `json:"topTransactions"`
	WeekdayPatterns  []WeekdayPattern     `json:"spendingPatterns"`
	Anomalies        []models.Transaction `json:"anomalies"`
	AverageAmount    decimal.Decimal      `json:"averageTransactionAmount"`
	AnomalyThreshold decimal.Decimal      `json:"anomalyThreshold"`
}

// AnalyzePatterns flags transactions whose amount exceeds twice the
// average expense amount and derives the top-transaction and weekday
// views.
//
// Only EXPENSE transactions are considered. With no expenses both the
// average and the threshold are zero; since amounts are non-negative
// and the anomaly check is strictly greater than the threshold, nothing
// is flagged in that case.
//
// topLimit caps TopTransactions; a value <= 0 applies the default of 10.
func AnalyzePatterns(transactions []models.Transaction, topLimit int) SpendingPatterns {
	if topLimit <= 0 {
		topLimit = DefaultTopTransactionLimit
	}

	patterns := SpendingPatterns{
		TopTransactions:  []models.Transaction{},
		WeekdayPatterns:  []WeekdayPattern{},
		Anomalies:        []models.Transaction{},
		AverageAmount:    decimal.Zero,
		AnomalyThreshold: decimal.Zero,
	}

	expenses := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.IsExpense() {
			expenses = append(expenses, t)
		}
	}

	if len(expenses) == 0 {
		return patterns
	}

	sum := decimal.Zero
	for _, t := range expenses {
		sum = sum.Add(t.Amount)
	}
	patterns.AverageAmount = sum.DivRound(decimal.NewFromInt(int64(len(expenses))), 2)
	patterns.AnomalyThreshold = patterns.AverageAmount.Mul(decimal.NewFromInt(anomalyFactor))

	for _, t := range expenses {
		if t.Amount.GreaterThan(patterns.AnomalyThreshold) {
			patterns.Anomalies = append(patterns.Anomalies, t)
		}
	}

	patterns.TopTransactions = topTransactions(expenses, topLimit)
	patterns.WeekdayPatterns = weekdayPatterns(expenses)

	return patterns
}

// topTransactions returns the largest expenses, ties keeping their
// original order.
func topTransactions(expenses []models.Transaction, limit int) []models.Transaction {
	top := make([]models.Transaction, len(expenses))
	copy(top, expenses)

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Amount.GreaterThan(top[j].Amount)
	})

	if limit < len(top) {
		top = top[:limit]
	}

	return top
}

// weekdayPatterns sums and averages expenses per day of the week,
// largest total first. Ties on the total are broken by calendar weekday
// order to keep the output deterministic.
func weekdayPatterns(expenses []models.Transaction) []WeekdayPattern {
	type group struct {
		total decimal.Decimal
		count int
	}

	groups := make(map[time.Weekday]*group)
	for _, t := range expenses {
		day := t.Date.Weekday()
		g, ok := groups[day]
		if !ok {
			g = &group{total: decimal.Zero}
			groups[day] = g
		}
		g.total = g.total.Add(t.Amount)
		g.count++
	}

	days := make([]time.Weekday, 0, len(groups))
	for day := range groups {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		a, b := groups[days[i]], groups[days[j]]
		if !a.total.Equal(b.total) {
			return a.total.GreaterThan(b.total)
		}
		return days[i] < days[j]
	})

	patterns := make([]WeekdayPattern, 0, len(days))
	for _, day := range days {
		g := groups[day]
		patterns = append(patterns, WeekdayPattern{
			Weekday:          day.String(),
			TotalSpent:       g.total,
			AverageSpent:     g.total.DivRound(decimal.NewFromInt(int64(g.count)), 2),
			TransactionCount: g.count,
		})
	}

	return patterns
}
