package analytics

// All numeric decision thresholds of the engine live here so that the
// classifier, the strategy selector and the anomaly detector cannot
// drift apart.
const (
	// Budget classification band boundaries in percent of the total
	// budget. Both boundaries are inclusive to their outer band.
	underBudgetMaxPercent = 95
	overBudgetMinPercent  = 105

	// Strategy selection thresholds on the transaction count. The
	// boundary count belongs to the next tier.
	rawDataMaxCount = 100
	summaryMaxCount = 1000

	// The anomaly threshold is this multiple of the average expense
	// amount.
	anomalyFactor = 2

	// DefaultTopTransactionLimit caps the top-transactions list when the
	// caller does not request a limit.
	DefaultTopTransactionLimit = 10

	// DefaultTopCategoryLimit caps the top-categories view of a summary.
	DefaultTopCategoryLimit = 10
)
