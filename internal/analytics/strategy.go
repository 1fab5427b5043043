package analytics

import "fmt"

// Strategy is an aggregation depth chosen from the dataset size alone.
type Strategy string

const (
	StrategyRawData            Strategy = "RAW_DATA"
	StrategyIntelligentSummary Strategy = "INTELLIGENT_SUMMARY"
	StrategyChunkedProcessing  Strategy = "CHUNKED_PROCESSING"
)

// Recommendation reports why a strategy was selected together with cost
// estimates. It is telemetry for callers, the estimates never gate any
// computation in this engine.
type Recommendation struct {
	Strategy              Strategy `json:"recommendedStrategy"`
	TransactionCount      int64    `json:"transactionCount"`
	Reasoning             string   `json:"reasoning"`
	EstimatedTokens       int64    `json:"estimatedTokens"`
	EstimatedResponseTime string   `json:"estimatedResponseTime"`
	CostEfficiency        string   `json:"costEfficiency"`
}

// SelectStrategy picks the aggregation strategy for a dataset of the
// given size. It is a pure function of the count so callers can decide
// in O(1) without loading any transaction rows.
//
// CHUNKED_PROCESSING currently degrades to the same summary computation
// as INTELLIGENT_SUMMARY; the strategies still differ in their reported
// estimates.
func SelectStrategy(transactionCount int64) Strategy {
	switch {
	case transactionCount < rawDataMaxCount:
		return StrategyRawData
	case transactionCount < summaryMaxCount:
		return StrategyIntelligentSummary
	default:
		return StrategyChunkedProcessing
	}
}

// Recommend selects a strategy and explains the choice.
func Recommend(transactionCount int64) Recommendation {
	strategy := SelectStrategy(transactionCount)

	r := Recommendation{
		Strategy:         strategy,
		TransactionCount: transactionCount,
	}

	switch strategy {
	case StrategyRawData:
		r.Reasoning = fmt.Sprintf("Dataset is small (%d transactions), raw data analysis provides maximum detail", transactionCount)
		r.EstimatedTokens = transactionCount * 20
		r.EstimatedResponseTime = "2-5 seconds"
		r.CostEfficiency = "High (detailed analysis)"
	case StrategyIntelligentSummary:
		r.Reasoning = fmt.Sprintf("Dataset is medium-sized (%d transactions), summary analysis balances detail and performance", transactionCount)
		r.EstimatedTokens = 200
		r.EstimatedResponseTime = "1-3 seconds"
		r.CostEfficiency = "Very High (optimized)"
	case StrategyChunkedProcessing:
		r.Reasoning = fmt.Sprintf("Dataset is large (%d transactions), chunked processing ensures complete analysis without token limits", transactionCount)
		r.EstimatedTokens = 500
		r.EstimatedResponseTime = "5-15 seconds"
		r.CostEfficiency = "Medium (comprehensive)"
	}

	return r
}
