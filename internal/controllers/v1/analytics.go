package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spendsense/backend/internal/analytics"
	"github.com/spendsense/backend/internal/cache"
	"github.com/spendsense/backend/internal/httputil"
	"github.com/spendsense/backend/internal/models"
)

// SummaryCache holds the optional Redis cache for computed summaries.
// It is set once at startup; the nil default disables caching.
var SummaryCache *cache.Cache

func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/summary", OptionsAnalyticsGet)
		r.GET("/summary", GetAnalyticsSummary)
	}
	{
		r.OPTIONS("/patterns", OptionsAnalyticsGet)
		r.GET("/patterns", GetSpendingPatterns)
	}
	{
		r.OPTIONS("/strategy", OptionsAnalyticsGet)
		r.GET("/strategy", GetStrategyRecommendation)
	}
	{
		r.OPTIONS("/chunks", OptionsAnalyticsGet)
		r.GET("/chunks", GetTransactionChunks)
	}
}

func OptionsAnalyticsGet(c *gin.Context) {
	httputil.OptionsGet(c)
}

type analyticsQuery struct {
	rangeQuery
	Granularity string `form:"granularity" example:"monthly"` // Period granularity: daily, weekly or monthly
}

// SummaryData is the aggregation result plus the strategy that was
// selected for the dataset size.
type SummaryData struct {
	analytics.Summary
	Strategy analytics.Strategy `json:"strategy" example:"INTELLIGENT_SUMMARY"`
}

type SummaryResponse struct {
	Data SummaryData `json:"data"`
}

// GetAnalyticsSummary aggregates a user's transactions in the range.
//
// The strategy is selected from a COUNT query before any rows are
// loaded and reported in the response. CHUNKED_PROCESSING currently
// computes the same summary as INTELLIGENT_SUMMARY; clients needing the
// raw rows page through /analytics/chunks instead.
func GetAnalyticsSummary(c *gin.Context) {
	query, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}

	granularity := analytics.Granularity(query.Granularity)
	if query.Granularity == "" {
		granularity = analytics.GranularityMonthly
	}

	count, err := models.CountTransactions(query.UserID.UUID, query.From, query.To)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}
	strategy := analytics.SelectStrategy(count)

	key := cache.SummaryKey(query.UserID.UUID.String(), dateParam(query.From), dateParam(query.To), string(granularity))
	if data, hit := SummaryCache.GetSummary(c.Request.Context(), key); hit {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	transactions, err := models.TransactionsBetween(query.UserID.UUID, query.From, query.To, "")
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	response := SummaryResponse{
		Data: SummaryData{
			Summary:  analytics.Summarize(transactions, granularity),
			Strategy: strategy,
		},
	}

	body, err := json.Marshal(response)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
		return
	}

	SummaryCache.PutSummary(c.Request.Context(), key, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

type PatternsResponse struct {
	Data analytics.SpendingPatterns `json:"data"`
}

// GetSpendingPatterns reports anomalies, top transactions and weekday
// aggregates for a user's expenses in the range.
func GetSpendingPatterns(c *gin.Context) {
	var query struct {
		rangeQuery
		Limit int `form:"limit" example:"10"` // Cap for the top transactions list
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if query.UserID.UUID == uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errUserParameterRequired.Error()})
		return
	}

	transactions, err := models.TransactionsBetween(query.UserID.UUID, query.From, query.To, "")
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, PatternsResponse{
		Data: analytics.AnalyzePatterns(transactions, query.Limit),
	})
}

type RecommendationResponse struct {
	Data analytics.Recommendation `json:"data"`
}

// GetStrategyRecommendation explains which strategy the summary
// endpoint would pick for the range, without computing anything.
func GetStrategyRecommendation(c *gin.Context) {
	query, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}

	count, err := models.CountTransactions(query.UserID.UUID, query.From, query.To)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, RecommendationResponse{Data: analytics.Recommend(count)})
}

const defaultChunkSize = 500

// ChunkData is one page of raw transactions for chunked processing.
type ChunkData struct {
	Transactions      []models.Transaction `json:"transactions"`
	ChunkIndex        int                  `json:"chunkIndex" example:"0"`
	ChunkSize         int                  `json:"chunkSize" example:"500"`
	TotalTransactions int                  `json:"totalTransactions" example:"1421"`
	TotalChunks       int                  `json:"totalChunks" example:"3"`
	HasMoreChunks     bool                 `json:"hasMoreChunks" example:"true"`
}

type ChunkResponse struct {
	Data ChunkData `json:"data"`
}

// GetTransactionChunks pages through a user's raw transactions in
// fixed-size chunks, newest first. An index past the last chunk returns
// an empty page, not an error.
func GetTransactionChunks(c *gin.Context) {
	var query struct {
		rangeQuery
		ChunkSize  int `form:"chunkSize" example:"500"`
		ChunkIndex int `form:"chunkIndex" example:"0"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if query.UserID.UUID == uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errUserParameterRequired.Error()})
		return
	}

	if query.ChunkSize == 0 {
		query.ChunkSize = defaultChunkSize
	}
	if query.ChunkSize < 0 {
		c.JSON(http.StatusBadRequest, httpError{Error: errChunkSizeInvalid.Error()})
		return
	}
	if query.ChunkIndex < 0 {
		c.JSON(http.StatusBadRequest, httpError{Error: errChunkIndexInvalid.Error()})
		return
	}

	transactions, err := models.TransactionsBetween(query.UserID.UUID, query.From, query.To, "")
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	total := len(transactions)

	// The chunk size and index are caller-controlled and may be
	// arbitrarily large; all index math below is guarded so that
	// products and sums near the int range cannot wrap around.
	totalChunks := 0
	if total > 0 {
		if query.ChunkSize >= total {
			totalChunks = 1
		} else {
			totalChunks = (total + query.ChunkSize - 1) / query.ChunkSize
		}
	}

	// An index at or past the last chunk yields the empty tail. For any
	// index inside the range, start < total, so the product cannot
	// overflow.
	start := total
	if query.ChunkIndex < totalChunks {
		start = query.ChunkIndex * query.ChunkSize
	}
	end := start + query.ChunkSize
	if end > total || end < start {
		end = total
	}

	c.JSON(http.StatusOK, ChunkResponse{
		Data: ChunkData{
			Transactions:      transactions[start:end],
			ChunkIndex:        query.ChunkIndex,
			ChunkSize:         query.ChunkSize,
			TotalTransactions: total,
			TotalChunks:       totalChunks,
			HasMoreChunks:     end < total,
		},
	})
}

func bindAnalyticsQuery(c *gin.Context) (analyticsQuery, bool) {
	var query analyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return query, false
	}

	if query.UserID.UUID == uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errUserParameterRequired.Error()})
		return query, false
	}

	return query, true
}

// dateParam formats a range bound for the cache key; an open bound is
// the empty string.
func dateParam(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
