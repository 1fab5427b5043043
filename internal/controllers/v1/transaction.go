package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendsense/backend/internal/httputil"
	"github.com/spendsense/backend/internal/models"
)

func RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
	}
}

// TransactionEditable are the fields settable on creation. Transactions
// are immutable afterwards, the analytics read them as recorded.
type TransactionEditable struct {
	UserID   uuid.UUID              `json:"userId" example:"d130cbb0-4c1e-4c2c-a03b-8a3c31f82063"`
	Date     time.Time              `json:"date" example:"2026-04-10T00:00:00Z"`
	Amount   decimal.Decimal        `json:"amount" example:"47.32"`
	Kind     models.TransactionKind `json:"kind" example:"EXPENSE"`
	Category string                 `json:"categoryName" example:"groceries"`
	Note     string                 `json:"note"`
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		UserID:   editable.UserID,
		Date:     editable.Date,
		Amount:   editable.Amount,
		Kind:     editable.Kind,
		Category: editable.Category,
		Note:     editable.Note,
	}
}

type TransactionResponse struct {
	Data models.Transaction `json:"data"`
}

type TransactionListResponse struct {
	Data []models.Transaction `json:"data"`
}

func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsGet(c)
}

func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	transaction := editable.model()
	if err := models.DB.Create(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: transaction})
}

// GetTransactions lists a user's transactions in a date range, newest
// first. The category parameter filters with glob matching, e.g.
// "groceries*".
func GetTransactions(c *gin.Context) {
	var query struct {
		rangeQuery
		Category string `form:"category"` // Category name filter, glob syntax
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if query.UserID.UUID == uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errUserParameterRequired.Error()})
		return
	}

	transactions, err := models.TransactionsBetween(query.UserID.UUID, query.From, query.To, query.Category)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

func GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: transaction})
}
