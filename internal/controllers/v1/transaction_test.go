package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	v1 "github.com/spendsense/backend/internal/controllers/v1"
	"github.com/spendsense/backend/internal/models"
	"github.com/spendsense/backend/test"
)

func (suite *TestSuiteStandard) TestTransactionCreateAndGet() {
	userID := uuid.New()

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		UserID:   userID,
		Date:     time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.RequireFromString("47.32"),
		Kind:     models.TransactionExpense,
		Category: "groceries",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Assert().True(created.Data.Amount.Equal(decimal.RequireFromString("47.32")))

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestTransactionCreateRejectsNegativeAmount() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		UserID: uuid.New(),
		Amount: decimal.NewFromInt(-10),
		Kind:   models.TransactionExpense,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("transaction amounts must not be negative", response.Error)
}

func (suite *TestSuiteStandard) TestTransactionListWithGlobFilter() {
	userID := uuid.New()
	day := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	for _, category := range []string{"groceries", "groceries-organic", "transport", ""} {
		suite.createTestTransaction(models.Transaction{
			UserID:   userID,
			Date:     day,
			Amount:   decimal.NewFromInt(10),
			Kind:     models.TransactionExpense,
			Category: category,
		})
	}

	recorder := test.Request(suite.T(), http.MethodGet,
		fmt.Sprintf("/v1/transactions?user=%s&category=groceries*", userID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Len(list.Data, 2)
}

func (suite *TestSuiteStandard) TestTransactionListOrderedNewestFirst() {
	userID := uuid.New()

	for _, day := range []time.Time{
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	} {
		suite.createTestTransaction(models.Transaction{
			UserID: userID,
			Date:   day,
			Amount: decimal.NewFromInt(10),
			Kind:   models.TransactionExpense,
		})
	}

	recorder := test.Request(suite.T(), http.MethodGet,
		fmt.Sprintf("/v1/transactions?user=%s", userID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 3)
	suite.Assert().Equal(time.April, list.Data[0].Date.Month())
	suite.Assert().Equal(time.February, list.Data[2].Date.Month())
}

func (suite *TestSuiteStandard) TestTransactionInvalidUUID() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
