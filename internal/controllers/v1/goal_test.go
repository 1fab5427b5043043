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

func (suite *TestSuiteStandard) TestGoalLifecycle() {
	userID := uuid.New()

	// Create
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/goals", v1.GoalEditable{
		UserID:       userID,
		Name:         "Emergency fund",
		TargetAmount: decimal.NewFromInt(10000),
		TargetDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.GoalResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	suite.Assert().Equal(models.GoalStatusActive, created.Data.Status)
	suite.Assert().True(created.Data.CurrentAmount.IsZero())
	suite.Assert().True(created.Data.ProgressPercentage.IsZero())

	goalURL := fmt.Sprintf("/v1/goals/%s", created.Data.ID)

	// First contribution
	recorder = test.Request(suite.T(), http.MethodPost, goalURL+"/progress", `{"amount": "2000"}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.GoalResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().Equal(models.GoalStatusActive, updated.Data.Status)
	suite.Assert().True(updated.Data.CurrentAmount.Equal(decimal.NewFromInt(2000)))
	suite.Assert().True(updated.Data.ProgressPercentage.Equal(decimal.NewFromInt(20)))

	// Reaching the target completes the goal
	recorder = test.Request(suite.T(), http.MethodPost, goalURL+"/progress", `{"amount": "8000"}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().Equal(models.GoalStatusCompleted, updated.Data.Status)
	suite.Assert().True(updated.Data.ProgressPercentage.Equal(decimal.NewFromInt(100)))

	// Completion is monotonic, overshoot accumulates
	recorder = test.Request(suite.T(), http.MethodPost, goalURL+"/progress", `{"amount": "5000"}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().Equal(models.GoalStatusCompleted, updated.Data.Status)
	suite.Assert().True(updated.Data.CurrentAmount.Equal(decimal.NewFromInt(15000)))
	suite.Assert().True(updated.Data.ProgressPercentage.Equal(decimal.NewFromInt(150)))

	// Updates replace descriptive fields, never the accumulated state
	recorder = test.Request(suite.T(), http.MethodPatch, goalURL, models.GoalUpdate{
		Name:         "Bigger emergency fund",
		TargetAmount: decimal.NewFromInt(20000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().Equal("Bigger emergency fund", updated.Data.Name)
	suite.Assert().True(updated.Data.CurrentAmount.Equal(decimal.NewFromInt(15000)))
	suite.Assert().Equal(models.GoalStatusCompleted, updated.Data.Status)

	// Delete, then verify the goal is gone from the listing but still
	// readable
	recorder = test.Request(suite.T(), http.MethodDelete, goalURL, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/goals?user=%s", userID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.GoalListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Empty(list.Data)

	recorder = test.Request(suite.T(), http.MethodGet, goalURL, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().Equal(models.GoalStatusDeleted, updated.Data.Status)

	// Deleted goals reject all further mutation
	recorder = test.Request(suite.T(), http.MethodPost, goalURL+"/progress", `{"amount": "100"}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)

	recorder = test.Request(suite.T(), http.MethodPatch, goalURL, models.GoalUpdate{Name: "x", TargetAmount: decimal.NewFromInt(1)})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestGoalProgressRejectsNonPositiveAmounts() {
	goal := models.Goal{
		UserID:       uuid.New(),
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(3000),
	}
	suite.Require().Nil(models.DB.Create(&goal).Error)

	for _, amount := range []string{"0", "-50"} {
		recorder := test.Request(suite.T(), http.MethodPost,
			fmt.Sprintf("/v1/goals/%s/progress", goal.ID),
			fmt.Sprintf(`{"amount": "%s"}`, amount))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

		var response struct {
			Error string `json:"error"`
		}
		test.DecodeResponse(suite.T(), &recorder, &response)
		suite.Assert().Equal("progress amount must be greater than 0", response.Error)
	}
}

func (suite *TestSuiteStandard) TestGoalListExcludesOtherUsers() {
	userID := uuid.New()

	for _, g := range []models.Goal{
		{UserID: userID, Name: "Mine", TargetAmount: decimal.NewFromInt(100)},
		{UserID: uuid.New(), Name: "Theirs", TargetAmount: decimal.NewFromInt(100)},
	} {
		suite.Require().Nil(models.DB.Create(&g).Error)
	}

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/goals?user=%s", userID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.GoalListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal("Mine", list.Data[0].Name)
}

func (suite *TestSuiteStandard) TestGoalGetNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/goals/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGoalListRequiresUser() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/goals", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
