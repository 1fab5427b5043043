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

func RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsGoalList)
		r.GET("", GetGoals)
		r.POST("", CreateGoal)
	}
	{
		r.OPTIONS("/:id", OptionsGoalDetail)
		r.GET("/:id", GetGoal)
		r.PATCH("/:id", UpdateGoal)
		r.DELETE("/:id", DeleteGoal)
	}
	{
		r.OPTIONS("/:id/progress", OptionsGoalProgress)
		r.POST("/:id/progress", RecordGoalProgress)
	}
}

type GoalEditable struct {
	UserID       uuid.UUID       `json:"userId" example:"d130cbb0-4c1e-4c2c-a03b-8a3c31f82063"`
	Name         string          `json:"name" example:"Emergency fund"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount" example:"10000"`
	Type         string          `json:"goalType" example:"SAVINGS"`
	StartDate    time.Time       `json:"startDate"`
	TargetDate   time.Time       `json:"targetDate"`
}

func (editable GoalEditable) model() models.Goal {
	return models.Goal{
		UserID:       editable.UserID,
		Name:         editable.Name,
		Description:  editable.Description,
		TargetAmount: editable.TargetAmount,
		Type:         editable.Type,
		StartDate:    editable.StartDate,
		TargetDate:   editable.TargetDate,
	}
}

// Goal is the API representation: the stored resource plus its derived
// progress percentage, which is uncapped on overshoot.
type Goal struct {
	models.Goal
	ProgressPercentage decimal.Decimal `json:"progressPercentage" example:"33.33"`
}

func newGoal(model models.Goal) Goal {
	return Goal{
		Goal:               model,
		ProgressPercentage: model.ProgressPercentage(),
	}
}

type GoalResponse struct {
	Data Goal `json:"data"`
}

type GoalListResponse struct {
	Data []Goal `json:"data"`
}

func OptionsGoalList(c *gin.Context)     { httputil.OptionsGetPost(c) }
func OptionsGoalDetail(c *gin.Context)   { httputil.OptionsGetPatchDelete(c) }
func OptionsGoalProgress(c *gin.Context) { httputil.OptionsPost(c) }

func CreateGoal(c *gin.Context) {
	var editable GoalEditable

	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	goal := editable.model()
	if err := models.DB.Create(&goal).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, GoalResponse{Data: newGoal(goal)})
}

// GetGoals lists a user's goals. Deleted goals are excluded, completed
// ones are not.
func GetGoals(c *gin.Context) {
	var query userQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if query.UserID.UUID == uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errUserParameterRequired.Error()})
		return
	}

	goals, err := models.ActiveGoals(query.UserID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Goal, 0, len(goals))
	for _, goal := range goals {
		data = append(data, newGoal(goal))
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: data})
}

func GetGoal(c *gin.Context) {
	goal, err := fetchGoal(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: newGoal(goal)})
}

func UpdateGoal(c *gin.Context) {
	goal, err := fetchGoal(c)
	if err != nil {
		return
	}

	var update models.GoalUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if err := goal.ApplyUpdate(update); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Save(&goal).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: newGoal(goal)})
}

// RecordGoalProgress adds a contribution to the goal. Reaching the
// target completes the goal; a completed goal accepts further
// contributions without reverting.
func RecordGoalProgress(c *gin.Context) {
	goal, err := fetchGoal(c)
	if err != nil {
		return
	}

	var body struct {
		Amount decimal.Decimal `json:"amount" example:"250"`
	}
	if err := httputil.BindData(c, &body); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if err := goal.RecordProgress(body.Amount); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Save(&goal).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: newGoal(goal)})
}

// DeleteGoal marks the goal deleted. The row stays; deleted goals only
// disappear from listings and reject further mutation.
func DeleteGoal(c *gin.Context) {
	goal, err := fetchGoal(c)
	if err != nil {
		return
	}

	goal.SoftDelete()
	if err := models.DB.Save(&goal).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func fetchGoal(c *gin.Context) (models.Goal, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return models.Goal{}, err
	}

	var goal models.Goal
	if err := models.DB.First(&goal, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Goal{}, err
	}

	return goal, nil
}
