package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendsense/backend/internal/analytics"
	"github.com/spendsense/backend/internal/httputil"
	"github.com/spendsense/backend/internal/models"
	"github.com/spendsense/backend/internal/types"
)

func RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
	{
		r.OPTIONS("/:id/spending", OptionsBudgetSpending)
		r.PATCH("/:id/spending", UpdateBudgetSpending)
	}
	{
		r.OPTIONS("/:id/categories", OptionsBudgetCategories)
		r.GET("/:id/categories", GetBudgetCategories)
		r.POST("/:id/categories", CreateBudgetCategory)
	}
}

type BudgetEditable struct {
	UserID      uuid.UUID       `json:"userId" example:"d130cbb0-4c1e-4c2c-a03b-8a3c31f82063"`
	Month       types.Month     `json:"month" example:"2026-04"`
	TotalBudget decimal.Decimal `json:"totalBudget" example:"1500"`
	Notes       string          `json:"notes"`
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		UserID:      editable.UserID,
		Month:       editable.Month,
		TotalBudget: editable.TotalBudget,
		Notes:       editable.Notes,
	}
}

// Budget is the API representation: the stored resource plus its
// derived classification. The status is never stored, it is computed
// from the totals on every read.
type Budget struct {
	models.Budget
	Status             analytics.BudgetStatus `json:"status" example:"UNDER_BUDGET"`
	RemainingBudget    decimal.Decimal        `json:"remainingBudget" example:"550"`
	SpendingPercentage decimal.Decimal        `json:"spendingPercentage" example:"63.33"`
}

func newBudget(model models.Budget) Budget {
	classification := analytics.ClassifyBudget(model.TotalBudget, model.ActualSpending)

	return Budget{
		Budget:             model,
		Status:             classification.Status,
		RemainingBudget:    classification.RemainingBudget,
		SpendingPercentage: classification.SpendingPercentage,
	}
}

type BudgetResponse struct {
	Data Budget `json:"data"`
}

type BudgetListResponse struct {
	Data []Budget `json:"data"`
}

type BudgetCategoryResponse struct {
	Data models.BudgetCategory `json:"data"`
}

type BudgetCategoryListResponse struct {
	Data []models.BudgetCategory `json:"data"`
}

func OptionsBudgetList(c *gin.Context)       { httputil.OptionsGetPost(c) }
func OptionsBudgetDetail(c *gin.Context)     { httputil.OptionsGetPatchDelete(c) }
func OptionsBudgetSpending(c *gin.Context)   { c.Header("allow", "PATCH"); c.Status(http.StatusNoContent) }
func OptionsBudgetCategories(c *gin.Context) { httputil.OptionsGetPost(c) }

func CreateBudget(c *gin.Context) {
	var editable BudgetEditable

	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	budget := editable.model()
	if err := models.DB.Create(&budget).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: newBudget(budget)})
}

func GetBudgets(c *gin.Context) {
	var query userQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if query.UserID.UUID == uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errUserParameterRequired.Error()})
		return
	}

	var budgets []models.Budget
	err := models.DB.
		Where("user_id = ?", query.UserID.UUID).
		Order("month ASC").
		Find(&budgets).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, newBudget(budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

func GetBudget(c *gin.Context) {
	budget, err := fetchBudget(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(budget)})
}

// BudgetUpdateEditable is the PATCH body for a budget. Absent fields
// keep their value.
type BudgetUpdateEditable struct {
	TotalBudget *decimal.Decimal `json:"totalBudget"`
	Notes       *string          `json:"notes"`
}

func UpdateBudget(c *gin.Context) {
	budget, err := fetchBudget(c)
	if err != nil {
		return
	}

	var update BudgetUpdateEditable
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if update.TotalBudget != nil {
		budget.TotalBudget = *update.TotalBudget
	}
	if update.Notes != nil {
		budget.Notes = *update.Notes
	}

	if err := models.DB.Save(&budget).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(budget)})
}

// UpdateBudgetSpending replaces the recorded actual spending. The
// caller sends the new absolute value, not a delta; the classification
// in the response reflects it immediately.
func UpdateBudgetSpending(c *gin.Context) {
	budget, err := fetchBudget(c)
	if err != nil {
		return
	}

	var update struct {
		ActualSpending decimal.Decimal `json:"actualSpending"`
	}
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	budget.ActualSpending = update.ActualSpending
	if err := models.DB.Save(&budget).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(budget)})
}

// DeleteBudget deactivates the budget. Budgets are never removed, the
// row stays for historical analytics.
func DeleteBudget(c *gin.Context) {
	budget, err := fetchBudget(c)
	if err != nil {
		return
	}

	budget.Active = false
	if err := models.DB.Save(&budget).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

type BudgetCategoryEditable struct {
	CategoryID       uuid.UUID        `json:"categoryId" example:"2c1a4be3-2b3b-4cf0-a4d4-c1f6d21b90f4"`
	BudgetAmount     decimal.Decimal  `json:"budgetAmount" example:"300"`
	BudgetPercentage *decimal.Decimal `json:"budgetPercentage,omitempty" example:"20"`
}

func CreateBudgetCategory(c *gin.Context) {
	budget, err := fetchBudget(c)
	if err != nil {
		return
	}

	var editable BudgetCategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	budgetCategory := models.BudgetCategory{
		BudgetID:         budget.ID,
		CategoryID:       editable.CategoryID,
		BudgetAmount:     editable.BudgetAmount,
		BudgetPercentage: editable.BudgetPercentage,
	}

	if err := models.DB.Create(&budgetCategory).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, BudgetCategoryResponse{Data: budgetCategory})
}

func GetBudgetCategories(c *gin.Context) {
	budget, err := fetchBudget(c)
	if err != nil {
		return
	}

	var budgetCategories []models.BudgetCategory
	err = models.DB.
		Where("budget_id = ?", budget.ID).
		Order("created_at ASC").
		Find(&budgetCategories).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BudgetCategoryListResponse{Data: budgetCategories})
}

// fetchBudget loads the budget from the :id URI parameter. On failure
// the response has already been written.
func fetchBudget(c *gin.Context) (models.Budget, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return models.Budget{}, err
	}

	var budget models.Budget
	if err := models.DB.First(&budget, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Budget{}, err
	}

	return budget, nil
}
