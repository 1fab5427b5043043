package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendsense/backend/internal/httputil"
	"github.com/spendsense/backend/internal/models"
)

// Categories are reference data for budget lines; the API only needs
// them created and listed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsCategoryList)
	r.GET("", GetCategories)
	r.POST("", CreateCategory)
}

type CategoryEditable struct {
	Name  string `json:"name" example:"groceries"`
	Color string `json:"color" example:"#2E7D32"`
	Icon  string `json:"icon" example:"shopping-cart"`
	Note  string `json:"note"`
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:  editable.Name,
		Color: editable.Color,
		Icon:  editable.Icon,
		Note:  editable.Note,
	}
}

type CategoryResponse struct {
	Data models.Category `json:"data"`
}

type CategoryListResponse struct {
	Data []models.Category `json:"data"`
}

func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func CreateCategory(c *gin.Context) {
	var editable CategoryEditable

	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	category := editable.model()
	if err := models.DB.Create(&category).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: category})
}

func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := models.DB.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}
