package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name string                 `json:"name" binding:"required" example:"Groceries"`
	Type models.TransactionType `json:"type" binding:"required" example:"EXPENSE"` // Type of the transactions the category accepts
}

type CategoryResponse struct {
	Data  *models.Category `json:"data"`  // Data for the Category
	Error *string          `json:"error"` // The error, if any occurred
}

type CategoryListResponse struct {
	Data  []models.Category `json:"data"`  // List of Categories
	Error *string           `json:"error"` // The error, if any occurred
}

func OptionsCategoryDetail(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	_, err = models.CategoryByID(models.DB, id, currentUser(c).ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// GetCategories returns the system categories and the user's own,
// optionally filtered by type.
func GetCategories(c *gin.Context) {
	var categoryType *models.TransactionType
	if query := c.Query("type"); query != "" {
		t := models.TransactionType(query)
		if !t.Valid() {
			s := models.ErrTypeInvalid.Error()
			c.JSON(status(models.ErrTypeInvalid), CategoryListResponse{Error: &s})
			return
		}
		categoryType = &t
	}

	categories, err := models.Categories(models.DB, currentUser(c).ID, categoryType)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

// CreateCategory creates a new custom category for the user.
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	category, err := models.CreateCategory(models.DB, currentUser(c).ID, editable.Name, editable.Type)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: &category})
}

// GetCategory returns a specific category.
func GetCategory(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	category, err := models.CategoryByID(models.DB, id, currentUser(c).ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// UpdateCategory updates a custom category. Only values to be updated
// need to be specified, omitted values keep their current state.
func UpdateCategory(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	owner := currentUser(c).ID

	existing, err := models.CategoryByID(models.DB, id, owner)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	// Prefill with the current state so that omitted fields stay unchanged
	editable := CategoryEditable{
		Name: existing.Name,
		Type: existing.Type,
	}

	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	category, err := models.UpdateCategory(models.DB, id, owner, editable.Name, editable.Type)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// DeleteCategory deletes a custom category without transactions.
func DeleteCategory(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	err = models.DeleteCategory(models.DB, id, currentUser(c).ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	c.Status(http.StatusNoContent)
}
