package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/report"
	"github.com/centsible/backend/internal/types"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetBudgets)
		r.POST("", SetBudget)
	}

	r.OPTIONS("/alerts", httputil.OptionsGet)
	r.GET("/alerts", GetBudgetAlerts)

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" binding:"required" example:"7e95a4f2-7cbd-4b42-a7c2-9a24bcc4bf17"`
	Amount     decimal.Decimal `json:"amount" example:"400"`
	Month      int             `json:"month" binding:"required" example:"3"` // 1 to 12
	Year       int             `json:"year" binding:"required" example:"2026"`
}

// BudgetAmount is the body for updating an existing budget, where only
// the amount can change.
type BudgetAmount struct {
	Amount decimal.Decimal `json:"amount" example:"450"`
}

// BudgetDetail is a budget with its live spending state.
type BudgetDetail struct {
	models.Budget
	CategoryName    string          `json:"categoryName"`
	SpentAmount     decimal.Decimal `json:"spentAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	PercentageUsed  float64         `json:"percentageUsed"`
}

func newBudgetDetail(spent models.BudgetSpent) BudgetDetail {
	remaining, percentage := report.Derive(spent.Amount, spent.Spent)

	return BudgetDetail{
		Budget:          spent.Budget,
		CategoryName:    spent.CategoryName,
		SpentAmount:     spent.Spent,
		RemainingAmount: remaining,
		PercentageUsed:  percentage,
	}
}

type BudgetResponse struct {
	Data  *BudgetDetail `json:"data"`  // Data for the Budget
	Error *string       `json:"error"` // The error, if any occurred
}

type BudgetListResponse struct {
	Data  []BudgetDetail `json:"data"`  // List of Budgets
	Error *string        `json:"error"` // The error, if any occurred
}

type AlertListResponse struct {
	Data  []report.Alert `json:"data"`  // Alerts for the current month
	Error *string        `json:"error"` // The error, if any occurred
}

func OptionsBudgetDetail(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	_, err = models.BudgetByID(models.DB, id, currentUser(c).ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// GetBudgets returns the user's budgets for one month with their live
// spending state. Month and year default to the current month.
func GetBudgets(c *gin.Context) {
	current := types.MonthOf(time.Now())

	month := current.Number()
	year := current.Year()

	var err error
	if query := c.Query("month"); query != "" {
		month, err = parseQueryInt(query)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), BudgetListResponse{Error: &s})
			return
		}
	}

	if query := c.Query("year"); query != "" {
		year, err = parseQueryInt(query)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), BudgetListResponse{Error: &s})
			return
		}
	}

	if err := models.CheckMonthYear(month, year); err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	budgets, err := models.BudgetsWithSpent(models.DB, currentUser(c).ID, month, year)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	data := make([]BudgetDetail, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, newBudgetDetail(budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// SetBudget creates the budget for the category and month or updates
// its amount when it already exists.
func SetBudget(c *gin.Context) {
	var editable BudgetEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	owner := currentUser(c).ID

	budget, err := models.SetBudget(models.DB, owner, editable.CategoryID, editable.Amount, editable.Month, editable.Year)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	spent, err := budget.WithSpent(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	report.InvalidateOwner(owner)

	detail := newBudgetDetail(spent)
	c.JSON(http.StatusCreated, BudgetResponse{Data: &detail})
}

// GetBudgetAlerts returns the alerts for all budgets of the current
// month that are at least at their warning threshold.
func GetBudgetAlerts(c *gin.Context) {
	alerts, err := report.BudgetAlerts(models.DB, currentUser(c).ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AlertListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, AlertListResponse{Data: alerts})
}

// GetBudget returns a specific budget with its live spending state.
func GetBudget(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	budget, err := models.BudgetByID(models.DB, id, currentUser(c).ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	spent, err := budget.WithSpent(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	detail := newBudgetDetail(spent)
	c.JSON(http.StatusOK, BudgetResponse{Data: &detail})
}

// UpdateBudget changes the amount of an existing budget.
func UpdateBudget(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	var body BudgetAmount
	err = httputil.BindData(c, &body)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	owner := currentUser(c).ID

	budget, err := models.UpdateBudgetAmount(models.DB, id, owner, body.Amount)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	spent, err := budget.WithSpent(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	report.InvalidateOwner(owner)

	detail := newBudgetDetail(spent)
	c.JSON(http.StatusOK, BudgetResponse{Data: &detail})
}

// DeleteBudget deletes a budget. The transactions of its category
// are not affected.
func DeleteBudget(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	owner := currentUser(c).ID

	err = models.DeleteBudget(models.DB, id, owner)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	report.InvalidateOwner(owner)
	c.Status(http.StatusNoContent)
}
