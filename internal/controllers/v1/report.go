package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/report"
)

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/monthly-summary", httputil.OptionsGet)
	r.GET("/monthly-summary", GetMonthlySummary)

	r.OPTIONS("/categories", httputil.OptionsGet)
	r.GET("/categories", GetCategoryBreakdown)

	r.OPTIONS("/trends", httputil.OptionsGet)
	r.GET("/trends", GetTrends)

	r.OPTIONS("/top-expenses", httputil.OptionsGet)
	r.GET("/top-expenses", GetTopExpenses)
}

type SummaryResponse struct {
	Data  *report.Summary `json:"data"`  // The monthly summary
	Error *string         `json:"error"` // The error, if any occurred
}

type BreakdownResponse struct {
	Data  *report.Breakdown `json:"data"`  // The category breakdown
	Error *string           `json:"error"` // The error, if any occurred
}

type TrendListResponse struct {
	Data  []report.TrendEntry `json:"data"`  // Monthly totals, newest month first
	Error *string             `json:"error"` // The error, if any occurred
}

type TopExpenseListResponse struct {
	Data  []models.Transaction `json:"data"`  // The month's largest expenses
	Error *string              `json:"error"` // The error, if any occurred
}

// queryIntPtr reads an optional numeric query parameter.
func queryIntPtr(c *gin.Context, name string) (*int, error) {
	query := c.Query(name)
	if query == "" {
		return nil, nil
	}

	n, err := parseQueryInt(query)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// GetMonthlySummary returns the full financial picture of one month.
// Both month and year are required.
func GetMonthlySummary(c *gin.Context) {
	month, err := queryIntPtr(c, "month")
	if err == nil && month == nil {
		err = errMonthNotSetInQuery
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{Error: &s})
		return
	}

	year, err := queryIntPtr(c, "year")
	if err == nil && year == nil {
		err = errYearNotSetInQuery
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{Error: &s})
		return
	}

	summary, err := report.MonthlySummary(models.DB, currentUser(c).ID, *month, *year)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &summary})
}

// GetCategoryBreakdown returns the month's expenses grouped by
// category. Month and year default to the current month.
func GetCategoryBreakdown(c *gin.Context) {
	month, err := queryIntPtr(c, "month")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BreakdownResponse{Error: &s})
		return
	}

	year, err := queryIntPtr(c, "year")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BreakdownResponse{Error: &s})
		return
	}

	breakdown, err := report.CategoryBreakdown(models.DB, currentUser(c).ID, month, year)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BreakdownResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, BreakdownResponse{Data: &breakdown})
}

// GetTrends returns income versus expenses for the last months.
// The month count defaults to 6 and is capped at 12.
func GetTrends(c *gin.Context) {
	months, err := queryIntPtr(c, "months")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TrendListResponse{Error: &s})
		return
	}

	trends, err := report.Trends(models.DB, currentUser(c).ID, months)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TrendListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TrendListResponse{Data: trends})
}

// GetTopExpenses returns the month's largest expenses. The limit
// defaults to 10 and is capped at 50, month and year default to the
// current month.
func GetTopExpenses(c *gin.Context) {
	limit, err := queryIntPtr(c, "limit")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TopExpenseListResponse{Error: &s})
		return
	}

	month, err := queryIntPtr(c, "month")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TopExpenseListResponse{Error: &s})
		return
	}

	year, err := queryIntPtr(c, "year")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TopExpenseListResponse{Error: &s})
		return
	}

	expenses, err := report.TopExpenses(models.DB, currentUser(c).ID, limit, month, year)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TopExpenseListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TopExpenseListResponse{Data: expenses})
}
