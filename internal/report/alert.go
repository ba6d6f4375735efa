package report

import (
	"fmt"
	"time"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AlertType classifies how close a budget is to being used up.
type AlertType string

const (
	AlertTypeWarning      AlertType = "WARNING"       // 80% to just under 100% used
	AlertTypeLimitReached AlertType = "LIMIT_REACHED" // exactly 100% used
	AlertTypeExceeded     AlertType = "EXCEEDED"      // more than 100% used
)

// Alert is the warning for a single budget. It is derived on every
// read and never persisted.
type Alert struct {
	CategoryID     uuid.UUID       `json:"categoryId"`
	CategoryName   string          `json:"categoryName"`
	BudgetAmount   decimal.Decimal `json:"budgetAmount"`
	SpentAmount    decimal.Decimal `json:"spentAmount"`
	PercentageUsed float64         `json:"percentageUsed"`
	AlertType      AlertType       `json:"alertType"`
	Message        string          `json:"message"`
}

// Classify applies the alert thresholds to a (budget, spent) pair.
//
// The percentage is computed with the Percentage rounding rules, so a spend
// that rounds to exactly 100.0 is LIMIT_REACHED, not WARNING or EXCEEDED.
// Below 80% no alert exists and ok is false.
func Classify(categoryID uuid.UUID, categoryName string, budgetAmount, spentAmount decimal.Decimal) (Alert, bool) {
	percentageUsed := Percentage(spentAmount, budgetAmount)

	if percentageUsed < 80.0 {
		return Alert{}, false
	}

	var alertType AlertType
	var message string

	switch {
	case percentageUsed > 100.0:
		alertType = AlertTypeExceeded
		excess := spentAmount.Sub(budgetAmount)
		message = fmt.Sprintf("You have exceeded your %s budget by %s", categoryName, excess.StringFixed(2))
	case percentageUsed == 100.0:
		alertType = AlertTypeLimitReached
		message = fmt.Sprintf("You have reached your %s budget limit", categoryName)
	default:
		alertType = AlertTypeWarning
		message = fmt.Sprintf("You have used %.1f%% of your %s budget", percentageUsed, categoryName)
	}

	return Alert{
		CategoryID:     categoryID,
		CategoryName:   categoryName,
		BudgetAmount:   budgetAmount,
		SpentAmount:    spentAmount,
		PercentageUsed: percentageUsed,
		AlertType:      alertType,
		Message:        message,
	}, true
}

// BudgetAlerts scans all budgets of the user for the current month and
// returns an alert for each one that is at 80% or more of its amount.
//
// Only the current month is scanned. Budgets of other months are visible
// through the budget listing, which applies no threshold filter.
func BudgetAlerts(db *gorm.DB, ownerID uuid.UUID) ([]Alert, error) {
	current := types.MonthOf(now())

	budgets, err := models.BudgetsWithSpent(db, ownerID, current.Number(), current.Year())
	if err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(budgets))
	for _, budget := range budgets {
		alert, ok := Classify(budget.CategoryID, budget.CategoryName, budget.Amount, budget.Spent)
		if !ok {
			continue
		}

		alerts = append(alerts, alert)
	}

	return alerts, nil
}

// now is a variable so that tests can pin the clock.
var now = time.Now
