package models

import (
	"errors"
	"time"

	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget represents a spending limit for one expense category in one month.
//
// There is at most one budget per user, category and month. SetBudget
// updates the amount in place instead of creating a duplicate.
type Budget struct {
	DefaultModel
	OwnerID    uuid.UUID       `json:"-" gorm:"uniqueIndex:budget_owner_category_month_year"`
	CategoryID uuid.UUID       `json:"categoryId" gorm:"uniqueIndex:budget_owner_category_month_year"`
	Category   Category        `json:"-"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,2)"`
	Month      int             `json:"month" gorm:"uniqueIndex:budget_owner_category_month_year"` // 1 to 12
	Year       int             `json:"year" gorm:"uniqueIndex:budget_owner_category_month_year"`
}

// MonthOf returns the month the budget is set for.
func (b Budget) MonthOf() types.Month {
	return types.NewMonth(b.Year, time.Month(b.Month))
}

// CheckMonthYear verifies that a month and year are inside the
// supported ranges.
func CheckMonthYear(month, year int) error {
	if month < 1 || month > 12 {
		return ErrMonthOutOfRange
	}

	if year < 2000 || year > 2100 {
		return ErrYearOutOfRange
	}

	return nil
}

// SetBudget creates the budget for (owner, category, month, year) or, when
// one already exists, updates its amount in place.
//
// Concurrent writers that both miss the existing row race on the insert. The
// unique index on (owner, category, month, year) rejects the second insert,
// there is no in-process locking.
func SetBudget(db *gorm.DB, ownerID uuid.UUID, categoryID uuid.UUID, amount decimal.Decimal, month, year int) (Budget, error) {
	err := CheckMonthYear(month, year)
	if err != nil {
		return Budget{}, err
	}

	if err := checkAmount(amount); err != nil {
		return Budget{}, err
	}

	if types.NewMonth(year, time.Month(month)).Before(types.MonthOf(time.Now())) {
		return Budget{}, ErrBudgetPastMonth
	}

	category, err := CategoryByID(db, categoryID, ownerID)
	if err != nil {
		return Budget{}, err
	}

	if category.Type != TransactionTypeExpense {
		return Budget{}, ErrBudgetNotExpenseCategory
	}

	var budget Budget
	err = db.
		Where("owner_id = ? AND category_id = ? AND month = ? AND year = ?", ownerID, categoryID, month, year).
		First(&budget).Error

	if err == nil {
		budget.Amount = amount
		err = db.Save(&budget).Error
		return budget, err
	}

	if !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Budget{}, err
	}

	budget = Budget{
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Amount:     amount,
		Month:      month,
		Year:       year,
	}

	err = db.Create(&budget).Error
	return budget, err
}

// BudgetByID returns the user's budget.
func BudgetByID(db *gorm.DB, id uuid.UUID, ownerID uuid.UUID) (Budget, error) {
	var budget Budget
	err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&budget).Error
	return budget, err
}

// UpdateBudgetAmount changes the amount of an existing budget.
func UpdateBudgetAmount(db *gorm.DB, id uuid.UUID, ownerID uuid.UUID, amount decimal.Decimal) (Budget, error) {
	if err := checkAmount(amount); err != nil {
		return Budget{}, err
	}

	budget, err := BudgetByID(db, id, ownerID)
	if err != nil {
		return Budget{}, err
	}

	budget.Amount = amount
	err = db.Save(&budget).Error
	return budget, err
}

// DeleteBudget removes the user's budget.
func DeleteBudget(db *gorm.DB, id uuid.UUID, ownerID uuid.UUID) error {
	budget, err := BudgetByID(db, id, ownerID)
	if err != nil {
		return err
	}

	return db.Delete(&budget).Error
}

// BudgetSpent is a budget together with its category name and the live
// sum of the category's expenses in the budget month. It is computed fresh
// on every read and never persisted.
type BudgetSpent struct {
	Budget
	CategoryName string          `json:"categoryName"`
	Spent        decimal.Decimal `json:"spentAmount"`
}

// spent loads the live spent amount for one budget.
func (b Budget) spent(db *gorm.DB) (decimal.Decimal, error) {
	expense := TransactionTypeExpense
	return TransactionsSum(db, TransactionSum{
		OwnerID:    b.OwnerID,
		CategoryID: &b.CategoryID,
		Type:       &expense,
		Month:      b.MonthOf(),
	})
}

// WithSpent resolves the category name and live spent amount for
// the budget.
func (b Budget) WithSpent(db *gorm.DB) (BudgetSpent, error) {
	category, err := CategoryByID(db, b.CategoryID, b.OwnerID)
	if err != nil {
		return BudgetSpent{}, err
	}

	spent, err := b.spent(db)
	if err != nil {
		return BudgetSpent{}, err
	}

	return BudgetSpent{
		Budget:       b,
		CategoryName: category.Name,
		Spent:        spent,
	}, nil
}

// BudgetsWithSpent returns all budgets of the user for one month with
// their category names and live spent amounts, ordered by category name.
func BudgetsWithSpent(db *gorm.DB, ownerID uuid.UUID, month, year int) ([]BudgetSpent, error) {
	var budgets []Budget
	err := db.
		Joins("Category").
		Where("budgets.owner_id = ? AND budgets.month = ? AND budgets.year = ?", ownerID, month, year).
		Order("Category.name ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	result := make([]BudgetSpent, 0, len(budgets))
	for _, budget := range budgets {
		spent, err := budget.spent(db)
		if err != nil {
			return nil, err
		}

		result = append(result, BudgetSpent{
			Budget:       budget,
			CategoryName: budget.Category.Name,
			Spent:        spent,
		})
	}

	return result, nil
}
