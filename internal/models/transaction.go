package models

import (
	"strings"
	"time"

	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether the value is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single income or expense of a user.
//
// Transactions are soft deleted: gorm keeps deleted rows in storage,
// but excludes them from all queries and therefore all aggregations.
type Transaction struct {
	DefaultModel
	OwnerID       uuid.UUID       `json:"-" gorm:"index:idx_transaction_owner_date"`
	CategoryID    uuid.UUID       `json:"categoryId" gorm:"index"`
	Category      Category        `json:"-"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,2)"`
	Date          time.Time       `json:"date" gorm:"index:idx_transaction_owner_date"`
	Note          string          `json:"note,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave normalizes the date to UTC day precision and trims strings.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	}

	t.Date = day(t.Date)

	t.Note = strings.TrimSpace(t.Note)
	t.PaymentMethod = strings.TrimSpace(t.PaymentMethod)

	return checkAmount(t.Amount)
}

// day truncates a time to UTC day precision. Transaction dates carry
// no time of day.
func day(t time.Time) time.Time {
	year, month, d := t.UTC().Date()
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// checkAmount verifies that an amount is at least one cent and has
// no sub-cent fraction.
func checkAmount(amount decimal.Decimal) error {
	if amount.LessThan(decimal.New(1, -2)) {
		return ErrAmountNotPositive
	}

	if !amount.Equal(amount.Round(2)) {
		return ErrAmountNotCents
	}

	return nil
}

// CreateTransaction validates and saves a new transaction for the user.
//
// The category must be visible to the user, the declared type must match
// the category type and the date must not be in the future.
func CreateTransaction(db *gorm.DB, transaction Transaction) (Transaction, error) {
	category, err := CategoryByID(db, transaction.CategoryID, transaction.OwnerID)
	if err != nil {
		return Transaction{}, err
	}

	if !transaction.Type.Valid() {
		return Transaction{}, ErrTypeInvalid
	}

	if transaction.Type != category.Type {
		return Transaction{}, ErrCategoryTypeMismatch
	}

	if !transaction.Date.IsZero() && day(transaction.Date).After(day(time.Now())) {
		return Transaction{}, ErrDateInFuture
	}

	err = db.Create(&transaction).Error
	return transaction, err
}

// UpdateTransaction validates the changed fields and saves the transaction.
// The same rules as for CreateTransaction apply.
func UpdateTransaction(db *gorm.DB, transaction Transaction) (Transaction, error) {
	category, err := CategoryByID(db, transaction.CategoryID, transaction.OwnerID)
	if err != nil {
		return Transaction{}, err
	}

	if !transaction.Type.Valid() {
		return Transaction{}, ErrTypeInvalid
	}

	if transaction.Type != category.Type {
		return Transaction{}, ErrCategoryTypeMismatch
	}

	if day(transaction.Date).After(day(time.Now())) {
		return Transaction{}, ErrDateInFuture
	}

	err = db.Save(&transaction).Error
	return transaction, err
}

// TransactionByID returns the user's non-deleted transaction.
func TransactionByID(db *gorm.DB, id uuid.UUID, ownerID uuid.UUID) (Transaction, error) {
	var transaction Transaction
	err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&transaction).Error
	return transaction, err
}

// TransactionSum describes which transactions to add up.
//
// CategoryID and Type are optional: when unset, the sum spans all
// categories and both transaction types.
type TransactionSum struct {
	OwnerID    uuid.UUID
	CategoryID *uuid.UUID
	Type       *TransactionType
	Month      types.Month
}

// TransactionsSum returns the sum of all non-deleted transactions matching
// the filter. The sum of no transactions is exactly zero.
//
// The computation stays in decimal arithmetic end to end so that sums are
// exact to the cent.
func TransactionsSum(db *gorm.DB, sum TransactionSum) (decimal.Decimal, error) {
	q := db.Model(&Transaction{}).
		Where("owner_id = ?", sum.OwnerID).
		Where("date >= ? AND date < ?", sum.Month.First(), sum.Month.Next().First())

	if sum.CategoryID != nil {
		q = q.Where("category_id = ?", *sum.CategoryID)
	}

	if sum.Type != nil {
		q = q.Where("type = ?", *sum.Type)
	}

	var total decimal.NullDecimal
	err := q.Select("SUM(amount)").Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	// SUM over no rows is NULL
	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}

// MonthTotals is the aggregate of one user month as computed by the store.
type MonthTotals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Count    int64
	Average  decimal.Decimal
}

// MonthlyTotals computes income, expense, count and average over both
// transaction types for one month in a single query.
func MonthlyTotals(db *gorm.DB, ownerID uuid.UUID, month types.Month) (MonthTotals, error) {
	var income, expenses, average decimal.NullDecimal
	var count int64

	err := db.Model(&Transaction{}).
		Where("owner_id = ?", ownerID).
		Where("date >= ? AND date < ?", month.First(), month.Next().First()).
		Select(
			"SUM(CASE WHEN type = ? THEN amount ELSE 0 END), SUM(CASE WHEN type = ? THEN amount ELSE 0 END), COUNT(*), AVG(amount)",
			TransactionTypeIncome, TransactionTypeExpense,
		).
		Row().
		Scan(&income, &expenses, &count, &average)
	if err != nil {
		return MonthTotals{}, err
	}

	return MonthTotals{
		Income:   income.Decimal,
		Expenses: expenses.Decimal,
		Count:    count,
		Average:  average.Decimal,
	}, nil
}

// CategoryTotal is the expense total of one category in one month.
type CategoryTotal struct {
	CategoryID   uuid.UUID
	CategoryName string
	Total        decimal.Decimal
	Count        int64
}

// CategoryTotals returns the per-category expense totals for one month,
// largest total first. Categories without expenses in the month are
// not included.
func CategoryTotals(db *gorm.DB, ownerID uuid.UUID, month types.Month) ([]CategoryTotal, error) {
	rows, err := db.Model(&Transaction{}).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.owner_id = ?", ownerID).
		Where("transactions.type = ?", TransactionTypeExpense).
		Where("transactions.date >= ? AND transactions.date < ?", month.First(), month.Next().First()).
		Group("categories.id, categories.name").
		Order("SUM(transactions.amount) DESC").
		Select("categories.id, categories.name, SUM(transactions.amount), COUNT(*)").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var total CategoryTotal
		var sum decimal.NullDecimal

		err = rows.Scan(&total.CategoryID, &total.CategoryName, &sum, &total.Count)
		if err != nil {
			return nil, err
		}

		total.Total = sum.Decimal
		totals = append(totals, total)
	}

	return totals, rows.Err()
}

// LargestExpense returns the single highest expense of the month, or nil
// when the month has none. Equal amounts return whichever the store sorts
// first.
func LargestExpense(db *gorm.DB, ownerID uuid.UUID, month types.Month) (*Transaction, error) {
	transactions, err := TopExpenses(db, ownerID, month, 1)
	if err != nil {
		return nil, err
	}

	if len(transactions) == 0 {
		return nil, nil
	}

	return &transactions[0], nil
}

// TopExpenses returns up to limit expenses of the month, highest
// amount first.
func TopExpenses(db *gorm.DB, ownerID uuid.UUID, month types.Month, limit int) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Where("owner_id = ?", ownerID).
		Where("type = ?", TransactionTypeExpense).
		Where("date >= ? AND date < ?", month.First(), month.Next().First()).
		Order("amount DESC").
		Limit(limit).
		Find(&transactions).Error

	return transactions, err
}

// TransactionsSince returns all non-deleted transactions of the user with
// a date on or after the first of the month passed.
func TransactionsSince(db *gorm.DB, ownerID uuid.UUID, from types.Month) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Where("owner_id = ?", ownerID).
		Where("date >= ?", from.First()).
		Find(&transactions).Error

	return transactions, err
}
