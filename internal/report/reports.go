package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultTrendMonths = 6
	maxTrendMonths     = 12
	defaultTopLimit    = 10
	maxTopLimit        = 50
)

// normalizeMonths resolves the trend month count: nil or anything below
// one falls back to the default, more than a year is clamped.
func normalizeMonths(months *int) int {
	if months == nil || *months < 1 {
		return defaultTrendMonths
	}

	if *months > maxTrendMonths {
		return maxTrendMonths
	}

	return *months
}

// normalizeLimit resolves the top expense count the same way.
func normalizeLimit(limit *int) int {
	if limit == nil || *limit < 1 {
		return defaultTopLimit
	}

	if *limit > maxTopLimit {
		return maxTopLimit
	}

	return *limit
}

// normalizeMonthYear fills omitted month or year values with the
// current month. Explicitly supplied values are range checked, the
// calendar must not roll a month of 13 over into the next January.
func normalizeMonthYear(month, year *int, ref time.Time) (int, int, error) {
	current := types.MonthOf(ref)

	m := current.Number()
	if month != nil {
		m = *month
	}

	y := current.Year()
	if year != nil {
		y = *year
	}

	if err := models.CheckMonthYear(m, y); err != nil {
		return 0, 0, err
	}

	return m, y, nil
}

// trendStart returns the first month of a trend series of the given
// length ending in the month of ref.
func trendStart(ref time.Time, months int) types.Month {
	return types.MonthOf(ref).AddDate(0, -(months - 1))
}

// Summary is the full financial picture of one user month.
type Summary struct {
	Month                    int                 `json:"month"`
	Year                     int                 `json:"year"`
	TotalIncome              decimal.Decimal     `json:"totalIncome"`
	TotalExpenses            decimal.Decimal     `json:"totalExpenses"`
	NetSavings               decimal.Decimal     `json:"netSavings"`
	TransactionCount         int64               `json:"transactionCount"`
	AverageTransactionAmount decimal.Decimal     `json:"averageTransactionAmount"`
	LargestExpense           *models.Transaction `json:"largestExpense"`
}

// MonthlySummary computes the summary for one month.
//
// Unlike the other reports, month and year are required here and are
// validated instead of defaulted.
func MonthlySummary(db *gorm.DB, ownerID uuid.UUID, month, year int) (Summary, error) {
	err := models.CheckMonthYear(month, year)
	if err != nil {
		return Summary{}, err
	}

	key := fmt.Sprintf("summary/%s/%04d-%02d", ownerID, year, month)
	if cached, ok := cacheGet[Summary](key); ok {
		return cached, nil
	}

	m := types.NewMonth(year, time.Month(month))

	totals, err := models.MonthlyTotals(db, ownerID, m)
	if err != nil {
		return Summary{}, err
	}

	largest, err := models.LargestExpense(db, ownerID, m)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Month:                    month,
		Year:                     year,
		TotalIncome:              totals.Income,
		TotalExpenses:            totals.Expenses,
		NetSavings:               totals.Income.Sub(totals.Expenses),
		TransactionCount:         totals.Count,
		AverageTransactionAmount: totals.Average,
		LargestExpense:           largest,
	}

	cachePut(key, summary)
	return summary, nil
}

// CategoryShare is the expense total of one category and its share of
// the month's overall expenses.
type CategoryShare struct {
	CategoryID        uuid.UUID       `json:"categoryId"`
	CategoryName      string          `json:"categoryName"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TransactionCount  int64           `json:"transactionCount"`
	PercentageOfTotal float64         `json:"percentageOfTotal"`
}

// Breakdown is the category-wise expense report for one month.
type Breakdown struct {
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Categories    []CategoryShare `json:"categories"`
}

// CategoryBreakdown groups the month's expenses by category, largest
// total first. Month and year default to the current month when omitted.
func CategoryBreakdown(db *gorm.DB, ownerID uuid.UUID, month, year *int) (Breakdown, error) {
	m, y, err := normalizeMonthYear(month, year, now())
	if err != nil {
		return Breakdown{}, err
	}

	key := fmt.Sprintf("breakdown/%s/%04d-%02d", ownerID, y, m)
	if cached, ok := cacheGet[Breakdown](key); ok {
		return cached, nil
	}

	totals, err := models.CategoryTotals(db, ownerID, types.NewMonth(y, time.Month(m)))
	if err != nil {
		return Breakdown{}, err
	}

	totalExpenses := decimal.Zero
	for _, total := range totals {
		totalExpenses = totalExpenses.Add(total.Total)
	}

	categories := make([]CategoryShare, 0, len(totals))
	for _, total := range totals {
		categories = append(categories, CategoryShare{
			CategoryID:        total.CategoryID,
			CategoryName:      total.CategoryName,
			TotalAmount:       total.Total,
			TransactionCount:  total.Count,
			PercentageOfTotal: Percentage(total.Total, totalExpenses),
		})
	}

	breakdown := Breakdown{
		Month:         m,
		Year:          y,
		TotalExpenses: totalExpenses,
		Categories:    categories,
	}

	cachePut(key, breakdown)
	return breakdown, nil
}

// TrendEntry is the income and expense total of one month in a
// trend series.
type TrendEntry struct {
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetSavings    decimal.Decimal `json:"netSavings"`
}

// Trends computes the income versus expense series for the last months.
//
// Only months with at least one transaction produce an entry, the series
// is not padded to be contiguous. Entries are sorted newest month first
// so that the order is deterministic.
func Trends(db *gorm.DB, ownerID uuid.UUID, monthCount *int) ([]TrendEntry, error) {
	months := normalizeMonths(monthCount)

	key := fmt.Sprintf("trends/%s/%d", ownerID, months)
	if cached, ok := cacheGet[[]TrendEntry](key); ok {
		return cached, nil
	}

	start := trendStart(now(), months)

	transactions, err := models.TransactionsSince(db, ownerID, start)
	if err != nil {
		return nil, err
	}

	buckets := make(map[types.Month]*TrendEntry)
	for _, transaction := range transactions {
		bucket := types.MonthOf(transaction.Date)

		entry, ok := buckets[bucket]
		if !ok {
			entry = &TrendEntry{
				Month:         bucket.Number(),
				Year:          bucket.Year(),
				TotalIncome:   decimal.Zero,
				TotalExpenses: decimal.Zero,
			}
			buckets[bucket] = entry
		}

		switch transaction.Type {
		case models.TransactionTypeIncome:
			entry.TotalIncome = entry.TotalIncome.Add(transaction.Amount)
		case models.TransactionTypeExpense:
			entry.TotalExpenses = entry.TotalExpenses.Add(transaction.Amount)
		}
	}

	trends := make([]TrendEntry, 0, len(buckets))
	for _, entry := range buckets {
		entry.NetSavings = entry.TotalIncome.Sub(entry.TotalExpenses)
		trends = append(trends, *entry)
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Year != trends[j].Year {
			return trends[i].Year > trends[j].Year
		}
		return trends[i].Month > trends[j].Month
	})

	cachePut(key, trends)
	return trends, nil
}

// TopExpenses returns the highest expenses of one month, largest first.
//
// The limit defaults to 10 and is capped at 50, month and year default to
// the current month. Months with fewer expenses than the limit return what
// exists, there is no padding.
func TopExpenses(db *gorm.DB, ownerID uuid.UUID, limit, month, year *int) ([]models.Transaction, error) {
	l := normalizeLimit(limit)
	m, y, err := normalizeMonthYear(month, year, now())
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("top/%s/%04d-%02d/%d", ownerID, y, m, l)
	if cached, ok := cacheGet[[]models.Transaction](key); ok {
		return cached, nil
	}

	expenses, err := models.TopExpenses(db, ownerID, types.NewMonth(y, time.Month(m)), l)
	if err != nil {
		return nil, err
	}

	cachePut(key, expenses)
	return expenses, nil
}
