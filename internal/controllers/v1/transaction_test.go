package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/test"
)

func (suite *TestSuiteStandard) TestCreateTransactionHTTP() {
	token, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)

	transaction := suite.createTestTransaction(token, category.ID, models.TransactionTypeExpense, "42.50", currentMonth().First())
	assert.True(suite.T(), transaction.Amount.Equal(decimal.NewFromFloat(42.50)))
	assert.Equal(suite.T(), category.ID, transaction.CategoryID)
}

func (suite *TestSuiteStandard) TestCreateTransactionInvalid() {
	token, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)
	income := suite.createTestCategory(token, "Paycheck", models.TransactionTypeIncome)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"missing category", `{ "type": "EXPENSE", "amount": "10" }`, http.StatusBadRequest},
		{"zero amount", fmt.Sprintf(`{ "categoryId": %q, "type": "EXPENSE", "amount": "0" }`, category.ID), http.StatusBadRequest},
		{"sub-cent amount", fmt.Sprintf(`{ "categoryId": %q, "type": "EXPENSE", "amount": "10.005" }`, category.ID), http.StatusBadRequest},
		{"type mismatch", fmt.Sprintf(`{ "categoryId": %q, "type": "EXPENSE", "amount": "10" }`, income.ID), http.StatusBadRequest},
		{"unknown category", `{ "categoryId": "4e743e94-6a4b-44d6-aba5-d77c87103ff7", "type": "EXPENSE", "amount": "10" }`, http.StatusNotFound},
		{"future date", fmt.Sprintf(`{ "categoryId": %q, "type": "EXPENSE", "amount": "10", "date": "2199-01-01T00:00:00Z" }`, category.ID), http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "/v1/transactions", tt.body, test.BearerHeader(token))
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestGetTransactions() {
	token, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)

	month := currentMonth()
	suite.createTestTransaction(token, category.ID, models.TransactionTypeExpense, "10", month.First())
	suite.createTestTransaction(token, category.ID, models.TransactionTypeExpense, "20", month.First())

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Len(suite.T(), response.Data, 2)
	suite.Require().NotNil(response.Pagination)
	assert.Equal(suite.T(), int64(2), response.Pagination.Total)
	assert.Equal(suite.T(), 20, response.Pagination.Limit)
}

func (suite *TestSuiteStandard) TestGetTransactionsFilters() {
	token, _ := suite.registerTestUser()
	groceries := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)
	paycheck := suite.createTestCategory(token, "Paycheck", models.TransactionTypeIncome)

	month := currentMonth()
	suite.createTestTransaction(token, groceries.ID, models.TransactionTypeExpense, "10", month.First())
	suite.createTestTransaction(token, groceries.ID, models.TransactionTypeExpense, "250", month.First())
	suite.createTestTransaction(token, paycheck.ID, models.TransactionTypeIncome, "3000", month.First())

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"by type", "type=EXPENSE", 2},
		{"by category", "category=" + groceries.ID.String(), 2},
		{"by minimum amount", "minAmount=100", 2},
		{"by maximum amount", "maxAmount=100", 1},
		{"combined", "type=EXPENSE&minAmount=100", 1},
		{"from excludes nothing", "from=" + month.First().Format("2006-01-02"), 3},
		{"to before the month", "to=" + month.AddDate(0, -1).First().Format("2006-01-02"), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, "/v1/transactions?"+tt.query, "", test.BearerHeader(token))
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestGetTransactionsSort() {
	token, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)

	month := currentMonth()
	suite.createTestTransaction(token, category.ID, models.TransactionTypeExpense, "10", month.First())
	suite.createTestTransaction(token, category.ID, models.TransactionTypeExpense, "200", month.First())
	suite.createTestTransaction(token, category.ID, models.TransactionTypeExpense, "35", month.First())

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions?sort=amount&order=asc", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 3)

	assert.True(suite.T(), response.Data[0].Amount.Equal(decimal.NewFromInt(10)))
	assert.True(suite.T(), response.Data[2].Amount.Equal(decimal.NewFromInt(200)))

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/transactions?sort=wishes", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/transactions?order=sideways", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetTransactionsPagination() {
	token, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)

	month := currentMonth()
	for i := 0; i < 5; i++ {
		suite.createTestTransaction(token, category.ID, models.TransactionTypeExpense, "10", month.First())
	}

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions?limit=2&offset=4", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Len(suite.T(), response.Data, 1)
	suite.Require().NotNil(response.Pagination)
	assert.Equal(suite.T(), int64(5), response.Pagination.Total)
	assert.Equal(suite.T(), 4, response.Pagination.Offset)
	assert.Equal(suite.T(), 2, response.Pagination.Limit)
}

func (suite *TestSuiteStandard) TestGetTransaction() {
	token, _ := suite.registerTestUser()
	otherToken, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)
	transaction := suite.createTestTransaction(token, category.ID, models.TransactionTypeExpense, "10", currentMonth().First())

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/transactions/%s", transaction.ID), "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// Other users do not see the transaction
	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/transactions/%s", transaction.ID), "", test.BearerHeader(otherToken))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateTransactionHTTP() {
	token, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)
	transaction := suite.createTestTransaction(token, category.ID, models.TransactionTypeExpense, "10", currentMonth().First())

	// Only the amount is sent, everything else stays unchanged
	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", transaction.ID), map[string]string{
		"amount": "12.34",
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	assert.Equal(suite.T(), transaction.ID, response.Data.ID)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(12.34)))
	assert.Equal(suite.T(), category.ID, response.Data.CategoryID)
	assert.True(suite.T(), response.Data.Date.Equal(transaction.Date))
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	token, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)
	transaction := suite.createTestTransaction(token, category.ID, models.TransactionTypeExpense, "10", currentMonth().First())

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", transaction.ID), "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/transactions/%s", transaction.ID), "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	// Deleting twice fails, the transaction is gone
	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", transaction.ID), "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
