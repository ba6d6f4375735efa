package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/test"
)

func (suite *TestSuiteStandard) TestGetCategories() {
	token, _ := suite.registerTestUser()
	suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/categories", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// 12 system categories plus the user's own
	assert.Len(suite.T(), response.Data, 13)
}

func (suite *TestSuiteStandard) TestGetCategoriesFilter() {
	token, _ := suite.registerTestUser()

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/categories?type=INCOME", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 4)

	for _, category := range response.Data {
		assert.Equal(suite.T(), models.TransactionTypeIncome, category.Type)
	}

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/categories?type=TRANSFER", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateCategory() {
	token, _ := suite.registerTestUser()

	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)
	assert.Equal(suite.T(), "Groceries", category.Name)
	assert.Equal(suite.T(), models.TransactionTypeExpense, category.Type)
}

func (suite *TestSuiteStandard) TestCreateCategoryInvalid() {
	token, _ := suite.registerTestUser()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"missing name", `{ "type": "EXPENSE" }`, http.StatusBadRequest},
		{"invalid type", `{ "name": "Pets", "type": "TRANSFER" }`, http.StatusBadRequest},
		{"system name", `{ "name": "Food", "type": "EXPENSE" }`, http.StatusConflict},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "/v1/categories", tt.body, test.BearerHeader(token))
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateCategoryDuplicateName() {
	token, _ := suite.registerTestUser()
	suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/categories", map[string]string{
		"name": "Groceries",
		"type": "EXPENSE",
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestGetCategory() {
	token, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/categories/%s", category.ID), "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), category.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestGetCategoryNotFound() {
	token, _ := suite.registerTestUser()

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/categories/4e743e94-6a4b-44d6-aba5-d77c87103ff7", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/categories/not-a-uuid", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoriesAreUserScoped() {
	token, _ := suite.registerTestUser()
	otherToken, _ := suite.registerTestUser()

	category := suite.createTestCategory(otherToken, "Groceries", models.TransactionTypeExpense)

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/categories/%s", category.ID), "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateCategory() {
	token, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)

	// Only the name is sent, the type stays unchanged
	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/categories/%s", category.ID), map[string]string{
		"name": "Household",
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), "Household", response.Data.Name)
	assert.Equal(suite.T(), models.TransactionTypeExpense, response.Data.Type)
}

func (suite *TestSuiteStandard) TestUpdateSystemCategory() {
	token, _ := suite.registerTestUser()

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/categories", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	var system models.Category
	for _, category := range response.Data {
		if category.Name == "Food" {
			system = category
		}
	}
	suite.Require().NotEqual(uuid.Nil, system.ID)

	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/categories/%s", system.ID), map[string]string{
		"name": "Mine now",
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	token, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/categories/%s", category.ID), "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/categories/%s", category.ID), "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteCategoryWithTransactions() {
	token, _ := suite.registerTestUser()
	category := suite.createTestCategory(token, "Groceries", models.TransactionTypeExpense)
	suite.createTestTransaction(token, category.ID, models.TransactionTypeExpense, "12.34", currentMonth().First())

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/categories/%s", category.ID), "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
