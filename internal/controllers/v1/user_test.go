package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/test"
)

func (suite *TestSuiteStandard) TestGetProfile() {
	token, user := suite.registerTestUser()

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/users/profile", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	assert.Equal(suite.T(), user.ID, response.Data.ID)
	assert.Equal(suite.T(), user.Email, response.Data.Email)
	assert.Equal(suite.T(), "Test", response.Data.Name)
	assert.False(suite.T(), response.Data.CreatedAt.IsZero())
}

func (suite *TestSuiteStandard) TestUpdateProfileName() {
	token, user := suite.registerTestUser()

	recorder := test.Request(suite.T(), http.MethodPatch, "/v1/users/profile", map[string]string{
		"name": "  Janet  ",
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	assert.Equal(suite.T(), "Janet", response.Data.Name)
	assert.Equal(suite.T(), user.Email, response.Data.Email, "the email cannot be changed")
}

func (suite *TestSuiteStandard) TestUpdateProfilePassword() {
	suite.registerTestUserWithEmail("jane@example.com")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var session v1.SessionResponse
	test.DecodeResponse(suite.T(), &recorder, &session)
	suite.Require().NotNil(session.Data)

	recorder = test.Request(suite.T(), http.MethodPatch, "/v1/users/profile", map[string]string{
		"password": "an even longer passphrase",
	}, test.BearerHeader(session.Data.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// The old password no longer works
	recorder = test.Request(suite.T(), http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)

	// The new one does
	recorder = test.Request(suite.T(), http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "jane@example.com",
		"password": "an even longer passphrase",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestUpdateProfileNameAndPassword() {
	token, _ := suite.registerTestUser()

	recorder := test.Request(suite.T(), http.MethodPatch, "/v1/users/profile", map[string]string{
		"name":     "Janet",
		"password": "an even longer passphrase",
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), "Janet", response.Data.Name)
}

func (suite *TestSuiteStandard) TestUpdateProfileInvalid() {
	token, _ := suite.registerTestUser()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"no fields", `{}`},
		{"blank name only", `{ "name": "   " }`},
		{"short password", `{ "password": "tiny" }`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPatch, "/v1/users/profile", tt.body, test.BearerHeader(token))
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestProfilePasswordHashHidden() {
	token, _ := suite.registerTestUser()

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/users/profile", "", test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	assert.NotContains(suite.T(), recorder.Body.String(), "PasswordHash")
	assert.NotContains(suite.T(), recorder.Body.String(), "passwordHash")
}
