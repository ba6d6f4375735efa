package models_test

import (
	"github.com/stretchr/testify/assert"

	"github.com/centsible/backend/internal/models"
)

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := models.User{Email: "  Jane@Example.COM ", Name: " Jane "}
	suite.Require().Nil(user.SetPassword("correct horse battery staple"))
	suite.Require().Nil(models.DB.Create(&user).Error)

	assert.Equal(suite.T(), "jane@example.com", user.Email)
	assert.Equal(suite.T(), "Jane", user.Name)

	// Lookup is case insensitive
	found, err := models.UserByEmail(models.DB, "JANE@example.com")
	suite.Require().Nil(err)
	assert.Equal(suite.T(), user.ID, found.ID)
}

func (suite *TestSuiteStandard) TestUserPassword() {
	user := models.User{Email: "jane@example.com"}
	suite.Require().Nil(user.SetPassword("correct horse battery staple"))

	assert.True(suite.T(), user.CheckPassword("correct horse battery staple"))
	assert.False(suite.T(), user.CheckPassword("incorrect horse"))
	assert.NotContains(suite.T(), user.PasswordHash, "correct horse")
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	_ = suite.createTestUser()

	user := models.User{Email: "jane@example.com"}
	suite.Require().Nil(user.SetPassword("correct horse battery staple"))
	suite.Require().Nil(models.DB.Create(&user).Error)

	duplicate := models.User{Email: "Jane@Example.com"}
	suite.Require().Nil(duplicate.SetPassword("correct horse battery staple"))

	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrEmailAlreadyRegistered)
}
