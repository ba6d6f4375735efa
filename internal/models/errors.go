package models

import (
	"errors"
)

var (
	// ErrGeneral is returned when executing a request fails for a reason we
	// cannot give the user more details about.
	ErrGeneral = errors.New("an error occurred on the server during your request")

	// ErrResourceNotFound is wrapped with the name of the resource that was
	// not found, e.g. "there is no budget matching your query".
	ErrResourceNotFound = errors.New("there is no")
)

// Category errors
var (
	ErrCategoryNameInUse       = errors.New("a category with this name already exists")
	ErrCategoryNotOwned        = errors.New("system categories cannot be changed or deleted")
	ErrCategoryHasTransactions = errors.New("the category still has transactions referencing it")
	ErrCategoryTypeMismatch    = errors.New("the transaction type does not match the category type")
)

// Transaction errors
var (
	ErrAmountNotPositive = errors.New("amounts must be 0.01 or larger")
	ErrAmountNotCents    = errors.New("amounts must not have more than two decimal places")
	ErrDateInFuture      = errors.New("the transaction date must not be in the future")
	ErrTypeInvalid       = errors.New("the transaction type must be INCOME or EXPENSE")
)

// Budget errors
var (
	ErrBudgetNotExpenseCategory = errors.New("budgets can only be set for expense categories")
	ErrBudgetPastMonth          = errors.New("budgets cannot be set for past months")
	ErrBudgetNotUnique          = errors.New("a budget for this category and month already exists")
	ErrMonthOutOfRange          = errors.New("the month must be between 1 and 12")
	ErrYearOutOfRange           = errors.New("the year must be between 2000 and 2100")
)

// User errors
var (
	ErrEmailAlreadyRegistered = errors.New("this email is already registered")
	ErrWrongCredentials       = errors.New("the email or password is incorrect")
)
