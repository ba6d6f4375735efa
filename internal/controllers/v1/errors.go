package v1

import (
	"errors"
	"net/http"

	"github.com/centsible/backend/internal/models"
)

// httpError is the response body for all requests that did not succeed.
type httpError struct {
	Error string `json:"error" example:"there is no category matching your query"`
}

// status maps an error to the HTTP status code of the response.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrCategoryNameInUse) ||
		errors.Is(err, models.ErrBudgetNotUnique) ||
		errors.Is(err, models.ErrEmailAlreadyRegistered) {
		return http.StatusConflict
	}

	if errors.Is(err, models.ErrCategoryNotOwned) {
		return http.StatusForbidden
	}

	if errors.Is(err, models.ErrWrongCredentials) ||
		errors.Is(err, errNoToken) ||
		errors.Is(err, errTokenInvalid) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

var (
	errNoToken      = errors.New("this endpoint requires a bearer token in the Authorization header")
	errTokenInvalid = errors.New("your session token is invalid or expired, please log in again")
)

// errProfileNoFields occurs when a profile update sets neither
// the name nor the password.
var errProfileNoFields = errors.New("at least one of name or password must be set")

// Query string errors
var (
	errSortFieldInvalid   = errors.New("transactions can only be sorted by date, amount or createdAt")
	errSortOrderInvalid   = errors.New("the sort order must be asc or desc")
	errMonthNotSetInQuery = errors.New("the month query parameter must be set")
	errYearNotSetInQuery  = errors.New("the year query parameter must be set")
)
