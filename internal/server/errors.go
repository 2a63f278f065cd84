package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/credibility-report/internal/analysis"
	"github.com/jonathan/credibility-report/internal/export"
	"github.com/jonathan/credibility-report/internal/page"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var fieldErrs validator.ValidationErrors
	var requestErr *analysis.RequestError
	var redirectErr *page.RedirectError
	var unavailableErr *export.UnavailableError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &redirectErr):
		return http.StatusSeeOther
	case errors.As(err, &unavailableErr):
		return http.StatusConflict
	case errors.As(err, &requestErr):
		switch {
		case requestErr.Status == 0:
			return http.StatusBadGateway
		case requestErr.Status >= 500:
			return http.StatusBadGateway
		default:
			return requestErr.Status
		}
	default:
		return http.StatusInternalServerError
	}
}
