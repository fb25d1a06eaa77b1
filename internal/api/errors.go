package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tasksapi/tasks-api/internal/api/shared"
	"github.com/tasksapi/tasks-api/internal/domain"
	"github.com/tasksapi/tasks-api/internal/service"
	"github.com/tasksapi/tasks-api/internal/store"
)

// Validation error types reported in the "type" field of a 422 detail.
const (
	errTypeMissing         = "missing"
	errTypeStringTooLong   = "string_too_long"
	errTypeStringType      = "string_type"
	errTypeBoolType        = "bool_type"
	errTypeIntParsing      = "int_parsing"
	errTypeJSONInvalid     = "json_invalid"
	errTypeModelAttributes = "model_attributes_type"
	errTypeValueError      = "value_error"
)

// maxLengths maps length-limited body fields to their limit.
var maxLengths = map[string]int{
	"title":       domain.MaxTitleLength,
	"description": domain.MaxDescriptionLength,
}

// RequestValidationError carries every input problem found in a request.
// It matches domain.ErrValidation through errors.Is.
type RequestValidationError struct {
	Details []ValidationErrorDetail
}

// Error implements the error interface.
func (e *RequestValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, strings.Join(d.Loc, ".")+": "+d.Msg)
	}
	return "request validation failed: " + strings.Join(parts, "; ")
}

// Unwrap returns domain.ErrValidation.
func (e *RequestValidationError) Unwrap() error {
	return domain.ErrValidation
}

func newRequestValidationError(details ...ValidationErrorDetail) *RequestValidationError {
	return &RequestValidationError{Details: details}
}

func missingDetail(loc ...string) ValidationErrorDetail {
	return ValidationErrorDetail{Loc: loc, Msg: "Field required", Type: errTypeMissing}
}

func tooLongDetail(field string, limit int) ValidationErrorDetail {
	return ValidationErrorDetail{
		Loc:  []string{"body", field},
		Msg:  fmt.Sprintf("String should have at most %d characters", limit),
		Type: errTypeStringTooLong,
	}
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusNotFound:
		return MessageTaskNotFound
	case http.StatusUnprocessableEntity:
		return "Validation error"
	default:
		return MessageInternalError
	}
}

// validationDetails converts a validation error into 422 detail entries.
// It understands RequestValidationError, validator.ValidationErrors and
// domain.ValidationError.
func validationDetails(err error) []ValidationErrorDetail {
	var reqErr *RequestValidationError
	if errors.As(err, &reqErr) {
		return reqErr.Details
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]ValidationErrorDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fieldErrorDetail(fe))
		}
		return details
	}

	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) {
		if limit, ok := maxLengths[domainErr.Field]; ok && errors.Is(err, domain.ErrFieldTooLong) {
			return []ValidationErrorDetail{tooLongDetail(domainErr.Field, limit)}
		}
		return []ValidationErrorDetail{{
			Loc:  []string{"body", domainErr.Field},
			Msg:  domainErr.Message,
			Type: errTypeValueError,
		}}
	}

	return []ValidationErrorDetail{{
		Loc:  []string{"body"},
		Msg:  "Validation error",
		Type: errTypeValueError,
	}}
}

// fieldErrorDetail maps a single validator field error to a detail entry.
func fieldErrorDetail(fe validator.FieldError) ValidationErrorDetail {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return missingDetail("body", field)
	case "max":
		if limit, ok := maxLengths[field]; ok {
			return tooLongDetail(field, limit)
		}
		return ValidationErrorDetail{
			Loc:  []string{"body", field},
			Msg:  "Value is too long",
			Type: errTypeStringTooLong,
		}
	default:
		return ValidationErrorDetail{
			Loc:  []string{"body", field},
			Msg:  "Invalid value",
			Type: errTypeValueError,
		}
	}
}

// HandleAPIError writes the response for err: a 422 with field details for
// validation errors, otherwise a {"detail": ...} body with the mapped status.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	if status == http.StatusUnprocessableEntity {
		shared.RespondWithErrorAndLog(w, r, status,
			ValidationErrorResponse{Detail: validationDetails(err)}, err)
		return
	}

	shared.RespondWithErrorAndLog(w, r, status,
		shared.DetailResponse{Detail: GetSafeErrorMessage(err)}, err)
}
