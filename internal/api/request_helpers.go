package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/tasksapi/tasks-api/internal/api/shared"
)

// taskIDParam is the chi route parameter holding the task identifier.
const taskIDParam = "id"

// bodyFieldOrder fixes the order of 422 detail entries for body fields.
var bodyFieldOrder = map[string]int{
	"title":       0,
	"description": 1,
	"completed":   2,
}

var jsonNull = []byte("null")

// getPathTaskID extracts the integer task identifier from the URL path.
// Any integer is accepted; unknown identifiers are the service's concern.
func getPathTaskID(r *http.Request) (int, *RequestValidationError) {
	raw := chi.URLParam(r, taskIDParam)

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newRequestValidationError(ValidationErrorDetail{
			Loc:  []string{"path", "task_id"},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: errTypeIntParsing,
		})
	}

	return id, nil
}

// decodeTaskRequest reads and validates a task body. Type checks happen per
// field so that every problem is reported at once; required and length
// checks run through the shared validator afterwards.
func decodeTaskRequest(r *http.Request) (*TaskRequest, *RequestValidationError) {
	var raw map[string]json.RawMessage
	if err := shared.DecodeJSON(r, &raw); err != nil {
		return nil, newRequestValidationError(bodyDecodeDetail(err))
	}
	if raw == nil {
		return nil, newRequestValidationError(missingDetail("body"))
	}

	req := &TaskRequest{}
	var details []ValidationErrorDetail
	typeFailed := make(map[string]bool)

	for _, field := range []struct {
		name string
		dst  **string
	}{
		{"title", &req.Title},
		{"description", &req.Description},
	} {
		value, ok := raw[field.name]
		if !ok {
			continue
		}
		var s string
		if bytes.Equal(value, jsonNull) || json.Unmarshal(value, &s) != nil {
			typeFailed[field.name] = true
			details = append(details, ValidationErrorDetail{
				Loc:  []string{"body", field.name},
				Msg:  "Input should be a valid string",
				Type: errTypeStringType,
			})
			continue
		}
		*field.dst = &s
	}

	if value, ok := raw["completed"]; ok && !bytes.Equal(value, jsonNull) {
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			details = append(details, ValidationErrorDetail{
				Loc:  []string{"body", "completed"},
				Msg:  "Input should be a valid boolean",
				Type: errTypeBoolType,
			})
		} else {
			req.Completed = &b
		}
	}

	if err := shared.ValidateRequest(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, newRequestValidationError(validationDetails(err)...)
		}
		for _, fe := range fieldErrs {
			if typeFailed[fe.Field()] {
				continue
			}
			details = append(details, fieldErrorDetail(fe))
		}
	}

	if len(details) > 0 {
		sort.SliceStable(details, func(i, j int) bool {
			return bodyFieldOrder[details[i].Loc[1]] < bodyFieldOrder[details[j].Loc[1]]
		})
		return nil, newRequestValidationError(details...)
	}

	return req, nil
}

// bodyDecodeDetail classifies a failure to decode the body as a JSON object.
func bodyDecodeDetail(err error) ValidationErrorDetail {
	if errors.Is(err, io.EOF) {
		return missingDetail("body")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return ValidationErrorDetail{
			Loc:  []string{"body"},
			Msg:  "Input should be a valid dictionary or object to extract fields from",
			Type: errTypeModelAttributes,
		}
	}

	return ValidationErrorDetail{
		Loc:  []string{"body"},
		Msg:  "JSON decode error",
		Type: errTypeJSONInvalid,
	}
}

// mergeValidationErrors combines path and body problems into one error,
// path entries first. Returns nil when both are nil.
func mergeValidationErrors(errs ...*RequestValidationError) *RequestValidationError {
	var details []ValidationErrorDetail
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Details...)
		}
	}
	if len(details) == 0 {
		return nil
	}
	return newRequestValidationError(details...)
}
