// Package apperror maps application failures onto HTTP status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind classifies a failure.
type Kind int

const (
	KindDataAccess Kind = iota + 1
	KindValidation
	KindMalformedRequest
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindDataAccess:
		return "Database error"
	case KindValidation:
		return "Validation error"
	case KindMalformedRequest:
		return "Form rejection error"
	case KindRender:
		return "Template rendering error"
	}
	return "Internal error"
}

// Status returns the HTTP status code responses of this kind carry.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindMalformedRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failure tagged with its kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) && existing.Kind == kind {
		return err
	}
	return &Error{Kind: kind, Err: err}
}

// DataAccess marks err as a store failure.
func DataAccess(err error) error { return wrap(KindDataAccess, err) }

// Validation marks err as rejected input. Validator field errors are
// rewritten into readable per-field messages.
func Validation(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		err = errors.New(strings.Join(msgs, "; "))
	}
	return wrap(KindValidation, err)
}

// MalformedRequest marks err as a request that could not be parsed.
func MalformedRequest(err error) error { return wrap(KindMalformedRequest, err) }

// Render marks err as a template failure.
func Render(err error) error { return wrap(KindRender, err) }

// KindOf reports the kind of err, or zero when err is outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Status returns the HTTP status for err. Unclassified errors are 500.
func Status(err error) int {
	return KindOf(err).Status()
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: must not be empty", field)
	case "min":
		return fmt.Sprintf("%s: length must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s: length must be at most %s characters", field, fe.Param())
	}
	return fmt.Sprintf("%s: failed %s validation", field, fe.Tag())
}
