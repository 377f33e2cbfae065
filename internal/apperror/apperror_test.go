package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		name   string
		err    error
		status int
		prefix string
	}{
		{"data access", DataAccess(cause), http.StatusInternalServerError, "Database error: "},
		{"validation", Validation(cause), http.StatusBadRequest, "Validation error: "},
		{"malformed", MalformedRequest(cause), http.StatusBadRequest, "Form rejection error: "},
		{"render", Render(cause), http.StatusInternalServerError, "Template rendering error: "},
		{"unclassified", cause, http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.status, Status(tc.err))
			require.Equal(t, tc.prefix+"boom", tc.err.Error())
		})
	}
}

func TestConstructorsKeepNil(t *testing.T) {
	require.NoError(t, DataAccess(nil))
	require.NoError(t, Validation(nil))
	require.NoError(t, MalformedRequest(nil))
	require.NoError(t, Render(nil))
}

func TestWrappedCauseIsReachable(t *testing.T) {
	err := fmt.Errorf("list todos: %w", DataAccess(sql.ErrConnDone))
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.Equal(t, KindDataAccess, KindOf(err))
	require.Equal(t, http.StatusInternalServerError, Status(err))
}

func TestSameKindIsNotDoubleWrapped(t *testing.T) {
	err := DataAccess(DataAccess(errors.New("x")))
	require.Equal(t, "Database error: x", err.Error())
}

func TestValidationFieldMessages(t *testing.T) {
	type form struct {
		Description string `validate:"required,min=1,max=25"`
	}
	v := validator.New()

	err := Validation(v.Struct(form{}))
	require.Equal(t, "Validation error: description: must not be empty", err.Error())
	require.Equal(t, http.StatusBadRequest, Status(err))

	err = Validation(v.Struct(form{Description: "abcdefghijklmnopqrstuvwxyz"}))
	require.Equal(t, "Validation error: description: length must be at most 25 characters", err.Error())

	type short struct {
		Code string `validate:"min=3"`
	}
	err = Validation(v.Struct(short{Code: "ab"}))
	require.Equal(t, "Validation error: code: length must be at least 3 characters", err.Error())
}
