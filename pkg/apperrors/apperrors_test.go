package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("title", "too short")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("election not found")))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate student id")))
	assert.Equal(t, KindState, KindOf(State("already voted")))
	assert.Equal(t, KindInternal, KindOf(Internal(errors.New("boom"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("untyped")), "untyped errors default to internal")
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("cast vote: %w", State("already voted"))
	assert.Equal(t, KindState, KindOf(err))
	assert.True(t, IsKind(err, KindState))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal error", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{Validation("title", "too short"), http.StatusBadRequest},
		{NotFound("election not found"), http.StatusNotFound},
		{Conflict("duplicate student id"), http.StatusConflict},
		{State("already voted"), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.status, HTTPStatus(tc.err), "%v", tc.err)
	}
}

func TestValidationCarriesField(t *testing.T) {
	err := Validation("studentId", "Invalid student ID format. Use format: YYYY/XXX")
	var appErr *Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "studentId", appErr.Field)
	assert.Equal(t, "Invalid student ID format. Use format: YYYY/XXX", err.Error())
}
