package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"spacy/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("invalid body")),
			code:    http.StatusBadRequest,
			message: "invalid body",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("End time must be after start time"),
			code:    http.StatusBadRequest,
			message: "End time must be after start time",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("You can only update your own spaces"),
			code:    http.StatusUnauthorized,
			message: "You can only update your own spaces",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("nope"),
			code:    http.StatusForbidden,
			message: "nope",
		},
		{
			name:    "not found",
			err:     failure.NotFound("Reservation not found"),
			code:    http.StatusNotFound,
			message: "Reservation not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("duplicate"),
			code:    http.StatusConflict,
			message: "duplicate",
		},
		{
			name:    "internal",
			err:     failure.InternalError(errors.New("boom")),
			code:    http.StatusInternalServerError,
			message: "boom",
		},
		{
			name:    "unimplemented",
			err:     failure.Unimplemented("Export"),
			code:    http.StatusNotImplemented,
			message: "Export",
		},
		{
			name:    "upstream",
			err:     failure.Upstream("razorpay", errors.New("timeout")),
			code:    http.StatusBadGateway,
			message: "razorpay: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
	assert.NoError(t, failure.Upstream("stripe", nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to cancel reservation: %w", failure.NotFound("Reservation not found"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(failure.ForbiddenError))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("password exceeds 72 bytes")

	assert.ErrorIs(t, failure.BadRequest(cause), cause)
	assert.ErrorIs(t, failure.Upstream("stripe", cause), cause)
	assert.NoError(t, errors.Unwrap(failure.NotFound("Space not found")))
}
