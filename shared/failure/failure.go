// Package failure carries an HTTP status alongside an error message so
// handlers can map service errors without knowing where they came from.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	cause error
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the error a failure was built from, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

func withCode(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

func fromError(code int, prefix string, err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: code, Message: prefix + err.Error(), cause: err}
}

func BadRequest(err error) error {
	return fromError(http.StatusBadRequest, "", err)
}

func BadRequestFromString(message string) error {
	return withCode(http.StatusBadRequest, message)
}

func Unauthorized(message string) error {
	return withCode(http.StatusUnauthorized, message)
}

func Forbidden(message string) error {
	return withCode(http.StatusForbidden, message)
}

func NotFound(message string) error {
	return withCode(http.StatusNotFound, message)
}

func Conflict(message string) error {
	return withCode(http.StatusConflict, message)
}

func InternalError(err error) error {
	return fromError(http.StatusInternalServerError, "", err)
}

func Unimplemented(operation string) error {
	return withCode(http.StatusNotImplemented, operation)
}

// Upstream reports a payment provider or other remote dependency failing.
func Upstream(provider string, err error) error {
	return fromError(http.StatusBadGateway, provider+": ", err)
}

// GetCode finds the outermost Failure in err's chain; anything else is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
