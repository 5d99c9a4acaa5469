package jsonroutes

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// ErrNextRoute can be returned by a route handler to pass the request on to the next handler that was
// registered for the same method and path. When no such handler remains the request is answered as not found.
var ErrNextRoute = errors.New("jsonroutes: next route")

// Code is an error code that mirrors the http status codes. Error stages use it to decide on the status
// of the error response.
type Code int

const (
	CodeUnknown                       Code = 0
	CodeBadRequest                    Code = http.StatusBadRequest
	CodeUnauthorized                  Code = http.StatusUnauthorized
	CodePaymentRequired               Code = http.StatusPaymentRequired
	CodeForbidden                     Code = http.StatusForbidden
	CodeNotFound                      Code = http.StatusNotFound
	CodeMethodNotAllowed              Code = http.StatusMethodNotAllowed
	CodeNotAcceptable                 Code = http.StatusNotAcceptable
	CodeRequestTimeout                Code = http.StatusRequestTimeout
	CodeConflict                      Code = http.StatusConflict
	CodeGone                          Code = http.StatusGone
	CodeLengthRequired                Code = http.StatusLengthRequired
	CodePreconditionFailed            Code = http.StatusPreconditionFailed
	CodeRequestEntityTooLarge         Code = http.StatusRequestEntityTooLarge
	CodeUnsupportedMediaType          Code = http.StatusUnsupportedMediaType
	CodeUnprocessableEntity           Code = http.StatusUnprocessableEntity
	CodeLocked                        Code = http.StatusLocked
	CodeFailedDependency              Code = http.StatusFailedDependency
	CodeTooEarly                      Code = http.StatusTooEarly
	CodePreconditionRequired          Code = http.StatusPreconditionRequired
	CodeTooManyRequests               Code = http.StatusTooManyRequests
	CodeUnavailableForLegalReasons    Code = http.StatusUnavailableForLegalReasons
	CodeInternalServerError           Code = http.StatusInternalServerError
	CodeNotImplemented                Code = http.StatusNotImplemented
	CodeBadGateway                    Code = http.StatusBadGateway
	CodeServiceUnavailable            Code = http.StatusServiceUnavailable
	CodeGatewayTimeout                Code = http.StatusGatewayTimeout
	CodeInsufficientStorage           Code = http.StatusInsufficientStorage
	CodeNetworkAuthenticationRequired Code = http.StatusNetworkAuthenticationRequired
)

// Error is a failure that carries the HTTP status it should be answered with.
type Error struct {
	code Code
	err  error
}

// NewError inits a new error given the error code.
func NewError(c Code, underlying error) *Error {
	return &Error{c, underlying}
}

func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.err }

// Message returns the message of the underlying error, without the status text prefix.
func (e *Error) Message() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

func (e *Error) Error() string {
	status := http.StatusText(int(e.Code()))
	if status == "" {
		status = "Unknown"
	}

	return fmt.Sprintf("%s: %s", status, e.Message())
}

// CodeOf returns the error's status code if it is or wraps an [*Error] and
// [CodeUnknown] otherwise.
func CodeOf(err error) Code {
	var herr *Error
	if errors.As(err, &herr) {
		return herr.Code()
	}

	return CodeUnknown
}
