package jsonroutes

import (
	"context"
	"net/http"
)

// Handler is a JSON endpoint. It sends its response through [Router.SendResult] and reports failures by
// returning an error, which the router hands to the installed error stages.
type Handler interface {
	ServeJSON(ctx context.Context, w ResponseWriter, r *http.Request) error
}

// HandlerFunc allow casting a function to implement [Handler].
type HandlerFunc func(context.Context, ResponseWriter, *http.Request) error

// ServeJSON implements the [Handler] interface.
func (f HandlerFunc) ServeJSON(ctx context.Context, w ResponseWriter, r *http.Request) error {
	return f(ctx, w, r)
}

// BareHandler describes how middleware serves HTTP requests. Unlike a [Handler] it does not receive the
// context as a separate argument, middleware reads and replaces it on the request.
type BareHandler interface {
	ServeBareJSON(w ResponseWriter, r *http.Request) error
}

// BareHandlerFunc allow casting a function to an implementation of [BareHandler].
type BareHandlerFunc func(ResponseWriter, *http.Request) error

// ServeBareJSON implements the [BareHandler] interface.
func (f BareHandlerFunc) ServeBareJSON(w ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// ErrorHandler is an error-handling stage. It only runs when an earlier stage failed. Returning nil marks
// the failure as handled, returning an error (the same or another one) passes it to the next error stage.
type ErrorHandler interface {
	ServeJSONError(err error, w ResponseWriter, r *http.Request) error
}

// ErrorHandlerFunc allow casting a function to implement [ErrorHandler].
type ErrorHandlerFunc func(error, ResponseWriter, *http.Request) error

// ServeJSONError implements the [ErrorHandler] interface.
func (f ErrorHandlerFunc) ServeJSONError(err error, w ResponseWriter, r *http.Request) error {
	return f(err, w, r)
}

// ToBare converts a handler 'h' into a bare handler by passing it the request's context.
func ToBare(h Handler) BareHandler {
	return BareHandlerFunc(func(w ResponseWriter, r *http.Request) error {
		return h.ServeJSON(r.Context(), w, r)
	})
}
