package jsonroutes

import (
	"log"
	"net/http"
	"sync"
	"sync/atomic"
)

// Router registers JSON endpoints, pre-route middleware and error stages, and dispatches requests through
// them. It implements http.Handler.
type Router struct {
	logs        Logger
	development bool
	mux         *http.ServeMux
	errmw       *ErrorMiddleware

	headers  atomic.Pointer[Headers]
	compiled atomic.Pointer[pipeline]

	mu         sync.Mutex
	routes     []Route
	bindings   map[string]*binding
	stages     []stage
	dispatchAt int
}

// NewRouter creates a new Router with default settings.
func NewRouter() *Router {
	return NewRouterWith(NewStdLogger(log.Default()), http.NewServeMux(), false)
}

// NewRouterWith creates a Router with custom settings. Route matching is delegated to 'base'. In development
// mode JSON results are indented.
func NewRouterWith(logs Logger, base *http.ServeMux, development bool) *Router {
	rt := &Router{
		logs:        logs,
		development: development,
		mux:         base,
		bindings:    map[string]*binding{},
		stages:      []stage{{kind: stageNormal}},
	}

	rt.errmw = &ErrorMiddleware{install: rt.appendErrorStages}

	headers := DefaultHeaders()
	rt.headers.Store(&headers)
	rt.compile()

	return rt
}

// Development reports whether results are pretty printed.
func (rt *Router) Development() bool {
	return rt.development
}

// SetResponseHeaders replaces the headers that are set on every response. The headers are not merged with
// the previous set: headers not in 'h' are no longer sent.
func (rt *Router) SetResponseHeaders(h Headers) {
	c := h.clone()
	rt.headers.Store(&c)
}

// ResponseHeaders returns a copy of the headers that are set on every response.
func (rt *Router) ResponseHeaders() Headers {
	return rt.headers.Load().clone()
}

// ErrorMiddleware returns the registrar for error stages.
func (rt *Router) ErrorMiddleware() *ErrorMiddleware {
	return rt.errmw
}

// ServeHTTP makes the router implement the http.Handler interface.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)
	p := rt.compiled.Load()

	err := serveRecovered(p.normal, rw, r)
	err = p.handleError(err, rw, r)
	if err == nil {
		return
	}

	rt.logs.LogUnhandledError(err)
	if !rw.Sent() {
		// there is no error stage left to answer so the client gets the standard text.
		http.Error(rw,
			http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError)
	}
}
