package jsonroutes

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Route is a registered endpoint.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

var methods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
	http.MethodConnect: {},
	http.MethodTrace:   {},
}

// Add registers a JSON endpoint. The method is case-insensitive and a missing leading slash is added to
// the path, no other normalization takes place. The path may use the wildcards of [http.ServeMux]. A path
// ending in a slash matches only itself, use a "{name...}" wildcard to match everything below it. Adding
// the same method and path again is allowed: the handlers are tried in the order they were added.
// Distinct paths follow the matching rules of [http.ServeMux]: the most specific pattern wins, not the
// first one added, and paths that conflict (such as "/{a}/x" and "/x/{b}") or are malformed make Add
// panic.
func (rt *Router) Add(method, path string, h Handler) {
	m := strings.ToUpper(method)
	if _, ok := methods[m]; !ok {
		panic("jsonroutes: unsupported method: " + method)
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	route := Route{Method: m, Path: path}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	pattern := m + " " + path
	if strings.HasSuffix(path, "/") {
		pattern += "{$}"
	}
	b, ok := rt.bindings[pattern]
	if !ok {
		b = &binding{rt: rt, route: route}
		b.handlers.Store(&[]Handler{})
		rt.mux.Handle(pattern, b)
		rt.bindings[pattern] = b
	}

	hs := append(slices.Clone(*b.handlers.Load()), h)
	b.handlers.Store(&hs)
	rt.routes = append(rt.routes, route)
}

// AddFunc registers a function as a JSON endpoint, see [Router.Add].
func (rt *Router) AddFunc(method, path string, h HandlerFunc) {
	rt.Add(method, path, h)
}

// Routes returns the registered endpoints in the order they were added.
func (rt *Router) Routes() []Route {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	return append(make([]Route, 0, len(rt.routes)), rt.routes...)
}

// RoutesHandler returns a handler that sends the registered endpoints as a JSON array.
func (rt *Router) RoutesHandler() Handler {
	return HandlerFunc(func(_ context.Context, w ResponseWriter, _ *http.Request) error {
		return rt.SendResult(w, Result{Data: rt.Routes()})
	})
}

// binding serves all handlers added for one method and path.
type binding struct {
	rt       *Router
	route    Route
	handlers atomic.Pointer[[]Handler]
}

func (b *binding) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)
	err := b.serve(rw, r)

	if st, ok := r.Context().Value(dispatchKey{}).(*dispatchState); ok {
		st.err = err
		return
	}

	// the base mux was served directly, not through the router.
	if err != nil {
		b.rt.logs.LogUnhandledError(err)
		if !rw.Sent() {
			http.Error(rw,
				http.StatusText(http.StatusInternalServerError),
				http.StatusInternalServerError)
		}
	}
}

func (b *binding) serve(w ResponseWriter, r *http.Request) error {
	for _, h := range *b.handlers.Load() {
		b.rt.headers.Load().apply(w)

		err := callHandler(h, w, r)
		if errors.Is(err, ErrNextRoute) {
			continue
		}

		if err == nil && !w.Sent() {
			b.rt.logs.LogMissingResult(b.route.Method, b.route.Path)
		}

		return err
	}

	http.NotFound(w, r)

	return nil
}
