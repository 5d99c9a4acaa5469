package jsonroutes

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

type stageKind int

const (
	// stageNormal runs for every request: pre-route middleware and the route dispatcher.
	stageNormal stageKind = iota
	// stageErrorHandling only runs once an earlier stage failed.
	stageErrorHandling
)

// stage is one entry of the router's ordered pipeline. A normal stage without middleware is the route
// dispatcher.
type stage struct {
	kind   stageKind
	mw     Middleware
	prefix string
	eh     ErrorHandler
}

// matches reports whether an error stage applies to the request's path.
func (s stage) matches(r *http.Request) bool {
	if s.prefix == "" || s.prefix == "/" {
		return true
	}

	return r.URL.Path == s.prefix || strings.HasPrefix(r.URL.Path, s.prefix+"/")
}

// pipeline is an immutable snapshot of the stages, compiled for serving.
type pipeline struct {
	normal BareHandler
	errs   []stage
}

func (p *pipeline) handleError(err error, w ResponseWriter, r *http.Request) error {
	for _, s := range p.errs {
		if err == nil {
			return nil
		}

		if s.matches(r) {
			err = callErrorHandler(s.eh, err, w, r)
		}
	}

	return err
}

// Use registers pre-route middleware. It always runs ahead of route matching, also when it is registered
// after routes were added or after serving started.
func (rt *Router) Use(mw ...Middleware) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	for _, m := range mw {
		rt.stages = slices.Insert(rt.stages, rt.dispatchAt, stage{kind: stageNormal, mw: m})
		rt.dispatchAt++
	}

	rt.compile()
}

// appendErrorStages tags the handlers of each registration as error stages and appends them after every
// stage registered so far.
func (rt *Router) appendErrorStages(regs ...registration) int {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	var n int
	for _, reg := range regs {
		for _, h := range reg.handlers {
			if h == nil {
				continue
			}

			rt.stages = append(rt.stages, stage{kind: stageErrorHandling, prefix: reg.prefix, eh: h})
			n++
		}
	}

	rt.compile()

	return n
}

// compile stores a new pipeline snapshot, must be called with mu held.
func (rt *Router) compile() {
	mws := lo.FilterMap(rt.stages, func(s stage, _ int) (Middleware, bool) {
		return s.mw, s.kind == stageNormal && s.mw != nil
	})

	rt.compiled.Store(&pipeline{
		normal: Wrap(BareHandlerFunc(rt.dispatch), mws...),
		errs: lo.Filter(rt.stages, func(s stage, _ int) bool {
			return s.kind == stageErrorHandling
		}),
	})
}

type dispatchKey struct{}

// dispatchState carries the outcome of a route binding back through the base mux, which has no way to
// return errors itself.
type dispatchState struct{ err error }

func (rt *Router) dispatch(w ResponseWriter, r *http.Request) error {
	st := &dispatchState{}
	rt.mux.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), dispatchKey{}, st)))

	return st.err
}

func serveRecovered(h BareHandler, w ResponseWriter, r *http.Request) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = recoveredError(rec)
		}
	}()

	return h.ServeBareJSON(w, r)
}

func callHandler(h Handler, w ResponseWriter, r *http.Request) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = recoveredError(rec)
		}
	}()

	return h.ServeJSON(r.Context(), w, r)
}

// callErrorHandler runs an error stage. A panicking stage fails with the panic, the error it was handling
// is kept as secondary error.
func callErrorHandler(h ErrorHandler, err error, w ResponseWriter, r *http.Request) (res error) {
	defer func() {
		if rec := recover(); rec != nil {
			res = errors.WithSecondaryError(recoveredError(rec), err)
		}
	}()

	return h.ServeJSONError(err, w, r)
}

// recoveredError turns a panic value into an error. http.ErrAbortHandler keeps its meaning and is re-panicked.
func recoveredError(rec any) error {
	if rec == http.ErrAbortHandler { //nolint:errorlint // must compare directly
		panic(rec)
	}

	if err, ok := rec.(error); ok {
		return errors.Wrap(err, "jsonroutes: recovered from panic")
	}

	return errors.Newf("jsonroutes: recovered from panic: %v", rec)
}
