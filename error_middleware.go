package jsonroutes

import (
	"net/http"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// registration is one call to [ErrorMiddleware.Use] or [ErrorMiddleware.UsePath].
type registration struct {
	prefix   string
	handlers []ErrorHandler
}

// ErrorMiddleware collects error stages. Error stages have to run after all other stages, so registrations
// are held back until [ErrorMiddleware.Install] is called once everything else has been registered.
// Registrations that arrive after installation are installed right away; they still end up after every
// stage registered before them.
type ErrorMiddleware struct {
	mu        sync.Mutex
	installed bool
	pending   []registration
	install   func(...registration) int
}

// Use registers error stages that run for every request.
func (em *ErrorMiddleware) Use(hs ...ErrorHandler) {
	em.UsePath("", hs...)
}

// UsePath registers error stages that only run for requests to 'prefix' or a path below it.
func (em *ErrorMiddleware) UsePath(prefix string, hs ...ErrorHandler) {
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	reg := registration{prefix: strings.TrimSuffix(prefix, "/"), handlers: hs}

	em.mu.Lock()
	defer em.mu.Unlock()

	if !em.installed {
		em.pending = append(em.pending, reg)
		return
	}

	em.install(reg)
}

// Install appends the pending error stages, in registration order, after all stages registered so far and
// returns how many were installed. Only the first call installs anything.
func (em *ErrorMiddleware) Install() int {
	em.mu.Lock()
	defer em.mu.Unlock()

	if em.installed {
		return 0
	}

	em.installed = true
	n := em.install(em.pending...)
	em.pending = nil

	return n
}

// Installed reports whether [ErrorMiddleware.Install] has been called.
func (em *ErrorMiddleware) Installed() bool {
	em.mu.Lock()
	defer em.mu.Unlock()

	return em.installed
}

// Pending returns the number of registrations waiting for installation.
func (em *ErrorMiddleware) Pending() int {
	em.mu.Lock()
	defer em.mu.Unlock()

	return len(em.pending)
}

// ErrorResultHandler returns an error stage that answers with {"error": message}. The status is taken from
// an [*Error] in the chain. Other errors are logged and answered with a generic 500 so internal details
// don't leak. When a result was already sent the error is passed on.
func (rt *Router) ErrorResultHandler() ErrorHandler {
	return ErrorHandlerFunc(func(err error, w ResponseWriter, _ *http.Request) error {
		if w.Sent() {
			return err
		}

		var herr *Error
		if !errors.As(err, &herr) || herr.Code() == CodeUnknown {
			rt.logs.LogUnhandledError(err)

			return rt.SendResult(w, Result{
				Code: http.StatusInternalServerError,
				Data: map[string]string{"error": http.StatusText(http.StatusInternalServerError)},
			})
		}

		return rt.SendResult(w, Result{
			Code: int(herr.Code()),
			Data: map[string]string{"error": herr.Message()},
		})
	})
}
