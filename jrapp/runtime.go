package jrapp

import (
	"net/http"

	"github.com/advdv/jsonroutes"
)

// Runtime provides access to app-scoped dependencies.
// Inject this into handler constructors via fx instead of pulling from context.
//
// Example:
//
//	type Handlers struct {
//	    rt *jrapp.Runtime[Env]
//	}
//
//	func (h *Handlers) GetItem(ctx context.Context, w jsonroutes.ResponseWriter, r *http.Request) error {
//	    jrapp.Log(ctx).Info("get item", zap.String("table", h.rt.Env().TableName))
//	    return h.rt.SendResult(w, jsonroutes.Result{Data: item})
//	}
type Runtime[E Environment] struct {
	env    E
	router *Router
}

// NewRuntime creates a new Runtime with the given dependencies.
func NewRuntime[E Environment](env E, router *Router) *Runtime[E] {
	return &Runtime[E]{env: env, router: router}
}

// Env returns the environment configuration.
func (r *Runtime[E]) Env() E {
	return r.env
}

// Router returns the app's router.
func (r *Runtime[E]) Router() *Router {
	return r.router
}

// SendResult sends 'res' through the app's router.
func (r *Runtime[E]) SendResult(w http.ResponseWriter, res jsonroutes.Result) error {
	return r.router.SendResult(w, res)
}
