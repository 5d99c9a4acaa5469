// Package example implements example middleware in an outside package.
package example

import (
	"context"
	"net/http"

	"github.com/advdv/jsonroutes"
	"go.uber.org/zap"
)

// ctxKey type scopes middlware values.
type ctxKey string

// Middleware provides an example for middleware that adds a request scoped logger to the context.
func Middleware(logs *zap.Logger) jsonroutes.Middleware {
	return func(n jsonroutes.BareHandler) jsonroutes.BareHandler {
		return jsonroutes.BareHandlerFunc(func(w jsonroutes.ResponseWriter, r *http.Request) error {
			logs := logs.With(zap.String("method", r.Method), zap.String("path", r.URL.Path))

			return n.ServeBareJSON(w, r.WithContext(context.WithValue(r.Context(), ctxKey("zap"), logs)))
		})
	}
}

// Log returns the logger added by [Middleware], or a no-op logger.
func Log(ctx context.Context) *zap.Logger {
	if v, ok := ctx.Value(ctxKey("zap")).(*zap.Logger); ok {
		return v
	}

	return zap.NewNop()
}
