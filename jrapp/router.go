package jrapp

import (
	"net/http"

	"github.com/advdv/jsonroutes"
	"go.uber.org/zap"
)

// Router is an alias for jsonroutes.Router.
type Router = jsonroutes.Router

// NewRouter creates the app's router. Request timeouts and body parsing are registered first, so they run
// ahead of any middleware the app adds.
func NewRouter(env Environment, logger *zap.Logger) *Router {
	rt := jsonroutes.NewRouterWith(
		newZapRouterLogger(logger),
		http.NewServeMux(),
		env.development(),
	)

	rt.Use(
		WithRequestTimeout(env.requestTimeout()),
		WithBodyParsing(env.maxBodyBytes()),
	)

	if p := env.indexPath(); p != "" {
		rt.Add(http.MethodGet, p, rt.RoutesHandler())
	}

	return rt
}
