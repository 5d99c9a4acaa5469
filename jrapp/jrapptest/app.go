// Package jrapptest provides test helpers for jrapp applications.
//
// It constructs the identical DI graph as [jrapp.NewApp] but uses
// [fxtest.App] which fails the test immediately on DI errors.
//
// Example:
//
//	jrapptest.SetBaseEnv(t, 18081)
//	app := jrapptest.New[TestEnv](t, routing)
//	app.RequireStart()
//	t.Cleanup(app.RequireStop)
package jrapptest

import (
	"testing"

	"github.com/advdv/jsonroutes/jrapp"
	"go.uber.org/fx/fxtest"
)

// App embeds *fxtest.App for testing jrapp applications.
type App struct {
	*fxtest.App
}

// New creates a test app with the same DI graph as [jrapp.NewApp].
func New[E jrapp.Environment](t testing.TB, routing any, opts ...jrapp.Option) *App {
	return &App{App: fxtest.New(t, jrapp.FxOptions[E](routing, opts...)...)}
}
