package jrapptest

import (
	"net/http"
	"net/http/httptest"

	"github.com/advdv/jsonroutes"
	"github.com/advdv/jsonroutes/jrapp"
	"go.uber.org/zap"
)

// CallHandler invokes a [jsonroutes.HandlerFunc] directly and returns the recorded response. The request
// context carries a no-op logger so [jrapp.Log] can be used. It panics when the handler returns an error,
// error stages are not run.
func CallHandler(handler jsonroutes.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	w := jsonroutes.NewResponseWriter(rec)

	req = req.WithContext(jrapp.WithLogger(req.Context(), zap.NewNop()))
	if err := handler(req.Context(), w, req); err != nil {
		panic("jrapptest: handler returned error: " + err.Error())
	}

	return rec
}
