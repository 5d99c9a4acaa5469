package jrapp_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/advdv/jsonroutes"
	"github.com/advdv/jsonroutes/jrapp"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

type createItem struct {
	Name string `json:"name"`
}

func bodyRouter(t *testing.T, limit int64) *jsonroutes.Router {
	t.Helper()

	rt := jsonroutes.NewRouterWith(jsonroutes.NewTestLogger(t), http.NewServeMux(), false)
	rt.Use(jrapp.WithBodyParsing(limit))

	rt.AddFunc("POST", "/raw", func(ctx context.Context, w jsonroutes.ResponseWriter, _ *http.Request) error {
		body := jrapp.Body(ctx)
		return rt.SendResult(w, jsonroutes.Result{Data: map[string]any{
			"exists": body.Exists(),
			"name":   body.Get("name").String(),
		}})
	})
	rt.AddFunc("POST", "/decode", func(ctx context.Context, w jsonroutes.ResponseWriter, _ *http.Request) error {
		var item createItem
		if err := jrapp.DecodeBody(ctx, &item); err != nil {
			return err
		}

		if item.Name == "" {
			return jsonroutes.NewError(jsonroutes.CodeUnprocessableEntity, errors.New("name is required"))
		}

		return rt.SendResult(w, jsonroutes.Result{Code: http.StatusCreated, Data: item})
	})
	rt.AddFunc("POST", "/form", func(_ context.Context, w jsonroutes.ResponseWriter, r *http.Request) error {
		return rt.SendResult(w, jsonroutes.Result{Data: r.Form.Get("name")})
	})

	rt.AddFunc("POST", "/reread", func(_ context.Context, w jsonroutes.ResponseWriter, r *http.Request) error {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return err
		}

		return rt.SendResult(w, jsonroutes.Result{Data: string(raw)})
	})
	rt.AddFunc("GET", "/query", func(_ context.Context, w jsonroutes.ResponseWriter, r *http.Request) error {
		return rt.SendResult(w, jsonroutes.Result{Data: r.Form.Get("name")})
	})

	rt.ErrorMiddleware().Use(rt.ErrorResultHandler())
	rt.ErrorMiddleware().Install()

	return rt
}

func post(rt http.Handler, path, contentType, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rt.ServeHTTP(rec, req)

	return rec
}

func TestBodyParsing(t *testing.T) {
	rt := bodyRouter(t, 32)

	t.Run("json body", func(t *testing.T) {
		rec := post(rt, "/raw", "application/json; charset=utf-8", `{"name":"widget"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"exists":true,"name":"widget"}`, rec.Body.String())
	})

	t.Run("json body can be read again", func(t *testing.T) {
		rec := post(rt, "/reread", "application/json", `{"name":"widget"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, `"{\"name\":\"widget\"}"`, rec.Body.String())
	})

	t.Run("no body", func(t *testing.T) {
		rec := post(rt, "/raw", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"exists":false,"name":""}`, rec.Body.String())
	})

	t.Run("invalid json", func(t *testing.T) {
		rec := post(rt, "/raw", "application/json", `{"name":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, `{"error":"request body is not valid JSON"}`, rec.Body.String())
	})

	t.Run("too large", func(t *testing.T) {
		rec := post(rt, "/raw", "application/json", `{"name":"`+strings.Repeat("x", 64)+`"}`)
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		require.Equal(t, `{"error":"request body exceeds 32 bytes"}`, rec.Body.String())
	})

	t.Run("too large form", func(t *testing.T) {
		rec := post(rt, "/form", "application/x-www-form-urlencoded", "name="+strings.Repeat("x", 64))
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("form body", func(t *testing.T) {
		rec := post(rt, "/form", "application/x-www-form-urlencoded", "name=widget")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, `"widget"`, rec.Body.String())
	})

	t.Run("query", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query?name=widget", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, `"widget"`, rec.Body.String())

		rec = httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query?name=%zz", nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "failed to parse form")
	})

	t.Run("other content types are left alone", func(t *testing.T) {
		rec := post(rt, "/raw", "text/plain", `{"name":"widget"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"exists":false,"name":""}`, rec.Body.String())
	})
}

func TestDecodeBody(t *testing.T) {
	rt := bodyRouter(t, 0)

	rec := post(rt, "/decode", "application/json", `{"name":"widget"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, `{"name":"widget"}`, rec.Body.String())

	rec = post(rt, "/decode", "application/json", `{"name":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, `{"error":"name is required"}`, rec.Body.String())

	rec = post(rt, "/decode", "application/json", `{"name":42}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "failed to decode request body")

	rec = post(rt, "/decode", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, `{"error":"request has no JSON body"}`, rec.Body.String())
}
