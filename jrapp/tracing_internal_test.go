package jrapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx/fxtest"
)

func TestNewExporter(t *testing.T) {
	ctx := context.Background()

	for _, typ := range []string{"stdout", ""} {
		exp, err := newExporter(ctx, typ)
		require.NoError(t, err)
		require.NotNil(t, exp)
	}

	_, err := newExporter(ctx, "invalid")
	require.EqualError(t, err, `unsupported JR_OTEL_EXPORTER: "invalid" (supported: stdout, xrayudp, none)`)
}

func resourceAttr(t *testing.T, res *resource.Resource, key string) string {
	t.Helper()

	v, ok := res.Set().Value(attribute.Key(key))
	if !ok {
		return ""
	}

	return v.AsString()
}

func TestNewResource(t *testing.T) {
	ctx := context.Background()

	t.Run("stdout", func(t *testing.T) {
		res, err := newResource(ctx, "stdout", "my-service")
		require.NoError(t, err)
		require.Equal(t, "my-service", resourceAttr(t, res, "service.name"))
	})

	t.Run("xrayudp outside lambda", func(t *testing.T) {
		t.Setenv(lambdaFunctionNameEnv, "")

		res, err := newResource(ctx, "xrayudp", "my-service")
		require.NoError(t, err)
		require.Equal(t, "my-service", resourceAttr(t, res, "service.name"))
		require.Empty(t, resourceAttr(t, res, "faas.name"))
	})

	t.Run("xrayudp on lambda", func(t *testing.T) {
		t.Setenv(lambdaFunctionNameEnv, "my-function")
		t.Setenv("AWS_REGION", "eu-west-1")

		res, err := newResource(ctx, "xrayudp", "my-service")
		require.NoError(t, err)
		require.Equal(t, "my-service", resourceAttr(t, res, "service.name"))
		require.Equal(t, "my-function", resourceAttr(t, res, "faas.name"))
		require.Equal(t, "eu-west-1", resourceAttr(t, res, "cloud.region"))
	})
}

func TestNewTracerProvider(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		tp, err := NewTracerProvider(fxtest.NewLifecycle(t), testEnv{otelExp: "none"})
		require.NoError(t, err)
		require.IsType(t, noop.TracerProvider{}, tp)
	})

	t.Run("stdout", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		tp, err := NewTracerProvider(lc, testEnv{})
		require.NoError(t, err)
		require.IsType(t, &sdktrace.TracerProvider{}, tp)

		lc.RequireStart()
		lc.RequireStop()
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := NewTracerProvider(fxtest.NewLifecycle(t), testEnv{otelExp: "jaeger"})
		require.Error(t, err)
	})
}

func TestNewPropagator(t *testing.T) {
	require.IsType(t, xray.Propagator{}, NewPropagator(testEnv{otelExp: "xrayudp"}))

	prop := NewPropagator(testEnv{})
	require.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, prop.Fields())
}

func TestWithTracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	handler := withTracing(tp, propagation.TraceContext{}, "svc", "/health")(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	for _, path := range []string{"/items/1", "/health"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	spans := sr.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "GET /items/1", spans[0].Name())
}
