// Package jrapp runs a [jsonroutes.Router] as a complete HTTP service: environment parsing, structured
// logging, OpenTelemetry tracing, request body parsing, timeouts and graceful shutdown. A complete
// application can be created in a single call:
//
//	jrapp.NewApp[Env](func(rt *jrapp.Router, h *Handlers) {
//	    rt.AddFunc("GET", "/items", h.ListItems)
//	    rt.AddFunc("POST", "/items", h.CreateItem)
//	    rt.ErrorMiddleware().Use(rt.ErrorResultHandler())
//	},
//	    jrapp.WithFx(fx.Provide(NewHandlers)),
//	).Run()
//
// Error middleware registered during routing is installed when the app starts, right before the server
// starts listening.
//
// # Environment Configuration
//
// Define your environment by embedding [BaseEnvironment]:
//
//	type Env struct {
//	    jrapp.BaseEnvironment
//	    MainTableName string `env:"MAIN_TABLE_NAME,required"`
//	}
//
// BaseEnvironment provides the following environment variables:
//
//	| Variable                | Required | Default    | Description                                       |
//	|-------------------------|----------|------------|---------------------------------------------------|
//	| JR_SERVICE_NAME         | Yes      | -          | Service name for logging and tracing              |
//	| JR_PORT                 | No       | 8080       | Port the HTTP server listens on                   |
//	| JR_ENV                  | No       | production | "development" pretty prints results and logs      |
//	| JR_LOG_LEVEL            | No       | info       | Log level (debug, info, warn, error)              |
//	| JR_OTEL_EXPORTER        | No       | stdout     | Trace exporter: "stdout", "xrayudp" or "none"     |
//	| JR_READINESS_CHECK_PATH | No       | /health    | Readiness endpoint, served outside the routes     |
//	| JR_INDEX_PATH           | No       | -          | When set, lists the registered endpoints          |
//	| JR_MAX_BODY_BYTES       | No       | 52428800   | Request body size limit                           |
//	| JR_REQUEST_TIMEOUT      | No       | 30s        | Per-request timeout, 0 disables it                |
//
// # Request Bodies
//
// JSON request bodies are read and validated before routing. Handlers read them with [Body] or decode
// them with [DecodeBody]:
//
//	func (h *Handlers) CreateItem(ctx context.Context, w jsonroutes.ResponseWriter, r *http.Request) error {
//	    name := jrapp.Body(ctx).Get("name").String()
//	    // ...
//	}
//
// # Context
//
// Handlers receive a standard context.Context. Use the package-level functions
// to access request-scoped values:
//
//   - [Log] - trace-correlated zap logger
//   - [Span] - current OpenTelemetry span for custom instrumentation
//   - [RequestRemainingTime] - time left before the request times out
//
// App-scoped values are available through [Runtime], which is injected via fx.
//
// # Tracing
//
// OpenTelemetry tracing is configured automatically based on JR_OTEL_EXPORTER:
//
//   - "stdout" (default): Pretty-printed spans for local development
//   - "xrayudp": X-Ray UDP exporter with proper trace ID format
//   - "none": no tracing
//
// The tracer provider and propagator are injected explicitly (no globals).
package jrapp
