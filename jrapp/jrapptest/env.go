package jrapptest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for setting [jrapp.BaseEnvironment] env vars
// via t.Setenv. Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets all [jrapp.BaseEnvironment] env vars to sensible test defaults.
// Port is required because each test must use a unique port to avoid collisions.
//
// Defaults:
//   - JR_SERVICE_NAME: "test"
//   - JR_ENV: "test"
//   - JR_LOG_LEVEL: "warn"
//   - JR_OTEL_EXPORTER: "none"
//   - JR_READINESS_CHECK_PATH: "/health"
//   - JR_INDEX_PATH: ""
//   - JR_MAX_BODY_BYTES: "1048576"
//   - JR_REQUEST_TIMEOUT: "5s"
//
// Use the returned [Env] to override individual values:
//
//	jrapptest.SetBaseEnv(t, 18085).Development().IndexPath("/")
func SetBaseEnv(t testing.TB, port int) *Env {
	t.Helper()
	t.Setenv("JR_PORT", strconv.Itoa(port))
	t.Setenv("JR_SERVICE_NAME", "test")
	t.Setenv("JR_ENV", "test")
	t.Setenv("JR_LOG_LEVEL", "warn")
	t.Setenv("JR_OTEL_EXPORTER", "none")
	t.Setenv("JR_READINESS_CHECK_PATH", "/health")
	t.Setenv("JR_INDEX_PATH", "")
	t.Setenv("JR_MAX_BODY_BYTES", "1048576")
	t.Setenv("JR_REQUEST_TIMEOUT", "5s")

	return &Env{t: t}
}

// ServiceName overrides JR_SERVICE_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("JR_SERVICE_NAME", name)
	return e
}

// Development sets JR_ENV to "development".
func (e *Env) Development() *Env {
	e.t.Helper()
	e.t.Setenv("JR_ENV", "development")
	return e
}

// ReadinessCheckPath overrides JR_READINESS_CHECK_PATH.
func (e *Env) ReadinessCheckPath(path string) *Env {
	e.t.Helper()
	e.t.Setenv("JR_READINESS_CHECK_PATH", path)
	return e
}

// IndexPath overrides JR_INDEX_PATH.
func (e *Env) IndexPath(path string) *Env {
	e.t.Helper()
	e.t.Setenv("JR_INDEX_PATH", path)
	return e
}

// MaxBodyBytes overrides JR_MAX_BODY_BYTES.
func (e *Env) MaxBodyBytes(n int64) *Env {
	e.t.Helper()
	e.t.Setenv("JR_MAX_BODY_BYTES", strconv.FormatInt(n, 10))
	return e
}

// RequestTimeout overrides JR_REQUEST_TIMEOUT.
func (e *Env) RequestTimeout(d string) *Env {
	e.t.Helper()
	e.t.Setenv("JR_REQUEST_TIMEOUT", d)
	return e
}
