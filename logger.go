package jsonroutes

import (
	"log"
	"sync/atomic"
	"testing"
)

// Logger can be implemented to get informed about failures the router could not hand to anyone else.
type Logger interface {
	// LogUnhandledError is called when a failure passed through every error stage without being handled.
	LogUnhandledError(err error)
	// LogMissingResult is called when a route handler succeeded but never sent a result.
	LogMissingResult(method, path string)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogUnhandledError(err error) {
	l.Logger.Printf("jsonroutes: unhandled error: %s", err)
}

func (l stdLogger) LogMissingResult(method, path string) {
	l.Logger.Printf("jsonroutes: handler for %s %s did not send a result", method, path)
}

// NewStdLogger adapts a standard library logger. A nil logger logs to [log.Default].
func NewStdLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}

	return stdLogger{l}
}

// TestLogger logs to the test output and counts the calls.
type TestLogger struct {
	tb testing.TB

	NumLogUnhandledError int64
	NumLogMissingResult  int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogUnhandledError(err error) {
	atomic.AddInt64(&l.NumLogUnhandledError, 1)
	l.tb.Logf("jsonroutes: unhandled error: %s", err)
}

func (l *TestLogger) LogMissingResult(method, path string) {
	atomic.AddInt64(&l.NumLogMissingResult, 1)
	l.tb.Logf("jsonroutes: handler for %s %s did not send a result", method, path)
}

var _ Logger = &TestLogger{}
