package jrapp

import (
	"context"
	"net/http"
	"time"

	"github.com/advdv/jsonroutes"
)

// DefaultWriteBuffer is the extra time the server allows for writing a response after the request
// deadline passed, so a failure caused by the deadline can still be answered.
const DefaultWriteBuffer = 500 * time.Millisecond

// TimeoutConfig holds timeout configuration for the HTTP server.
type TimeoutConfig struct {
	// RequestTimeout bounds the handling of a single request. Zero disables server-side timeouts.
	RequestTimeout time.Duration

	// WriteBuffer is added to the write timeout. Defaults to DefaultWriteBuffer.
	WriteBuffer time.Duration
}

// ServerTimeouts returns the http.Server timeout values for the request timeout.
func (tc TimeoutConfig) ServerTimeouts() (readHeaderTimeout, readTimeout, writeTimeout, idleTimeout time.Duration) {
	if tc.RequestTimeout <= 0 {
		return 0, 0, 0, 0
	}

	buffer := tc.WriteBuffer
	if buffer <= 0 {
		buffer = DefaultWriteBuffer
	}

	readHeaderTimeout = min(tc.RequestTimeout, 5*time.Second)
	readTimeout = tc.RequestTimeout
	writeTimeout = tc.RequestTimeout + buffer
	idleTimeout = 2 * tc.RequestTimeout

	return
}

// WithRequestTimeout returns middleware that bounds the request context with a timeout of 'd'. Nothing
// is changed when 'd' is not positive.
func WithRequestTimeout(d time.Duration) jsonroutes.Middleware {
	return func(next jsonroutes.BareHandler) jsonroutes.BareHandler {
		if d <= 0 {
			return next
		}

		return jsonroutes.BareHandlerFunc(func(w jsonroutes.ResponseWriter, r *http.Request) error {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			return next.ServeBareJSON(w, r.WithContext(ctx))
		})
	}
}

// RequestRemainingTime returns the duration until the request context deadline.
// Returns 0 if no deadline is set or if the deadline has passed.
func RequestRemainingTime(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}

	return max(time.Until(deadline), 0)
}
