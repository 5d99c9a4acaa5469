package jsonroutes

import "net/http"

// ResponseWriter is the http.ResponseWriter handed to every stage of the router. It remembers whether a
// result was sent so error stages can tell if they may still answer the request.
type ResponseWriter interface {
	http.ResponseWriter
	// Sent reports whether the status line has been written.
	Sent() bool
	// Status returns the status that was written, or 0 if nothing was sent.
	Status() int
	// Unwrap returns the transport's writer, for use with [http.ResponseController].
	Unwrap() http.ResponseWriter
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

// NewResponseWriter wraps 'w'. If 'w' already is a [ResponseWriter] it is returned as-is.
func NewResponseWriter(w http.ResponseWriter) ResponseWriter {
	if rw, ok := w.(ResponseWriter); ok {
		return rw
	}

	return &responseWriter{ResponseWriter: w}
}

func (w *responseWriter) WriteHeader(code int) {
	if w.status != 0 {
		return
	}

	// the transport panics on invalid codes, the writer only counts as sent once it accepted one.
	w.ResponseWriter.WriteHeader(code)
	w.status = code
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Sent() bool                  { return w.status != 0 }
func (w *responseWriter) Status() int                 { return w.status }
func (w *responseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

var _ ResponseWriter = &responseWriter{}
