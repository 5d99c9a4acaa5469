package jsonroutes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Headers maps header names to a single value.
type Headers map[string]string

// DefaultHeaders returns the headers every response carries until [Router.SetResponseHeaders] is called.
func DefaultHeaders() Headers {
	return Headers{
		"Cache-Control": "no-store",
		"Pragma":        "no-cache",
	}
}

func (h Headers) clone() Headers {
	c := make(Headers, len(h))
	for k, v := range h {
		c[k] = v
	}

	return c
}

func (h Headers) apply(w http.ResponseWriter) {
	for k, v := range h {
		w.Header().Set(k, v)
	}
}

type null struct{}

func (null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Null is the [Result] data that sends the literal JSON null. A Result with nil data sends no body at all.
var Null any = null{}

// Result describes a JSON response.
type Result struct {
	// Code is the status code, zero means 200.
	Code int
	// Headers are set after the router's response headers, so they take precedence.
	Headers Headers
	// Data is serialized as the JSON body. When nil no body is written, use [Null] to send null.
	Data any
}

// SendResult writes 'res' to 'w'. The body is serialized before anything is written, so a value that can't
// be encoded returns an error and leaves the response untouched, as does a code outside 100-999. Sending a
// second result on the same [ResponseWriter] panics.
func (rt *Router) SendResult(w http.ResponseWriter, res Result) error {
	if rw, ok := w.(ResponseWriter); ok && rw.Sent() {
		panic("jsonroutes: result already sent")
	}

	var body []byte
	if res.Data != nil {
		var err error
		if body, err = encodeData(res.Data, rt.development); err != nil {
			return err
		}
	}

	code := res.Code
	if code == 0 {
		code = http.StatusOK
	}

	if code < 100 || code > 999 {
		return errors.Newf("jsonroutes: invalid result code: %d", code)
	}

	rt.headers.Load().apply(w)
	res.Headers.apply(w)

	if body == nil {
		w.WriteHeader(code)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		return errors.Wrap(err, "jsonroutes: write result body")
	}

	return nil
}

func encodeData(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "jsonroutes: encode result data")
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
