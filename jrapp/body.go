package jrapp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/advdv/jsonroutes"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// DefaultMaxBodyBytes is the body size limit used when none is configured.
const DefaultMaxBodyBytes = 50 << 20

type bodyKey struct{}

// WithBodyParsing returns middleware that reads request bodies of up to 'limit' bytes. JSON bodies are
// checked for validity and made available through [Body] and [DecodeBody], r.Body is reset so it can be
// read again. The query and URL-encoded form bodies are parsed into r.Form. A body over the limit fails
// with [jsonroutes.CodeRequestEntityTooLarge], a malformed body with [jsonroutes.CodeBadRequest].
func WithBodyParsing(limit int64) jsonroutes.Middleware {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	return func(next jsonroutes.BareHandler) jsonroutes.BareHandler {
		return jsonroutes.BareHandlerFunc(func(w jsonroutes.ResponseWriter, r *http.Request) error {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}

			mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if mediaType == "application/json" && r.Body != nil {
				raw, err := io.ReadAll(r.Body)
				if err != nil {
					return bodyError(err, "failed to read request body")
				}

				if len(raw) > 0 && !gjson.ValidBytes(raw) {
					return jsonroutes.NewError(jsonroutes.CodeBadRequest, errors.New("request body is not valid JSON"))
				}

				r.Body = io.NopCloser(bytes.NewReader(raw))
				r = r.WithContext(context.WithValue(r.Context(), bodyKey{}, raw))
			}

			// reads url-encoded bodies, other content types only get their query parsed.
			if err := r.ParseForm(); err != nil {
				return bodyError(err, "failed to parse form")
			}

			return next.ServeBareJSON(w, r)
		})
	}
}

func bodyError(err error, msg string) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return jsonroutes.NewError(jsonroutes.CodeRequestEntityTooLarge,
			errors.Newf("request body exceeds %d bytes", mbe.Limit))
	}

	return jsonroutes.NewError(jsonroutes.CodeBadRequest, errors.Wrap(err, msg))
}

// Body returns the JSON request body read by [WithBodyParsing]. The result does not exist when the request
// had no JSON body.
func Body(ctx context.Context) gjson.Result {
	raw, _ := ctx.Value(bodyKey{}).([]byte)
	if len(raw) == 0 {
		return gjson.Result{}
	}

	return gjson.ParseBytes(raw)
}

// DecodeBody decodes the JSON request body into 'v'. Failures are reported as [jsonroutes.CodeBadRequest].
func DecodeBody(ctx context.Context, v any) error {
	raw, _ := ctx.Value(bodyKey{}).([]byte)
	if len(raw) == 0 {
		return jsonroutes.NewError(jsonroutes.CodeBadRequest, errors.New("request has no JSON body"))
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return jsonroutes.NewError(jsonroutes.CodeBadRequest, errors.Wrap(err, "failed to decode request body"))
	}

	return nil
}
