// Package httpjson holds the request/response helpers every feature handler
// uses. Error bodies are deliberately generic; the underlying error goes to
// the log at the call site, never to the client.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes caps JSON request bodies. Club payloads are small; anything
// bigger is a mistake or abuse.
const maxBodyBytes = 1 << 20

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorResponse{Error: msg})
}

// Decode reads a JSON request body into dst. It rejects unknown fields and
// trailing garbage so malformed client payloads fail loudly instead of
// half-applying.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
