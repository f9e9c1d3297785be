// Package httpjson holds the JSON request/response helpers shared by the
// feature handlers.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/CCRProject300/kudoshub/internal/app/system/apperr"
)

// errorBody is the envelope for error responses.
type errorBody struct {
	Error string `json:"error"`
}

// Write encodes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// OK writes a 200 response with v as the body.
func OK(w http.ResponseWriter, v any) { Write(w, http.StatusOK, v) }

// Created writes a 201 response with v as the body.
func Created(w http.ResponseWriter, v any) { Write(w, http.StatusCreated, v) }

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) }

// Error maps err through the apperr taxonomy and writes the corresponding
// status with a client-safe message.
func Error(w http.ResponseWriter, err error) {
	Write(w, apperr.Status(err), errorBody{Error: apperr.Message(err)})
}

// Fail writes an arbitrary status with a message body.
func Fail(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Error: msg})
}

// Decode parses the request body into v, limiting the body to 1 MiB and
// rejecting unknown fields.
func Decode(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
