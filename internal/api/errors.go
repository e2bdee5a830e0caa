// Package api implements the HTTP JSON surface of the leaderboard and
// account service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a request-level failure with an HTTP status. Anything that is
// not an *Error maps to a 500 with the underlying message exposed.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errValidation(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func errAuth(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

func errNotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Conflicts surface as 400, not 409, matching the service contract.
func errConflict(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// writeError renders an error as the uniform {"error": ...} body.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = &Error{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	writeJSON(w, apiErr.Status, map[string]string{"error": apiErr.Message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Nothing to do for a client that went away mid-write
	json.NewEncoder(w).Encode(v)
}

// decodeJSON parses a request body, rejecting malformed payloads.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errValidation("invalid JSON body")
	}
	return nil
}
