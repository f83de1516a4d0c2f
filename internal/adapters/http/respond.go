package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope is the uniform API response body.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// respond writes the envelope with the given status.
func respond(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: success, Message: message, Data: data}); err != nil {
		slog.Error("response_encode_failed", "error", err)
	}
}

// ok writes a 200 success envelope.
func ok(w http.ResponseWriter, message string, data any) {
	respond(w, http.StatusOK, true, message, data)
}

// fail writes a failure envelope with the given status.
func fail(w http.ResponseWriter, status int, message string) {
	respond(w, status, false, message, nil)
}

// internalError logs the real error and returns a generic message to the
// client, preventing internal details from leaking.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	fail(w, http.StatusInternalServerError, "internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
