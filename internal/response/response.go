// Package response provides shared JSON response helpers for HTTP handlers.
package response

import (
	"encoding/json"
	"net/http"
)

// Error codes reported in the envelope's code field.
const (
	CodeMissingBoundary      = "MissingBoundary"
	CodeNoFileProvided       = "NoFileProvided"
	CodeUnsupportedMediaType = "UnsupportedMediaType"
	CodePayloadTooLarge      = "PayloadTooLarge"
	CodeStorageWriteFailed   = "StorageWriteFailed"
	CodeUnexpectedFailure    = "UnexpectedFailure"
)

// Envelope is the standard API response envelope.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Details string      `json:"details,omitempty"`
}

// ListEnvelope wraps a collection together with its size.
type ListEnvelope struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// OK writes a 200 response with data.
func OK(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// List writes a 200 response carrying items and their count.
func List[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	JSON(w, http.StatusOK, ListEnvelope{Success: true, Count: len(items), Data: items})
}

// Error writes an error response with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Error: message})
}

// Fail writes an error response tagged with an error code and optional details.
func Fail(w http.ResponseWriter, status int, code, message, details string) {
	JSON(w, status, Envelope{Success: false, Error: message, Code: code, Details: details})
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, code, message string) {
	Fail(w, http.StatusBadRequest, code, message, "")
}

// MethodNotAllowed writes a 405 response.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, "method not allowed")
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// InternalError writes a 500 response carrying the underlying error text.
func InternalError(w http.ResponseWriter, code, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	Fail(w, http.StatusInternalServerError, code, message, details)
}
