package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is an error carrying an HTTP status and the client-facing
// message. It serializes as the flat {"error": "..."} body the API
// contract promises for every non-200 response.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the error as a JSON response
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Common error constructors

func NewBadRequestError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: message,
	}
}

func NewInternalError(message string) *APIError {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return &APIError{
		Status:  http.StatusInternalServerError,
		Message: message,
	}
}

func NewRateLimitError(retryAfter int) *APIError {
	return &APIError{
		Status:  http.StatusTooManyRequests,
		Message: fmt.Sprintf("rate limit exceeded, retry after %d seconds", retryAfter),
	}
}

// NewTitleBodyRequiredError is the exact validation failure the send
// endpoint returns when title or body is missing or empty.
func NewTitleBodyRequiredError() *APIError {
	return NewBadRequestError("title and body are required")
}
