package model

import "strings"

// Validation limits for push requests. Mirrors what registered frontends
// are allowed to submit; the dispatcher additionally truncates at send time.
const (
	MaxTitleLength      = 200
	MaxBodyLength       = 1000
	MaxDeviceNameLength = 100
)

// SendPushRequest represents a request to relay a notification to
// registered devices. DeviceName narrows the audience to devices
// registered under that label; empty means every registered device.
type SendPushRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	DeviceName string `json:"deviceName,omitempty"`
}

// Validate validates the send push request
func (r *SendPushRequest) Validate() []FieldError {
	var errors []FieldError

	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, FieldError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if strings.TrimSpace(r.Body) == "" {
		errors = append(errors, FieldError{
			Field:   "body",
			Message: "body is required",
		})
	}

	if len([]rune(r.Title)) > MaxTitleLength {
		errors = append(errors, FieldError{
			Field:   "title",
			Message: "title exceeds maximum length",
		})
	}

	if len([]rune(r.Body)) > MaxBodyLength {
		errors = append(errors, FieldError{
			Field:   "body",
			Message: "body exceeds maximum length",
		})
	}

	if len([]rune(r.DeviceName)) > MaxDeviceNameLength {
		errors = append(errors, FieldError{
			Field:   "deviceName",
			Message: "deviceName exceeds maximum length",
		})
	}

	return errors
}

// DispatchError records one failed delivery attempt. Token is the FCM
// registration token the attempt targeted, unredacted so callers can
// clean up stale registrations on their side.
type DispatchError struct {
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// DispatchResult aggregates per-token outcomes of one dispatch.
// SuccessCount + FailureCount always equals the number of tokens attempted.
type DispatchResult struct {
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	Errors       []DispatchError `json:"errors"`
}

// NewDispatchResult returns an empty result. Errors is initialized so the
// field serializes as [] rather than null.
func NewDispatchResult() *DispatchResult {
	return &DispatchResult{Errors: make([]DispatchError, 0)}
}

// RecordSuccess counts one delivered attempt
func (r *DispatchResult) RecordSuccess() {
	r.SuccessCount++
}

// RecordFailure counts one failed attempt and keeps its detail
func (r *DispatchResult) RecordFailure(token, reason string) {
	r.FailureCount++
	r.Errors = append(r.Errors, DispatchError{Token: token, Reason: reason})
}

// Attempted returns the total number of delivery attempts recorded
func (r *DispatchResult) Attempted() int {
	return r.SuccessCount + r.FailureCount
}
