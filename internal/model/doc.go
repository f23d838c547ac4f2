// Package model defines the request, response, and error types for the
// push relay API.
//
// The model package contains the send-push request with its validation
// rules, the dispatch result aggregating per-token delivery outcomes, and
// the APIError type every non-200 response is written from.
//
// # JSON Serialization
//
// Field names follow the frontend contract (camelCase):
//
//	{"title": "...", "body": "...", "deviceName": "phoneA"}
//	{"successCount": 2, "failureCount": 1, "errors": [{"token": "...", "reason": "unregistered"}]}
//
// DispatchResult.Errors always serializes as an array, never null, so
// clients can iterate without a nil check.
package model
