// Package handler provides the HTTP request handlers for the push relay.
//
// Two routes exist: a liveness check and the send endpoint. Handlers
// depend on the repository and dispatcher through interfaces they define
// themselves, so tests substitute function-backed mocks.
//
// # Response Format
//
// Successful responses carry the dispatch result directly; every error
// response is the flat {"error": "..."} shape via WriteError. Partial
// delivery failures are not errors: the send endpoint answers 200 with
// per-token detail whenever the request itself was valid and token
// resolution succeeded.
package handler
