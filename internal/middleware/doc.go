// Package middleware provides HTTP middleware for the push relay server.
//
// Request-ID propagation, structured request logging, panic recovery, and
// CORS are applied globally via Chain. Rate limiting (token bucket keyed
// by client IP) and the optional API-key guard wrap only the send route;
// the liveness check stays unguarded so orchestrators can probe it freely.
package middleware
