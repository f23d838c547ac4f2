// Package service implements the push dispatch logic.
//
// The dispatcher takes a resolved token list and fans the notification out
// to FCM, one message per token. Delivery is best-effort and at-most-once:
// per-token failures are expected, recorded in the result, and never
// retried or escalated.
//
// # Dependency Interfaces
//
// The service consumes the FCM client through its own one-method Sender
// interface, which *messaging.Client satisfies. Tests substitute a
// function-backed mock.
//
// # Error Handling
//
// Send errors are classified into stable reason strings (unregistered,
// invalid-argument, quota-exceeded, unavailable, internal) using the
// messaging package's typed error predicates. Tokens are masked in log
// output but reported unredacted in the result.
package service
