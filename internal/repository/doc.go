// Package repository implements the data access layer over Firestore.
//
// The only entity this service touches is the device-token collection,
// and only ever to read it. Each record holds at least an opaque FCM
// registration token and optionally a user-assigned device name used to
// narrow delivery targets.
//
// # Query Patterns
//
//   - Whole-collection reads and exact-match deviceName filters, both
//     capped at a configured per-request limit
//   - Iteration via the Firestore document iterator, stopping on
//     iterator.Done
//   - Malformed records (missing or empty token field) are skipped with a
//     debug log instead of failing the request
//
// Store errors surface wrapped to the caller; retries are left to the
// managed client's transport.
package repository
