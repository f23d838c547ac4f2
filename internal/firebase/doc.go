// Package firebase constructs the process-wide Firebase SDK clients.
//
// NewClients is called once per process at startup; the resulting Clients
// value owns the Firebase app handle plus the Messaging and Firestore
// clients derived from it. Downstream components receive the individual
// clients explicitly rather than reaching for a package-level singleton,
// which keeps "initialize once, reuse for the process lifetime" without
// hidden global state.
//
// Both derived clients are documented by Google as safe for concurrent
// use, so multiple in-flight HTTP requests share them without locking.
package firebase
