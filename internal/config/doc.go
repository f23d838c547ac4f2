// Package config loads application configuration from the environment.
//
// Configuration is read once at startup via Load(), which also picks up a
// .env file when one exists in the working directory (real environment
// variables take precedence). Validate() reports every failure at once
// using errors.Join so a misconfigured deployment surfaces all problems
// in a single startup log line.
//
// # Credential Resolution
//
// The Firebase service-account file path is resolved from
// GOOGLE_APPLICATION_CREDENTIALS first, then FIREBASE_SERVICE_ACCOUNT_PATH.
// Validate() fails when neither is set or the file cannot be read; the
// process must not serve traffic without working credentials.
package config
