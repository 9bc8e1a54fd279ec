// Package crypto provides passphrase-based encryption for archived schedule
// files.
//
// Archived pages and snapshots contain staff names and case details, so the
// storage layer can optionally encrypt them at rest. Keys are derived from a
// passphrase with PBKDF2-SHA256 and payloads are sealed with AES-256-GCM,
// nonce prepended.
package crypto
