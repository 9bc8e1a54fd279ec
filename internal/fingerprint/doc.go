// Package fingerprint detects whether fetched schedule content has changed
// between polls.
//
// The fingerprint is a SHA-256 hash of the raw document bytes, computed
// before (and independent of) any parsing. It is a pure byte-level diff:
// whitespace-only edits count as change. Checking novelty never writes
// state; recording the fingerprint is a separate explicit step so a caller
// can commit only after the rest of the run succeeded.
package fingerprint
