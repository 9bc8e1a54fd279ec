// Package storage provides the on-disk data directory for schedule runs.
//
// The layout follows the poller's needs: raw pages under html/ and parsed
// snapshots under json/, both timestamped; last_content_hash.txt as the
// previous-state fingerprint marker; and per-person report hashes used by
// watch mode to decide when to notify. Archive files can optionally be
// encrypted at rest. The default location is ~/.local/share/orwatch/.
package storage
