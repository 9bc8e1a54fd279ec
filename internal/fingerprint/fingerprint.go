package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Sum returns the hex-encoded SHA-256 fingerprint of content.
func Sum(content string) string {
	digest := sha256.Sum256([]byte(content))
	return hex.EncodeToString(digest[:])
}

// Store persists the previous-state fingerprint marker between runs.
// LastFingerprint returns "" when no marker has been recorded yet.
type Store interface {
	LastFingerprint() (string, error)
	SaveFingerprint(hash string) error
}

// Detector compares fetched content against the stored fingerprint.
type Detector struct {
	store Store
}

// NewDetector creates a Detector backed by store.
func NewDetector(store Store) *Detector {
	return &Detector{store: store}
}

// IsNovel reports whether content differs from the previously recorded
// fingerprint. The very first call (no stored marker) is always novel.
// IsNovel does not persist anything.
func (d *Detector) IsNovel(content string) (bool, error) {
	previous, err := d.store.LastFingerprint()
	if err != nil {
		return false, fmt.Errorf("loading previous fingerprint: %w", err)
	}
	if previous == "" {
		return true, nil
	}
	return Sum(content) != previous, nil
}

// Record persists the fingerprint of content as the new previous-state
// marker.
func (d *Detector) Record(content string) error {
	if err := d.store.SaveFingerprint(Sum(content)); err != nil {
		return fmt.Errorf("saving fingerprint: %w", err)
	}
	return nil
}
