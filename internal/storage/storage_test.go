package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbecker/orwatch/internal/schedule"
)

func newTestStorage(t *testing.T, passphrase string) *Storage {
	t.Helper()
	store, err := NewWithEncryption(t.TempDir(), passphrase)
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}
	return store
}

func TestNewCreatesLayout(t *testing.T) {
	store := newTestStorage(t, "")

	for _, dir := range []string{"html", "json"} {
		info, err := os.Stat(filepath.Join(store.DataDir(), dir))
		if err != nil {
			t.Fatalf("expected %s directory: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s should be a directory", dir)
		}
	}
}

func TestFingerprintRoundTrip(t *testing.T) {
	store := newTestStorage(t, "")

	hash, err := store.LastFingerprint()
	if err != nil {
		t.Fatalf("LastFingerprint failed: %v", err)
	}
	if hash != "" {
		t.Errorf("expected no fingerprint before first save, got %q", hash)
	}

	if err := store.SaveFingerprint("abc123"); err != nil {
		t.Fatalf("SaveFingerprint failed: %v", err)
	}

	hash, err = store.LastFingerprint()
	if err != nil {
		t.Fatalf("LastFingerprint failed: %v", err)
	}
	if hash != "abc123" {
		t.Errorf("fingerprint = %q, want %q", hash, "abc123")
	}
}

func TestReportHashSanitizesPerson(t *testing.T) {
	store := newTestStorage(t, "")

	if err := store.SaveReportHash("Smith,J R", "deadbeef"); err != nil {
		t.Fatalf("SaveReportHash failed: %v", err)
	}

	// Commas and spaces must not end up in the file name.
	path := filepath.Join(store.DataDir(), "last_schedule_hash_Smith_J_R.txt")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected sanitized hash file at %s: %v", path, err)
	}

	hash, err := store.LastReportHash("Smith,J R")
	if err != nil {
		t.Fatalf("LastReportHash failed: %v", err)
	}
	if hash != "deadbeef" {
		t.Errorf("report hash = %q, want %q", hash, "deadbeef")
	}
}

func TestSaveHTMLAndSnapshot(t *testing.T) {
	store := newTestStorage(t, "")

	htmlPath, err := store.SaveHTML("<html>schedule</html>")
	if err != nil {
		t.Fatalf("SaveHTML failed: %v", err)
	}
	if filepath.Dir(htmlPath) != filepath.Join(store.DataDir(), "html") {
		t.Errorf("html archived outside html/: %s", htmlPath)
	}

	snap := &schedule.Snapshot{
		Date:          "2024-01-01 07:00:00",
		FormattedDate: "Monday, January 01, 2024",
		PersonnelSchedule: map[string][]schedule.PersonnelEntry{
			"CA-1": {{Person: "Smith,J", Assignment: "OR3"}},
		},
		ProcedureSchedule: map[string][]schedule.ProcedureEntry{},
	}

	jsonPath, err := store.SaveSnapshot(snap)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	data, err := store.ReadArchive(jsonPath)
	if err != nil {
		t.Fatalf("ReadArchive failed: %v", err)
	}

	var loaded schedule.Snapshot
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshaling archived snapshot: %v", err)
	}
	if loaded.Date != snap.Date {
		t.Errorf("date = %q, want %q", loaded.Date, snap.Date)
	}
	if loaded.PersonnelSchedule["CA-1"][0].Person != "Smith,J" {
		t.Error("archived snapshot lost personnel data")
	}
}

func TestEncryptedArchive(t *testing.T) {
	store := newTestStorage(t, "passphrase")

	content := "<html>sensitive schedule</html>"
	path, err := store.SaveHTML(content)
	if err != nil {
		t.Fatalf("SaveHTML failed: %v", err)
	}
	if !strings.HasSuffix(path, ".enc") {
		t.Errorf("encrypted archive should carry .enc suffix: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading archive file: %v", err)
	}
	if bytes.Contains(raw, []byte("sensitive")) {
		t.Error("archive file should not contain plaintext")
	}

	plain, err := store.ReadArchive(path)
	if err != nil {
		t.Fatalf("ReadArchive failed: %v", err)
	}
	if string(plain) != content {
		t.Errorf("round trip mismatch: %q", plain)
	}

	// Markers stay in the clear even with encryption enabled.
	if err := store.SaveFingerprint("abc123"); err != nil {
		t.Fatalf("SaveFingerprint failed: %v", err)
	}
	marker, err := os.ReadFile(filepath.Join(store.DataDir(), "last_content_hash.txt"))
	if err != nil {
		t.Fatalf("reading marker: %v", err)
	}
	if string(marker) != "abc123" {
		t.Errorf("marker = %q, want plaintext %q", marker, "abc123")
	}
}
