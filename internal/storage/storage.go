package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kbecker/orwatch/internal/crypto"
	"github.com/kbecker/orwatch/internal/schedule"
)

const (
	htmlDirName     = "html"
	jsonDirName     = "json"
	fingerprintFile = "last_content_hash.txt"
	timestampLayout = "20060102_150405"
)

// Storage handles persistence under the data directory.
type Storage struct {
	dataDir   string
	encryptor *crypto.Encryptor
}

// New creates a Storage rooted at dataDir, expanding a leading ~ and
// creating the directory layout if needed.
func New(dataDir string) (*Storage, error) {
	return NewWithEncryption(dataDir, "")
}

// NewWithEncryption creates a Storage whose archive files are encrypted with
// a key derived from passphrase. An empty passphrase disables encryption.
// Fingerprint and report-hash markers are always stored in the clear.
func NewWithEncryption(dataDir, passphrase string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	for _, dir := range []string{dataDir, filepath.Join(dataDir, htmlDirName), filepath.Join(dataDir, jsonDirName)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	return &Storage{
		dataDir:   dataDir,
		encryptor: crypto.NewEncryptor(passphrase),
	}, nil
}

// DataDir returns the resolved data directory.
func (s *Storage) DataDir() string {
	return s.dataDir
}

// SaveHTML archives the raw page content and returns the written path.
func (s *Storage) SaveHTML(content string) (string, error) {
	name := fmt.Sprintf("schedule_%s.html", time.Now().Format(timestampLayout))
	path := filepath.Join(s.dataDir, htmlDirName, name)
	return s.writeArchive(path, []byte(content))
}

// SaveSnapshot archives a parsed snapshot as indented JSON and returns the
// written path.
func (s *Storage) SaveSnapshot(snap *schedule.Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	name := fmt.Sprintf("schedule_%s.json", time.Now().Format(timestampLayout))
	path := filepath.Join(s.dataDir, jsonDirName, name)
	return s.writeArchive(path, data)
}

func (s *Storage) writeArchive(path string, data []byte) (string, error) {
	if s.encryptor != nil {
		sealed, err := s.encryptor.Encrypt(data)
		if err != nil {
			return "", fmt.Errorf("encrypting archive: %w", err)
		}
		data = sealed
		path += ".enc"
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing archive: %w", err)
	}
	return path, nil
}

// ReadArchive reads back an archived file, decrypting it when encryption is
// configured.
func (s *Storage) ReadArchive(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	if s.encryptor != nil && strings.HasSuffix(path, ".enc") {
		plain, err := s.encryptor.Decrypt(data)
		if err != nil {
			return nil, fmt.Errorf("decrypting archive: %w", err)
		}
		return plain, nil
	}
	return data, nil
}

// LastFingerprint returns the stored content fingerprint, or "" when none
// has been recorded yet.
func (s *Storage) LastFingerprint() (string, error) {
	return s.readMarker(filepath.Join(s.dataDir, fingerprintFile))
}

// SaveFingerprint records hash as the previous-state content fingerprint.
func (s *Storage) SaveFingerprint(hash string) error {
	return s.writeMarker(filepath.Join(s.dataDir, fingerprintFile), hash)
}

// LastReportHash returns the stored report hash for person, or "" when none
// has been recorded yet.
func (s *Storage) LastReportHash(person string) (string, error) {
	return s.readMarker(s.reportHashPath(person))
}

// SaveReportHash records the report hash for person.
func (s *Storage) SaveReportHash(person, hash string) error {
	return s.writeMarker(s.reportHashPath(person), hash)
}

func (s *Storage) reportHashPath(person string) string {
	sanitized := strings.NewReplacer(",", "_", " ", "_").Replace(person)
	return filepath.Join(s.dataDir, fmt.Sprintf("last_schedule_hash_%s.txt", sanitized))
}

func (s *Storage) readMarker(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Storage) writeMarker(path, value string) error {
	if err := os.WriteFile(path, []byte(value), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
