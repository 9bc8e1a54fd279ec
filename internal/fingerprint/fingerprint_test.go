package fingerprint

import "testing"

// memStore is an in-memory Store for tests.
type memStore struct {
	hash  string
	saves int
}

func (m *memStore) LastFingerprint() (string, error) { return m.hash, nil }
func (m *memStore) SaveFingerprint(hash string) error {
	m.hash = hash
	m.saves++
	return nil
}

func TestSumDeterministic(t *testing.T) {
	a := Sum("<html>schedule</html>")
	b := Sum("<html>schedule</html>")
	if a != b {
		t.Errorf("same content produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestSumSensitiveToAnyByte(t *testing.T) {
	base := Sum("<html>schedule</html>")
	if Sum("<html>schedule </html>") == base {
		t.Error("whitespace-only change should produce a different fingerprint")
	}
	if Sum("<html>schedulf</html>") == base {
		t.Error("single byte change should produce a different fingerprint")
	}
}

func TestDetectorFirstCallIsNovel(t *testing.T) {
	d := NewDetector(&memStore{})

	novel, err := d.IsNovel("content")
	if err != nil {
		t.Fatalf("IsNovel failed: %v", err)
	}
	if !novel {
		t.Error("first call should always be novel")
	}
}

func TestDetectorRepeatAfterRecord(t *testing.T) {
	store := &memStore{}
	d := NewDetector(store)

	if err := d.Record("content"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	novel, err := d.IsNovel("content")
	if err != nil {
		t.Fatalf("IsNovel failed: %v", err)
	}
	if novel {
		t.Error("byte-identical repeat should not be novel after recording")
	}

	novel, err = d.IsNovel("content changed")
	if err != nil {
		t.Fatalf("IsNovel failed: %v", err)
	}
	if !novel {
		t.Error("different content should be novel")
	}
}

func TestIsNovelDoesNotPersist(t *testing.T) {
	store := &memStore{}
	d := NewDetector(store)

	if _, err := d.IsNovel("content"); err != nil {
		t.Fatalf("IsNovel failed: %v", err)
	}
	if store.saves != 0 {
		t.Errorf("IsNovel persisted state: %d saves", store.saves)
	}

	if err := d.Record("content"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if store.saves != 1 {
		t.Errorf("expected exactly 1 save after Record, got %d", store.saves)
	}
}
