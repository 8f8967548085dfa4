package store

import (
	"path/filepath"
	"testing"
)

// createTestStore opens a fresh database in a temp dir for testing.
func createTestStore(t *testing.T, driver string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, driver)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// drivers lists every driver the slot must behave identically under.
var drivers = []string{DriverCGO, DriverPureGo}
