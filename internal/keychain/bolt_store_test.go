package keychain

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestBoltRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keychain.db")
	store, err := New("bbolt", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	if err := store.Set(AccessTokenKey, "tok-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(AccessTokenKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "tok-1" {
		t.Fatalf("expected tok-1, got %q", got)
	}

	if err := store.Delete(AccessTokenKey); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = store.Get(AccessTokenKey)
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty value after delete, got %q", got)
	}
}

func TestBoltAbsentKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keychain.db")
	store, err := New("bbolt", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	got, err := store.Get("never-set")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keychain.db")

	store, err := New("bbolt", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := store.Set(AccessTokenKey, "persisted-token"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := New("bbolt", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(AccessTokenKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "persisted-token" {
		t.Fatalf("expected persisted-token, got %q", got)
	}
}

// Tokens must not sit in plaintext inside the database file.
func TestBoltSealsValuesAtRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keychain.db")
	token := "super-secret-token"

	store, err := New("bbolt", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := store.Set(AccessTokenKey, token); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read db file: %v", err)
	}
	if bytes.Contains(raw, []byte(token)) {
		t.Fatalf("token stored in plaintext")
	}
}

func TestNewMemoryAndUnsupported(t *testing.T) {
	store, err := New("memory", "")
	if err != nil {
		t.Fatalf("New memory: %v", err)
	}
	defer store.Close()

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get("k")
	if err != nil || got != "v" {
		t.Fatalf("Get: %q, %v", got, err)
	}

	if _, err := New("vault", ""); err == nil {
		t.Fatalf("expected error for unsupported keychain type")
	}

	if _, err := New("bbolt", "  "); err == nil {
		t.Fatalf("expected error for bbolt without path")
	}
}
