package keychain

import (
	"fmt"
	"strings"
	"sync"
)

// Package keychain provides the secure on-device credential store. The backend
// client only ever reads from it; whoever performs the login writes the token.

// AccessTokenKey is the entry the backend client reads bearer tokens from.
const AccessTokenKey = "access_token"

// Store is a small key-value contract for credentials. Get returns an empty
// string (and no error) when the key is absent.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// New creates the configured keychain backend.
func New(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "memory":
		return NewMemStore(), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt keychain requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported keychain type %q", typ)
	}
}

// memStore keeps credentials in memory. Used in tests and as a throwaway
// backend when persistence is not wanted.
type memStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemStore returns an empty in-memory Store.
func NewMemStore() Store {
	return &memStore{values: make(map[string]string)}
}

func (m *memStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *memStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memStore) Close() error { return nil }
