package keychain

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/chacha20poly1305"
)

const credentialBucket = "credentials"

// boltStore implements a Store backed by BoltDB. Values are sealed with
// ChaCha20-Poly1305 so tokens never sit in plaintext on disk; the sealing key
// lives in a 0600 key file next to the database.
type boltStore struct {
	db  *bolt.DB
	key []byte
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create keychain directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(credentialBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	key, err := loadOrCreateKey(path + ".key")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &boltStore{db: db, key: key}, nil
}

// loadOrCreateKey reads the sealing key file, generating it on first use.
func loadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("keychain key file %s has invalid size %d", path, len(key))
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read keychain key file: %w", err)
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate keychain key: %w", err)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write keychain key file: %w", err)
	}
	return key, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Get returns the credential stored under key, or "" when absent.
func (b *boltStore) Get(key string) (string, error) {
	if b == nil || b.db == nil {
		return "", nil
	}

	var sealed []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return fmt.Errorf("credential bucket missing")
		}
		if v := bucket.Get([]byte(key)); v != nil {
			sealed = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if sealed == nil {
		return "", nil
	}

	value, err := b.open(sealed)
	if err != nil {
		return "", fmt.Errorf("unseal credential %q: %w", key, err)
	}
	return string(value), nil
}

// Set stores the credential under key, sealed at rest.
func (b *boltStore) Set(key, value string) error {
	if b == nil || b.db == nil {
		return fmt.Errorf("keychain is closed")
	}

	sealed, err := b.seal([]byte(value))
	if err != nil {
		return fmt.Errorf("seal credential %q: %w", key, err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return fmt.Errorf("credential bucket missing")
		}
		return bucket.Put([]byte(key), sealed)
	})
}

// Delete removes the credential stored under key. Deleting an absent key is
// not an error.
func (b *boltStore) Delete(key string) error {
	if b == nil || b.db == nil {
		return nil
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(credentialBucket))
		if bucket == nil {
			return fmt.Errorf("credential bucket missing")
		}
		return bucket.Delete([]byte(key))
	})
}

// seal encrypts value as nonce||ciphertext.
func (b *boltStore) seal(value []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, value, nil), nil
}

// open decrypts a nonce||ciphertext blob produced by seal.
func (b *boltStore) open(sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, fmt.Errorf("sealed value too short")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}
