package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmaher/steamswap/internal/cache"
	"github.com/dmaher/steamswap/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketLibrary  = []byte("library")
	bucketAccounts = []byte("accounts")
)

const snapshotKey = "snapshot"

// CacheStore persists the library snapshot and account roster using BoltDB.
// The snapshot is written and read as a single value, so readers observe
// either the old or the new library, never a partial one.
type CacheStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	memory map[string][]byte
}

// NewCacheStore opens the on-disk store under baseCacheDir. Distinct Steam
// installations get distinct subdirectories keyed by a hash of the root
// path. An empty baseCacheDir gives a memory-only store with no
// persistence.
func NewCacheStore(baseCacheDir, steamRoot string) (*CacheStore, error) {
	if baseCacheDir == "" {
		return &CacheStore{memory: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if steamRoot != "" {
		dir = filepath.Join(baseCacheDir, hashRoot(steamRoot))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "steamswap.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketLibrary, bucketAccounts} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &CacheStore{db: db, memory: make(map[string][]byte)}, nil
}

func hashRoot(steamRoot string) string {
	normalized := strings.TrimRight(strings.ToLower(filepath.ToSlash(steamRoot)), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *CacheStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *CacheStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.memory[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.memory[cacheKey] = data
	s.mu.Unlock()

	// Malformed persisted data is a miss, not an error
	return json.Unmarshal(data, dest) == nil
}

func (s *CacheStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.memory[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *CacheStore) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	// Clear from memory cache
	s.mu.Lock()
	delete(s.memory, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// === Library snapshot ===

// GetSnapshot returns the persisted library snapshot. A missing or
// unreadable snapshot reports ok=false; the caller treats that the same as
// an expired cache.
func (s *CacheStore) GetSnapshot() (cache.GameCache, bool) {
	var snap cache.GameCache
	if !s.get(bucketLibrary, snapshotKey, &snap) {
		return cache.New(), false
	}
	return snap, true
}

// SaveSnapshot replaces the persisted snapshot wholesale.
func (s *CacheStore) SaveSnapshot(snap cache.GameCache) error {
	return s.set(bucketLibrary, snapshotKey, snap)
}

// InvalidateSnapshot discards the persisted library snapshot.
func (s *CacheStore) InvalidateSnapshot() {
	s.delete(bucketLibrary, snapshotKey)
}

// === Accounts ===

func (s *CacheStore) GetAccounts() ([]domain.Account, bool) {
	var accounts []domain.Account
	ok := s.get(bucketAccounts, "list", &accounts)
	return accounts, ok
}

func (s *CacheStore) SaveAccounts(accounts []domain.Account) error {
	return s.set(bucketAccounts, "list", accounts)
}

// === Invalidation ===

func (s *CacheStore) InvalidateAll() {
	s.mu.Lock()
	s.memory = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketLibrary, bucketAccounts} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
