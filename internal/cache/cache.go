// Package cache provides a TTL cache for GitHub API responses, kept in
// memory and optionally mirrored to a directory so repeated runs against
// the same profile stay under the unauthenticated rate limit.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/maxbolgarin/errm"
)

// DefaultTTL is used when Config.TTL is zero.
const DefaultTTL = 15 * time.Minute

var errExpired = errm.New("cache entry expired")

// Cache is a memory cache with an optional file-backed second level.
type Cache struct {
	dir    string
	ttl    time.Duration
	mu     sync.RWMutex
	memory map[string]*entry
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

type fileMeta struct {
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Config configures the cache behavior.
type Config struct {
	// Dir is the directory for file-based cache. Empty means memory only.
	Dir string

	// TTL is the time-to-live for cached entries.
	TTL time.Duration
}

// New creates a cache with the given configuration.
func New(cfg Config) (*Cache, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0700); err != nil {
			return nil, errm.Wrap(err, "failed to create cache directory")
		}
	}

	return &Cache{
		dir:    cfg.Dir,
		ttl:    cfg.TTL,
		memory: make(map[string]*entry),
	}, nil
}

// DefaultDir returns the per-user cache directory for ghanalytics.
func DefaultDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "ghanalytics")
	}
	return filepath.Join(os.TempDir(), "ghanalytics-cache")
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get retrieves a cached value by key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	hash := hashKey(key)
	now := time.Now()

	c.mu.RLock()
	e, ok := c.memory[hash]
	c.mu.RUnlock()
	if ok && now.Before(e.expiresAt) {
		return e.data, true
	}

	if c.dir == "" {
		return nil, false
	}

	data, expiresAt, err := c.readFile(hash)
	if err != nil {
		return nil, false
	}

	c.mu.Lock()
	c.memory[hash] = &entry{data: data, expiresAt: expiresAt}
	c.mu.Unlock()

	return data, true
}

// Set stores a value in the cache.
func (c *Cache) Set(ctx context.Context, key string, data []byte) error {
	hash := hashKey(key)
	expiresAt := time.Now().Add(c.ttl)

	c.mu.Lock()
	c.memory[hash] = &entry{data: data, expiresAt: expiresAt}
	c.mu.Unlock()

	if c.dir == "" {
		return nil
	}
	return c.writeFile(hash, key, data, expiresAt)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	hash := hashKey(key)

	c.mu.Lock()
	delete(c.memory, hash)
	c.mu.Unlock()

	if c.dir != "" {
		_ = os.Remove(c.dataPath(hash))
		_ = os.Remove(c.metaPath(hash))
	}
	return nil
}

// Clear removes all entries from the cache.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.memory = make(map[string]*entry)
	c.mu.Unlock()

	if c.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return errm.Wrap(err, "failed to read cache directory")
	}
	for _, e := range entries {
		if isCacheFile(e.Name()) {
			_ = os.Remove(filepath.Join(c.dir, e.Name()))
		}
	}
	return nil
}

// Stats describes cache usage.
type Stats struct {
	Dir           string `json:"dir,omitempty"`
	MemoryEntries int    `json:"memoryEntries"`
	FileEntries   int    `json:"fileEntries"`
	TotalSizeKB   int64  `json:"totalSizeKB"`
}

// Stats returns cache statistics.
func (c *Cache) Stats(ctx context.Context) Stats {
	c.mu.RLock()
	stats := Stats{Dir: c.dir, MemoryEntries: len(c.memory)}
	c.mu.RUnlock()

	if c.dir == "" {
		return stats
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return stats
	}
	var totalSize int64
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		stats.FileEntries++
		if info, err := e.Info(); err == nil {
			totalSize += info.Size()
		}
	}
	stats.TotalSizeKB = totalSize / 1024
	return stats
}

// Prune removes expired entries and returns how many were removed.
// An entry present in both levels counts once.
func (c *Cache) Prune(ctx context.Context) (int, error) {
	now := time.Now()
	pruned := make(map[string]struct{})

	c.mu.Lock()
	for hash, e := range c.memory {
		if now.After(e.expiresAt) {
			delete(c.memory, hash)
			pruned[hash] = struct{}{}
		}
	}
	c.mu.Unlock()

	if c.dir != "" {
		entries, err := os.ReadDir(c.dir)
		if err != nil {
			return len(pruned), errm.Wrap(err, "failed to read cache directory")
		}
		for _, e := range entries {
			if !strings.HasSuffix(e.Name(), ".meta") {
				continue
			}
			hash := strings.TrimSuffix(e.Name(), ".meta")
			meta, err := c.readMeta(hash)
			if err != nil || now.After(meta.ExpiresAt) {
				_ = os.Remove(c.metaPath(hash))
				_ = os.Remove(c.dataPath(hash))
				pruned[hash] = struct{}{}
			}
		}
	}

	return len(pruned), nil
}

// WithCache returns the cached JSON value under key, or calls fetch and
// caches its result. A nil cache always fetches.
func WithCache[T any](ctx context.Context, c *Cache, key string, fetch func() (T, error)) (T, error) {
	if c != nil {
		if data, ok := c.Get(ctx, key); ok {
			var result T
			if err := json.Unmarshal(data, &result); err == nil {
				return result, nil
			}
		}
	}

	result, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}

	if c != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = c.Set(ctx, key, data)
		}
	}

	return result, nil
}

func (c *Cache) readFile(hash string) ([]byte, time.Time, error) {
	meta, err := c.readMeta(hash)
	if err != nil {
		return nil, time.Time{}, err
	}

	if time.Now().After(meta.ExpiresAt) {
		_ = os.Remove(c.metaPath(hash))
		_ = os.Remove(c.dataPath(hash))
		return nil, time.Time{}, errExpired
	}

	data, err := os.ReadFile(c.dataPath(hash))
	if err != nil {
		return nil, time.Time{}, err
	}
	return data, meta.ExpiresAt, nil
}

func (c *Cache) readMeta(hash string) (fileMeta, error) {
	var meta fileMeta
	raw, err := os.ReadFile(c.metaPath(hash))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(raw, &meta)
	return meta, err
}

func (c *Cache) writeFile(hash, key string, data []byte, expiresAt time.Time) error {
	meta, err := json.Marshal(fileMeta{Key: key, ExpiresAt: expiresAt})
	if err != nil {
		return errm.Wrap(err, "failed to encode cache metadata")
	}
	if err := os.WriteFile(c.metaPath(hash), meta, 0600); err != nil {
		return errm.Wrap(err, "failed to write cache metadata")
	}
	if err := os.WriteFile(c.dataPath(hash), data, 0600); err != nil {
		return errm.Wrap(err, "failed to write cache entry")
	}
	return nil
}

func (c *Cache) dataPath(hash string) string {
	return filepath.Join(c.dir, hash+".json")
}

func (c *Cache) metaPath(hash string) string {
	return filepath.Join(c.dir, hash+".meta")
}

func isCacheFile(name string) bool {
	return strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".meta")
}

// hashKey creates a filename-safe hash of the cache key.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:16])
}
