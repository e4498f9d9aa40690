// Package loader fetches, decodes and caches the images shown by the viewer.
package loader

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFileName   = "fyviewer_cache.db"
	appName      = "fyviewer"
	ImagesBucket = "Images" // Bucket name for reference to image bytes.
	MetaBucket   = "Meta"   // Bucket name for reference to entry metadata.
)

// LoggerFunc defines a function signature for logging messages.
type LoggerFunc func(message string)

// Cache is a persistent byte cache keyed by image reference.
type Cache struct {
	db     *bolt.DB
	path   string
	logger LoggerFunc
}

// entryMeta is stored next to the bytes of each entry.
type entryMeta struct {
	Size     int       `json:"size"`
	StoredAt time.Time `json:"stored_at"`
}

// CacheStats summarises the cache contents.
type CacheStats struct {
	Path    string
	Entries int
	Bytes   int64
}

// DefaultCacheDir returns the per-user cache directory of the application.
func DefaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache dir: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

// OpenCache creates or opens the cache database in dir. An empty dir selects
// DefaultCacheDir, or the current directory if that is unavailable.
func OpenCache(dir string, logger LoggerFunc) (*Cache, error) {
	if dir == "" {
		d, err := DefaultCacheDir()
		if err != nil {
			log.Printf("Warning: %v. Using current dir.", err)
			d = "."
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{ImagesBucket, MetaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	c := &Cache{db: db, path: dbPath, logger: logger}
	c.logMessage("Using image cache at: %s", dbPath)
	return c, nil
}

func (c *Cache) logMessage(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger(fmt.Sprintf(format, args...))
	} else {
		log.Printf(format, args...)
	}
}

// Path returns the database file.
func (c *Cache) Path() string {
	return c.path
}

// Close closes the database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get returns the bytes stored for ref. ok is false when there is no entry.
func (c *Cache) Get(ref string) (data []byte, ok bool, err error) {
	err = c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(ImagesBucket)).Get([]byte(ref))
		if v != nil {
			// Values are only valid inside the transaction.
			data = append([]byte(nil), v...)
			ok = true
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry %s: %w", ref, err)
	}
	return data, ok, nil
}

// Put stores data for ref, replacing any previous entry.
func (c *Cache) Put(ref string, data []byte) error {
	meta, err := json.Marshal(entryMeta{Size: len(data), StoredAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to encode cache metadata: %w", err)
	}
	err = c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(ImagesBucket)).Put([]byte(ref), data); err != nil {
			return err
		}
		return tx.Bucket([]byte(MetaBucket)).Put([]byte(ref), meta)
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", ref, err)
	}
	return nil
}

// Delete removes the entry for ref. Deleting a missing entry is not an error.
func (c *Cache) Delete(ref string) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(ImagesBucket)).Delete([]byte(ref)); err != nil {
			return err
		}
		return tx.Bucket([]byte(MetaBucket)).Delete([]byte(ref))
	})
	if err != nil {
		return fmt.Errorf("failed to delete cache entry %s: %w", ref, err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (c *Cache) Clear() (int, error) {
	removed := 0
	err := c.db.Update(func(tx *bolt.Tx) error {
		removed = tx.Bucket([]byte(ImagesBucket)).Stats().KeyN
		for _, name := range []string{ImagesBucket, MetaBucket} {
			if err := tx.DeleteBucket([]byte(name)); err != nil {
				return fmt.Errorf("failed to delete bucket %s: %w", name, err)
			}
			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return fmt.Errorf("failed to recreate bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	c.logMessage("Cleared %d cached images", removed)
	return removed, nil
}

// Stats counts the entries and their total size.
func (c *Cache) Stats() (CacheStats, error) {
	stats := CacheStats{Path: c.path}
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(MetaBucket)).ForEach(func(k, v []byte) error {
			var m entryMeta
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("corrupt metadata for %s: %w", k, err)
			}
			stats.Entries++
			stats.Bytes += int64(m.Size)
			return nil
		})
	})
	if err != nil {
		return CacheStats{Path: c.path}, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return stats, nil
}
