// Package cache keeps measurement reports in a local bolt file, keyed by a
// hash of the scene document they were computed from.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/reusee/mmh3"
	bolt "go.etcd.io/bbolt"
)

var reportsBucket = []byte("reports")

type Cache struct {
	db *bolt.DB
}

// Open opens or creates the cache file at path, with its directory. It
// gives up after a second when another process holds the file.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(reportsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Key returns the key of a report of the given kind over document and
// the parameters it was computed with.
func Key(kind string, document []byte, params ...string) []byte {
	h := mmh3.New32()
	h.Write(document)
	for _, p := range params {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return []byte(kind + ":" + hex.EncodeToString(h.Sum(nil)))
}

// Get decodes the report stored under key into v. It reports false when
// there is none.
func (c *Cache) Get(key []byte, v any) (bool, error) {
	var data []byte
	if err := c.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(reportsBucket).Get(key); raw != nil {
			data = append([]byte(nil), raw...)
		}
		return nil
	}); err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode cached report %s: %w", key, err)
	}
	return true, nil
}

// Put stores v under key.
func (c *Cache) Put(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(reportsBucket).Put(key, data)
	})
}

// Len returns the number of cached reports.
func (c *Cache) Len() (int, error) {
	n := 0
	err := c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(reportsBucket).Stats().KeyN
		return nil
	})
	return n, err
}
