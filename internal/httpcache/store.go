package httpcache

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/storyshare/storyshare/internal/config"
	"github.com/storyshare/storyshare/internal/logger"
)

// ErrCacheMiss is returned by [Store.Get] when no entry exists for a key in
// the active generation.
var ErrCacheMiss = errors.New("cache miss")

// Store is the persistent response cache. Entries live in a bbolt bucket
// named after the active cache generation; superseded generations are
// deleted wholesale on activation, never migrated.
type Store struct {
	db         *bolt.DB
	generation string
	logger     *logger.Logger
}

// OpenStore opens (or creates) the cache file and activates the configured
// generation: the generation's bucket is created and every bucket with a
// different name is deleted in full.
func OpenStore(cfg config.ClientCache, log *logger.Logger) (*Store, error) {
	db, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache file: %w", err)
	}

	s := &Store{db: db, generation: cfg.Version, logger: log}
	if err := s.activate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) activate() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		var stale [][]byte
		err := tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			if string(name) != s.generation {
				stale = append(stale, append([]byte(nil), name...))
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("scan cache generations: %w", err)
		}

		for _, name := range stale {
			s.logger.Info().
				Str("stale_generation", string(name)).
				Str("active_generation", s.generation).
				Msg("deleting superseded cache generation")
			if err := tx.DeleteBucket(name); err != nil {
				return fmt.Errorf("delete stale cache generation %q: %w", name, err)
			}
		}

		if _, err := tx.CreateBucketIfNotExists([]byte(s.generation)); err != nil {
			return fmt.Errorf("create cache generation %q: %w", s.generation, err)
		}
		return nil
	})
}

// Generation returns the active cache generation tag.
func (s *Store) Generation() string {
	return s.generation
}

// Get returns the cached entry for key or [ErrCacheMiss].
func (s *Store) Get(key string) (*Entry, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(s.generation))
		if bucket == nil {
			return ErrCacheMiss
		}
		value := bucket.Get([]byte(key))
		if value == nil {
			return ErrCacheMiss
		}
		raw = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return decodeEntry(raw)
}

// Put stores the entry under key, overwriting any prior entry for the same
// key in the active generation.
func (s *Store) Put(key string, e *Entry) error {
	raw, err := encodeEntry(e)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(s.generation))
		if bucket == nil {
			return fmt.Errorf("cache generation %q missing", s.generation)
		}
		return bucket.Put([]byte(key), raw)
	})
}

// Close releases the cache file handle.
func (s *Store) Close() error {
	return s.db.Close()
}
