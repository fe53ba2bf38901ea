// Package store persists saved container records across process death.
//
// Hosts that lack platform-managed saved-state storage (or want state to
// outlive it) write the binary blobs produced by backstack.Saved and
// modal.SavedModals into a bbolt database, keyed by a caller-chosen
// container ID.
package store

import (
	"encoding"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	bolt "go.etcd.io/bbolt"
)

// DefaultBucket is used when Options.Bucket is empty.
const DefaultBucket = "sfoglia"

// Options configures a Store.
type Options struct {
	Path   string `toml:"path"`   // Database file path; parent directories are created
	Bucket string `toml:"bucket"` // Bucket name, DefaultBucket if empty
}

// LoadOptions reads Options from a TOML file.
func LoadOptions(path string) (Options, error) {
	var opts Options
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return Options{}, fmt.Errorf("store: load options %q: %w", path, err)
	}
	return opts, nil
}

// Store is a bbolt-backed record store.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open opens (creating if necessary) the database at opts.Path.
func Open(opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("store: open: path is required")
	}
	bucket := opts.Bucket
	if bucket == "" {
		bucket = DefaultBucket
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, fmt.Errorf("store: open %q: %w", opts.Path, err)
	}
	db, err := bolt.Open(opts.Path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", opts.Path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create bucket %q: %w", bucket, err)
	}

	return &Store{db: db, bucket: []byte(bucket)}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes record's binary form under containerID, replacing any
// previous record.
func (s *Store) Save(containerID string, record encoding.BinaryMarshaler) error {
	blob, err := record.MarshalBinary()
	if err != nil {
		return fmt.Errorf("store: save %q: %w", containerID, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(containerID), blob)
	})
	if err != nil {
		return fmt.Errorf("store: save %q: %w", containerID, err)
	}
	return nil
}

// Load reads the record stored under containerID into dst. The bool reports
// whether a record existed.
func (s *Store) Load(containerID string, dst encoding.BinaryUnmarshaler) (bool, error) {
	var blob []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(s.bucket).Get([]byte(containerID)); v != nil {
			blob = make([]byte, len(v))
			copy(blob, v)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("store: load %q: %w", containerID, err)
	}
	if blob == nil {
		return false, nil
	}
	if err := dst.UnmarshalBinary(blob); err != nil {
		return false, fmt.Errorf("store: load %q: %w", containerID, err)
	}
	return true, nil
}

// Delete removes the record stored under containerID, if any.
func (s *Store) Delete(containerID string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(containerID))
	})
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", containerID, err)
	}
	return nil
}
