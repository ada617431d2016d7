package bolt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/storage"
)

var (
	// Buckets created up front; Put creates any other key's bucket on demand.
	Buckets = [][]byte{
		[]byte(constants.KeyClasses),
		[]byte(constants.KeyAssignments),
		[]byte(constants.KeySettings),
	}
	dataKey = []byte("data")
)

// Store keeps each collection in its own bbolt bucket under the "data" key.
type Store struct {
	path string
	db   *bbolt.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) open() error {
	// bbolt holds an exclusive file lock, so a second process waits briefly
	// and then fails rather than blocking forever.
	db, err := bbolt.Open(s.path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range Buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return s.open()
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'studyplan init' first")
	}
	return s.open()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) Get(key string) ([]byte, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(key))
		if b == nil {
			return storage.ErrNotFound
		}
		v := b.Get(dataKey)
		if v == nil {
			return storage.ErrNotFound
		}
		// Values are only valid for the life of the transaction.
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return out, err
}

func (s *Store) Put(key string, value []byte) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return err
		}
		return b.Put(dataKey, value)
	})
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// IsBoltPath reports whether a --config path selects the bbolt backend.
func IsBoltPath(path string) bool {
	switch filepath.Ext(path) {
	case ".bolt", ".bbolt":
		return true
	}
	return false
}
