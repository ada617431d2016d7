package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/studyplan/internal/logger"
)

type Store struct {
	Version int                        `json:"version"`
	Data    map[string]json.RawMessage `json:"data"`
}

// JSONStore keeps every key in a single JSON document on disk.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Data:    make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'studyplan init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// An unreadable document is treated as empty; the next Put rewrites it.
		logger.Warn("Storage document is corrupt, starting empty", "path", s.path, "error", err)
		s.store = &Store{Version: 1}
	}

	if s.store.Data == nil {
		s.store.Data = make(map[string]json.RawMessage)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a sibling file and rename so a crash never leaves half a document.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	value, ok := s.store.Data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *JSONStore) Put(key string, value []byte) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if !json.Valid(value) {
		return fmt.Errorf("refusing to store invalid JSON under %q", key)
	}

	prev, existed := s.store.Data[key]
	s.store.Data[key] = json.RawMessage(append([]byte(nil), value...))
	if err := s.save(); err != nil {
		// Keep the cache equal to what is on disk.
		if existed {
			s.store.Data[key] = prev
		} else {
			delete(s.store.Data, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
