// Package cart provides the shopper's cart and wishlist.
//
// Both containers keep their state in memory and write it through an
// injected Persistence after every change; they never touch files or the
// database directly.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Persistence loads and saves a container's state.
// Load returns the zero T when nothing has been saved yet.
type Persistence[T any] interface {
	Load() (T, error)
	Save(T) error
}

// Memory keeps state in process. Useful in tests and as a fallback when
// no other backend is configured.
type Memory[T any] struct {
	mu    sync.Mutex
	state T
	saves int
}

// NewMemory returns an empty Memory.
func NewMemory[T any]() *Memory[T] { return &Memory[T]{} }

func (m *Memory[T]) Load() (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *Memory[T]) Save(v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = v
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *Memory[T]) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// JSONFile stores state as JSON in a single file, written atomically.
type JSONFile[T any] struct {
	path string
}

// NewJSONFile returns a JSONFile at path. The directory is created on save.
func NewJSONFile[T any](path string) *JSONFile[T] { return &JSONFile[T]{path: path} }

func (f *JSONFile[T]) Load() (T, error) {
	var v T
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return v, nil
	}
	if err != nil {
		return v, fmt.Errorf("read %s: %w", f.path, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return v, nil
}

func (f *JSONFile[T]) Save(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// StateStore is the key/value slice of the store used for persistence.
type StateStore interface {
	LoadState(ctx context.Context, key string) ([]byte, error)
	SaveState(ctx context.Context, key string, data []byte) error
}

// stateTimeout bounds each store round trip.
const stateTimeout = 5 * time.Second

// StoreState keeps state as JSON under one key of a StateStore.
type StoreState[T any] struct {
	store StateStore
	key   string
}

// NewStoreState returns a StoreState for key.
func NewStoreState[T any](store StateStore, key string) *StoreState[T] {
	return &StoreState[T]{store: store, key: key}
}

func (s *StoreState[T]) Load() (T, error) {
	var v T
	ctx, cancel := context.WithTimeout(context.Background(), stateTimeout)
	defer cancel()

	data, err := s.store.LoadState(ctx, s.key)
	if err != nil || data == nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode state %q: %w", s.key, err)
	}
	return v, nil
}

func (s *StoreState[T]) Save(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode state %q: %w", s.key, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), stateTimeout)
	defer cancel()
	return s.store.SaveState(ctx, s.key, data)
}
