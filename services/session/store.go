package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"kisansaarthi/utils"
)

// Fixed keys under which the session is persisted.
const (
	KeyToken    = "token"
	KeyUserName = "userName"
)

// ErrNotFound is returned by Get for a key that was never set or was deleted.
var ErrNotFound = errors.New("session: key not set")

// Store is client-local key/value storage for the session.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// FileStore keeps the keys in one JSON file readable only by its owner.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore stores at path, or at DefaultFilePath when path is empty. The
// file is created on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		if path, err = DefaultFilePath(); err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path}, nil
}

// DefaultFilePath is session.json under the user's config directory.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "kisansaarthi", "session.json"), nil
}

// Path is where the file lives.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load()
	if err != nil {
		return "", err
	}
	v, ok := data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *FileStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load()
	if err != nil {
		return err
	}
	data[key] = value
	return f.save(data)
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return f.save(data)
}

func (f *FileStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode session file %s: %w", f.path, err)
	}
	return data, nil
}

// save writes through a temp file and rename so a crash never leaves half a file.
func (f *FileStore) save(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*.json")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// KVPrefix namespaces session keys inside a shared cache.
const KVPrefix = "session:"

// KVStore keeps the keys in a utils.KV, i.e. redis or process memory. Keys
// never expire.
type KVStore struct {
	kv utils.KV
}

// NewKVStore wraps kv under KVPrefix.
func NewKVStore(kv utils.KV) *KVStore {
	return &KVStore{kv: kv}
}

// Get returns ErrNotFound for a missing key.
func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, KVPrefix+key)
	if errors.Is(err, utils.ErrCacheMiss) {
		return "", ErrNotFound
	}
	return v, err
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	return s.kv.Set(ctx, KVPrefix+key, value, 0)
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.kv.Del(ctx, KVPrefix+key)
}
