package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// TokenStore persists the session token across process runs. Load returns ""
// when nothing is stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// persisted is the on-disk document. token is the only key.
type persisted struct {
	Token string `yaml:"token"`
}

// FileStore keeps the token in a YAML file readable only by its owner.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session file: %w", err)
	}
	var p persisted
	if err := yaml.Unmarshal(data, &p); err != nil {
		return "", fmt.Errorf("decode session file: %w", err)
	}
	return p.Token, nil
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := yaml.Marshal(persisted{Token: token})
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// MemoryStore is a process-local TokenStore.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
