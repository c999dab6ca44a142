// Package credential persists the bearer credential used to talk to the
// remote device API.
package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Store holds at most one credential. Mutations must be visible to the next
// Get call.
type Store interface {
	Get() (string, bool)
	Set(token string) error
	Clear() error
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

type document struct {
	Token string `toml:"token"`
}

// FileStore keeps the credential in a small TOML file readable only by the
// current user. The file is read on every Get.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the stored credential. A missing, unreadable or malformed file
// reads as absent.
func (s *FileStore) Get() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", false
	}
	token := strings.TrimSpace(doc.Token)
	if token == "" {
		return "", false
	}
	return token, true
}

// Set writes the credential, creating directories as needed.
func (s *FileStore) Set(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("credential is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	data, err := toml.Marshal(document{Token: token})
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Clear removes the credential file. Clearing an empty store is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore returns a store seeded with token; pass "" for an empty one.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Set(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("credential is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
