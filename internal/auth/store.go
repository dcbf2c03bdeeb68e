package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoToken is returned by a Store when no token has been persisted yet.
// It is not a failure: it signals that authorization has never run.
var ErrNoToken = errors.New("no stored token")

// Store persists the current token record. Implementations must replace
// the record atomically so a failed write never leaves a half-written
// token behind.
type Store interface {
	Load() (*Token, error)
	Save(*Token) error
}

// FileStore keeps the token as a single JSON object at a well-known path.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed token store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted token. A missing file is ErrNoToken.
func (s *FileStore) Load() (*Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("reading token file: %w", err)
	}

	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decoding token file: %w", err)
	}
	return &tok, nil
}

// Save writes the token via a temporary file and rename, so the previous
// record survives intact if the write fails partway.
func (s *FileStore) Save(tok *Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("creating temp token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("restricting token file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing token file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing token file: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests and dry runs.
type MemoryStore struct {
	mu  sync.Mutex
	tok *Token
}

func (s *MemoryStore) Load() (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tok == nil {
		return nil, ErrNoToken
	}
	cp := *s.tok
	return &cp, nil
}

func (s *MemoryStore) Save(tok *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *tok
	s.tok = &cp
	return nil
}
