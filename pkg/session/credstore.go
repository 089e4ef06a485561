package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mwapio/console/pkg/observability"
)

// Credential is the persisted login outcome
type Credential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Profile      Profile   `json:"profile"`
}

// DefaultCredentialsPath returns the default credential cache location
func DefaultCredentialsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config dir: %w", err)
	}
	return filepath.Join(dir, "mwap", "credentials.json"), nil
}

// FileStore persists the credential under a fixed path
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a credential store at path, or the default
// location when path is empty.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultCredentialsPath()
		if err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path}, nil
}

// Path returns the credential file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted credential. A missing file yields (nil, nil).
func (s *FileStore) Load() (*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return &cred, nil
}

// Save persists the credential with owner-only permissions
func (s *FileStore) Save(cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// Clear removes the persisted credential. Missing files are not errors.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}

// Watch invokes onChange whenever the credential file is created,
// rewritten, or removed by any process. It watches the parent directory
// because editors and logouts replace or delete the file itself.
// The watch stops when ctx is cancelled.
func (s *FileStore) Watch(ctx context.Context, logger *observability.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch credentials dir: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name == s.path {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithError(err).Warn("credentials watch error")
			}
		}
	}()

	return nil
}
