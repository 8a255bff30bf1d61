package credential

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileStore keeps credentials as JSON files in a config directory.
// Files are written with owner-only permissions.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based credential store.
// If baseDir is empty, defaults to ~/.config/getalts/credentials/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "getalts", "credentials")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create credential dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) credPath(profile string) string {
	return filepath.Join(s.baseDir, profile+".json")
}

func (s *FileStore) Get(ctx context.Context, profile string) (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.credPath(profile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read credential file: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("parse credential: %w", err)
	}
	return &cred, nil
}

func (s *FileStore) Set(ctx context.Context, cred *Credential) error {
	if cred.Profile == "" {
		cred.Profile = DefaultProfile
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	if err := os.WriteFile(s.credPath(cred.Profile), data, 0600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, profile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.credPath(profile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read credential dir: %w", err)
	}

	var profiles []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		profiles = append(profiles, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(profiles)
	return profiles, nil
}

// Path returns the file path a profile's credential is stored at.
func (s *FileStore) Path(profile string) string {
	return s.credPath(profile)
}

var _ Store = (*FileStore)(nil)
