// Package credfile persists the admin credential in a YAML file with
// owner-only permissions.
package credfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// Store is a file-backed credential store.
type Store struct {
	path string
}

// New creates a Store at path. The parent directory is created lazily on
// first Set.
func New(path string) *Store {
	return &Store{path: path}
}

// Get loads the stored credential. A missing file is not an error; it
// returns a zero credential.
func (s *Store) Get() (domain.Credential, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.Credential{}, nil
	}
	if err != nil {
		return domain.Credential{}, fmt.Errorf("read credential file: %w", err)
	}

	var cred domain.Credential
	if err := yaml.Unmarshal(data, &cred); err != nil {
		return domain.Credential{}, fmt.Errorf("parse credential file: %w", err)
	}
	return cred, nil
}

// Set writes the credential with 0600 permissions.
func (s *Store) Set(cred domain.Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	data, err := yaml.Marshal(cred)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}

// Clear removes the credential file. Clearing an absent file succeeds.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}
