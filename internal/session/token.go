package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const credentialsFileName = "credentials.json"

// TokenSource is the durable home of the bearer token: the file-backed
// implementation for the CLI, an in-memory one for tests. The web
// portal keeps tokens inside its session records instead.
type TokenSource interface {
	// Load returns the stored token, or empty string when none exists.
	Load() (string, error)
	// Store persists the token.
	Store(token string) error
	// Clear removes the stored token.
	Clear() error
}

// FileTokenSource stores the token in
// ~/.matchably/credentials.json with owner-only permissions.
type FileTokenSource struct {
	// Path overrides the default location when non-empty.
	Path string
}

type credentials struct {
	Token string `json:"token"`
}

func (f *FileTokenSource) path() (string, error) {
	if f.Path != "" {
		return f.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".matchably", credentialsFileName), nil
}

// Load implements TokenSource.
func (f *FileTokenSource) Load() (string, error) {
	p, err := f.path()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read credentials: %w", err)
	}
	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("parse credentials: %w", err)
	}
	return creds.Token, nil
}

// Store implements TokenSource.
func (f *FileTokenSource) Store(token string) error {
	p, err := f.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(credentials{Token: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(p, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear implements TokenSource.
func (f *FileTokenSource) Clear() error {
	p, err := f.path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// MemoryTokenSource holds the token in memory. Used in tests and for
// one-shot invocations that pass the token on the command line.
type MemoryTokenSource struct {
	Token string
}

// Load implements TokenSource.
func (m *MemoryTokenSource) Load() (string, error) { return m.Token, nil }

// Store implements TokenSource.
func (m *MemoryTokenSource) Store(token string) error {
	m.Token = token
	return nil
}

// Clear implements TokenSource.
func (m *MemoryTokenSource) Clear() error {
	m.Token = ""
	return nil
}
