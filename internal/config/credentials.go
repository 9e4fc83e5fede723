package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// APIKeyName is the name the completion API key is looked up under
const APIKeyName = "OPENAI_API_KEY"

// CredentialSource tells where a credential was found
type CredentialSource string

const (
	SourceNone        CredentialSource = ""
	SourceSecretStore CredentialSource = "secret_store"
	SourceEnvironment CredentialSource = "environment"
)

// SecretStore looks up named secrets
type SecretStore interface {
	Lookup(name string) (string, error)
}

// FileSecretStore reads secrets from a TOML file (the streamlit secrets.toml layout).
// A missing file holds no secrets.
type FileSecretStore struct {
	path string
}

// NewFileSecretStore creates a store backed by path
func NewFileSecretStore(path string) *FileSecretStore {
	return &FileSecretStore{path: path}
}

// Lookup returns the trimmed value stored under name, or "" when absent
func (s *FileSecretStore) Lookup(name string) (string, error) {
	if s.path == "" {
		return "", nil
	}
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading secrets file %s: %w", s.path, err)
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("reading secrets file %s: %w", s.path, err)
	}
	return strings.TrimSpace(v.GetString(name)), nil
}

// Credential is the outcome of ResolveAPIKey.
// StoreErr is set when the secret store could not be read; the environment was still consulted.
type Credential struct {
	Value    string
	Source   CredentialSource
	StoreErr error
}

// ResolveAPIKey returns the first non-empty value for APIKeyName from the
// secret store, then the environment.
func ResolveAPIKey(store SecretStore, getenv func(string) string) Credential {
	var cred Credential
	if store != nil {
		value, err := store.Lookup(APIKeyName)
		if err != nil {
			cred.StoreErr = err
		} else if value != "" {
			cred.Value = value
			cred.Source = SourceSecretStore
			return cred
		}
	}
	if getenv != nil {
		if value := strings.TrimSpace(getenv(APIKeyName)); value != "" {
			cred.Value = value
			cred.Source = SourceEnvironment
		}
	}
	return cred
}
