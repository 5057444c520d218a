// Package clientconfig persists and resolves the remote API connection used by the CLI.
//
// A remote is resolved from, in order: the session override set during this
// run, the .qotdrc file in the working directory, and the QOTD_API_URL /
// QOTD_API_KEY environment variables.
package clientconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	FileName      = ".qotdrc"
	EnvAPIURL     = "QOTD_API_URL"
	EnvAPIKey     = "QOTD_API_KEY"
	DefaultAPIURL = "http://localhost:8080"
	HeaderAPIKey  = "x-api-key"
)

// Document is the on-disk shape of .qotdrc.
type Document struct {
	APIURL string `json:"apiUrl,omitempty"`
	APIKey string `json:"apiKey,omitempty"`
}

// Remote is a fully configured API endpoint. Both fields are non-empty.
type Remote struct {
	APIURL string
	APIKey string
}

// EnvSource looks up environment values. *viper.Viper satisfies it.
type EnvSource interface {
	GetString(key string) string
}

// NewEnvSource returns a viper instance bound to the process environment.
func NewEnvSource() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

// DefaultPath is .qotdrc in the current working directory.
func DefaultPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return FileName
	}
	return filepath.Join(wd, FileName)
}

type Store struct {
	path    string
	env     EnvSource
	session *Remote
}

func NewStore(path string, env EnvSource) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path, env: env}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the config file. A missing, unreadable or malformed file yields an empty Document.
func (s *Store) Load() Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Document{}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}
	}
	return doc
}

// Save writes doc as indented JSON, readable only by the owner.
func (s *Store) Save(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict permissions on %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the config file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", s.path, err)
	}
	return nil
}

// SetSessionRemote makes r visible to ResolveRemote for the rest of this process.
func (s *Store) SetSessionRemote(r Remote) {
	s.session = &r
}

// ResolveRemote returns the active remote or nil when none is configured.
func (s *Store) ResolveRemote() *Remote {
	if s.session != nil {
		r := *s.session
		return &r
	}

	if doc := s.Load(); doc.APIURL != "" && doc.APIKey != "" {
		return &Remote{APIURL: doc.APIURL, APIKey: doc.APIKey}
	}

	if s.env != nil {
		url := s.env.GetString(EnvAPIURL)
		key := s.env.GetString(EnvAPIKey)
		if url != "" && key != "" {
			return &Remote{APIURL: url, APIKey: key}
		}
	}

	return nil
}
