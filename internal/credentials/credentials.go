// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credentials loads and saves the Custom Search API credentials.
// The credential file is a JSON object with "api_key" and
// "search_engine_id" fields. It lives at ~/.config/sitegrab/
// credentials.json; a sitegrab_credentials.json in the working directory
// takes precedence when present.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// localFile is the working-directory credential file name.
const localFile = "sitegrab_credentials.json"

// Credentials holds the key pair the search API requires.
type Credentials struct {
	APIKey         string `json:"api_key"`
	SearchEngineID string `json:"search_engine_id"`
}

// Complete reports whether both fields are set.
func (c Credentials) Complete() bool {
	return c.APIKey != "" && c.SearchEngineID != ""
}

// DefaultPath returns the credential file path: the working-directory
// file when it exists, otherwise the per-user config location.
func DefaultPath() string {
	if _, err := os.Stat(localFile); err == nil {
		return localFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return localFile
	}
	return filepath.Join(home, ".config", "sitegrab", "credentials.json")
}

// Load reads credentials from path. A missing file is not an error;
// Load returns zero credentials. Malformed JSON is an error.
func Load(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, nil
		}
		return Credentials{}, fmt.Errorf("reading credential file %s: %w", path, err)
	}

	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return Credentials{}, fmt.Errorf("parsing credential file %s: %w", path, err)
	}
	return c, nil
}

// Save writes credentials to path as indented JSON, creating parent
// directories as needed. The file is written with owner-only permissions.
func Save(path string, c Credentials) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating credential directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing credential file %s: %w", path, err)
	}
	return nil
}
