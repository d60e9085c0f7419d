// Package settings stores weft user settings in the XDG data directory:
//
//	$XDG_DATA_HOME/weft/  (default: ~/.local/share/weft/)
//
// auth.json holds the content-store token, site identifier and translation
// API key with 0600 permissions. Lookup order everywhere is flag, then
// environment variable, then this store.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dataDirName = "weft"
	fileName    = "auth.json"
)

// Credentials are the stored secrets and identifiers.
type Credentials struct {
	SiteID       string `json:"siteId,omitempty"`
	WebflowToken string `json:"webflowToken,omitempty"`
	OpenAIKey    string `json:"openaiKey,omitempty"`
}

// Path returns the credentials file path, honouring XDG_DATA_HOME.
func Path() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, dataDirName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName, fileName), nil
}

// Load reads stored credentials. A missing file yields empty credentials,
// not an error.
func Load() (Credentials, error) {
	path, err := Path()
	if err != nil {
		return Credentials{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, nil
		}
		return Credentials{}, fmt.Errorf("reading credentials: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("parsing credentials: %w", err)
	}
	return creds, nil
}

// Save writes credentials with owner-only permissions.
func Save(creds Credentials) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}
