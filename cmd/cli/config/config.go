package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the asset inventory API.
// It can be overridden with the ASSET_INVENTORY_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("ASSET_INVENTORY_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".asset-inventory", "token"), nil
}

// SaveToken stores the JWT for subsequent CLI commands, readable only by the
// current user.
func SaveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// ReadToken returns the stored JWT, or an error when no login happened yet.
func ReadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("no stored token (run \"assetctl login\" first): %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
