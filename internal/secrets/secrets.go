// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets locates the search provider credential. It reads a
// directory of plain-text files (the filename is the key name, the trimmed
// contents are the value) and an optional .env file.
//
// Supported key file: serpapi-api-key. Supported variable: SERPAPI_KEY.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// SerpAPIKeyFile is the secrets-directory file holding the API key.
	SerpAPIKeyFile = "serpapi-api-key"
	// SerpAPIKeyEnv is the environment / .env variable holding the API key.
	SerpAPIKeyEnv = "SERPAPI_KEY"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotenv parses a .env file without touching the process environment.
// A missing file yields an empty map.
func LoadDotenv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return vars, nil
}

// Sources lists the places an API key may come from, in precedence order.
type Sources struct {
	// Explicit is a value given on the command line or in config.
	Explicit string
	// Files is the result of Load.
	Files map[string]string
	// Dotenv is the result of LoadDotenv.
	Dotenv map[string]string
	// Getenv looks up process environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// APIKey returns the first non-empty credential: explicit value, secrets
// file, SERPAPI_KEY in the environment, then SERPAPI_KEY in .env.
func (s Sources) APIKey() string {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, v := range []string{
		s.Explicit,
		s.Files[SerpAPIKeyFile],
		getenv(SerpAPIKeyEnv),
		s.Dotenv[SerpAPIKeyEnv],
	} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
