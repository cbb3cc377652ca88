// Package config loads the client configuration: the backend base URL,
// request timeout and the state directory that stands in for a browser
// profile. Sources, later ones winning: built-in defaults, the TOML
// file in the state directory, a .env file in the working directory,
// then real environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultBaseURL points at a local development backend.
	DefaultBaseURL = "http://localhost:8080"

	dirName        = ".sportbook"
	configFileName = "config.toml"
	stateFileName  = "state.json"
	logFileName    = "sportbook.log"

	envBaseURL = "SPORTBOOK_API_URL"
	envHome    = "SPORTBOOK_HOME"
)

// Config is the resolved client configuration.
type Config struct {
	// APIBaseURL is the booking backend address.
	APIBaseURL string `toml:"api_base_url"`
	// RequestTimeoutSeconds bounds each backend call.
	RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
	// Dir is the state directory; not part of the file itself.
	Dir string `toml:"-"`
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// StateFile is the path of the local key-value state file.
func (c Config) StateFile() string { return filepath.Join(c.Dir, stateFileName) }

// LogFile is the path of the diagnostic log file.
func (c Config) LogFile() string { return filepath.Join(c.Dir, logFileName) }

// Load resolves the configuration. A missing config file is not an
// error; a malformed one is.
func Load() (Config, error) {
	// A .env in the working directory is a development convenience;
	// absence is the normal case.
	_ = godotenv.Load()

	dir, err := stateDir()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{APIBaseURL: DefaultBaseURL, Dir: dir}

	path := filepath.Join(dir, configFileName)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults apply
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.Dir = dir
	}

	if v := os.Getenv(envBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	return cfg, nil
}

// stateDir resolves the state directory, honoring SPORTBOOK_HOME for
// tests and multi-profile use.
func stateDir() (string, error) {
	if v := os.Getenv(envHome); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}
