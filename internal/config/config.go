// Package config loads CLI configuration from the XDG config dir.
// Only non-secret settings are kept here; session state goes to the OS keychain.
//
// Values are layered: built-in defaults, then config.json, then a .env file in
// the working directory, then process environment. Command-line flags are
// applied on top by the cmd package.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"portal/cli/internal/xdg"
)

// Defaults.
const (
	DefaultBaseURL        = "http://localhost:8080/api"
	DefaultTimeoutSeconds = 10
	DefaultLogLevel       = "info"
)

// Environment variables read by Load.
const (
	EnvBaseURL         = "PORTAL_BASE_URL"
	EnvTimeout         = "PORTAL_TIMEOUT"
	EnvVerbose         = "PORTAL_VERBOSE"
	EnvKeyringPassword = "PORTAL_KEYRING_PASSWORD"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL        string `json:"base_url" validate:"required,url"`
	TimeoutSeconds int    `json:"timeout_seconds" validate:"gte=1,lte=300"`
	LogLevel       string `json:"log_level" validate:"oneof=info debug"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		LogLevel:       DefaultLogLevel,
	}
}

// Timeout returns the per-request HTTP timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Verbose reports whether debug output was requested.
func (c Config) Verbose() bool {
	return c.LogLevel == "debug"
}

// Validate checks the settings against their constraints.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing files yield defaults.
// The result is not validated: callers apply their flags and then call Validate.
func Load() (Config, error) {
	p, err := path()
	if err != nil {
		return Defaults(), err
	}
	return loadFrom(p, ".env")
}

func loadFrom(configPath, dotenvPath string) (Config, error) {
	c := Defaults()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return c, err
	}

	dotenv, err := godotenv.Read(dotenvPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("read %s: %w", dotenvPath, err)
	}
	lookup := func(key string) string {
		// process environment wins over .env
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	if v := strings.TrimSpace(lookup(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(lookup(EnvTimeout)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.TimeoutSeconds = n
	}
	if v := lookup(EnvVerbose); v == "1" || strings.EqualFold(v, "true") {
		c.LogLevel = "debug"
	}

	return c, nil
}

// KeyringPassword returns the passphrase for the file keyring backend, if any.
func KeyringPassword() string {
	if v := os.Getenv(EnvKeyringPassword); v != "" {
		return v
	}
	if env, err := godotenv.Read(".env"); err == nil {
		return env[EnvKeyringPassword]
	}
	return ""
}
