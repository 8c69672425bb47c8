// Package config loads and persists the application settings: the API
// domain, an optional log file, and the HTTP timeout. The TOML file lives
// in the platform config directory and every field can be overridden from
// the environment.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/pelletier/go-toml/v2"
)

const (
	configDirName  = "liiga_teletext"
	configFileName = "config.toml"

	// DefaultHTTPTimeoutSeconds bounds every API request.
	DefaultHTTPTimeoutSeconds = 30
)

// Config is the resolved run configuration.
type Config struct {
	APIDomain          string `toml:"api_domain" env:"LIIGA_API_DOMAIN"`
	LogFilePath        string `toml:"log_file_path,omitempty" env:"LIIGA_LOG_FILE"`
	HTTPTimeoutSeconds int    `toml:"http_timeout_seconds" env:"LIIGA_HTTP_TIMEOUT"`
}

// Path returns the config file location under the platform config dir.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// Load reads the TOML file (when present), applies environment overrides,
// and normalizes the result. A missing file is not an error; the caller
// decides whether to prompt.
func Load() (Config, error) {
	cfg := Config{HTTPTimeoutSeconds: DefaultHTTPTimeoutSeconds}

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// first run, nothing persisted yet
	case err != nil:
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// Save persists the config, creating the directory on first write.
func (c Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// normalize rewrites plain or http domains to https and fills the timeout
// default.
func (c *Config) normalize() {
	c.APIDomain = NormalizeDomain(c.APIDomain)
	if c.HTTPTimeoutSeconds <= 0 {
		c.HTTPTimeoutSeconds = DefaultHTTPTimeoutSeconds
	}
}

// NormalizeDomain forces an https scheme on anything that looks like a
// real domain. Placeholder values pass through untouched so the API layer
// can recognize them.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	switch strings.ToLower(domain) {
	case "", "placeholder", "test", "unset":
		return domain
	}
	if strings.HasPrefix(domain, "http://") {
		return "https://" + strings.TrimPrefix(domain, "http://")
	}
	if !strings.HasPrefix(domain, "https://") {
		return "https://" + domain
	}
	return domain
}

// HasAPIDomain reports whether a usable domain is configured.
func (c Config) HasAPIDomain() bool {
	switch strings.ToLower(strings.TrimSpace(c.APIDomain)) {
	case "", "placeholder", "test", "unset":
		return false
	}
	return true
}

// PromptAPIDomain runs the first-run prompt, reading an API domain from
// the reader, and persists the result.
func PromptAPIDomain(r io.Reader, w io.Writer) (Config, error) {
	fmt.Fprintln(w, "Liiga API domain is not configured.")
	fmt.Fprint(w, "Enter API domain (e.g. https://api.example.com): ")

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return Config{}, fmt.Errorf("no API domain provided")
	}
	domain := NormalizeDomain(scanner.Text())
	if domain == "" {
		return Config{}, fmt.Errorf("no API domain provided")
	}

	cfg := Config{APIDomain: domain, HTTPTimeoutSeconds: DefaultHTTPTimeoutSeconds}
	if err := cfg.Save(); err != nil {
		return Config{}, err
	}
	fmt.Fprintln(w, "Saved.")
	return cfg, nil
}
