/*
Package config loads client settings from the environment.

A .env file in the working directory is applied first (existing variables
win), then PARLEY_* variables are unmarshaled into Config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config contains all client settings.
type Config struct {
	APIURL       string        `env:"PARLEY_API_URL,default=https://api.parley.chat"`
	Token        string        `env:"PARLEY_TOKEN"`
	Environment  string        `env:"PARLEY_ENV,default=production"`
	LogLevel     string        `env:"PARLEY_LOG_LEVEL,default=info"`
	LogFile      string        `env:"PARLEY_LOG_FILE"`
	SessionDir   string        `env:"PARLEY_SESSION_DIR"`
	SessionTTL   time.Duration `env:"PARLEY_SESSION_TTL,default=12h"`
	HistoryLimit int           `env:"PARLEY_HISTORY_LIMIT,default=50"`
	Stream       bool          `env:"PARLEY_STREAM,default=true"`

	// ReleaseURL is a latest-release endpoint returning {"tag_name": ...}; empty skips the check.
	ReleaseURL string `env:"PARLEY_RELEASE_URL"`

	// HomeDir is ~/.parley; not read from the environment.
	HomeDir string
}

// IsDevelopment reports whether the client runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// TokenFile returns ~/.parley/token.
func (c Config) TokenFile() string {
	return filepath.Join(c.HomeDir, "token")
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}
	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return FromEnvSet(es, home)
}

// FromEnvSet builds a Config from an explicit variable set, filling path defaults under home.
func FromEnvSet(es env.EnvSet, home string) (*Config, error) {
	var cfg Config
	if err := env.Unmarshal(es, &cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.HomeDir = filepath.Join(home, ".parley")
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.HomeDir, "parley.log")
	}
	if cfg.SessionDir == "" {
		cfg.SessionDir = filepath.Join(cfg.HomeDir, "session")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	switch c.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("invalid PARLEY_ENV %q: want development or production", c.Environment)
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("invalid PARLEY_API_URL %q: want an http(s) URL", c.APIURL)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("PARLEY_SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.HistoryLimit < 1 || c.HistoryLimit > 200 {
		return fmt.Errorf("PARLEY_HISTORY_LIMIT %d is outside the range 1-200", c.HistoryLimit)
	}
	if c.ReleaseURL != "" && !strings.HasPrefix(c.ReleaseURL, "http://") && !strings.HasPrefix(c.ReleaseURL, "https://") {
		return fmt.Errorf("invalid PARLEY_RELEASE_URL %q: want an http(s) URL", c.ReleaseURL)
	}
	return nil
}

// ReadToken returns the auth token using precedence: env var > token file > empty.
func (c Config) ReadToken() string {
	if c.Token != "" {
		return c.Token
	}
	data, err := os.ReadFile(c.TokenFile())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
