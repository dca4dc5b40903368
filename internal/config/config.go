package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	TMDB     TMDBConfig     `toml:"tmdb"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host                   string `toml:"host" env:"MEDIATRACK_HOST"`
	Port                   int    `toml:"port" env:"MEDIATRACK_PORT"`
	ReadTimeoutSeconds     int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `toml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `toml:"shutdown_timeout_seconds"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `toml:"path" env:"MEDIATRACK_DB_PATH"`
}

// TMDBConfig holds settings for the upstream metadata provider.
type TMDBConfig struct {
	APIKey                string `toml:"api_key" env:"TMDB_API_KEY"`
	BaseURL               string `toml:"base_url" env:"TMDB_BASE_URL"`
	ImageBaseURL          string `toml:"image_base_url"`
	SearchTimeoutSeconds  int    `toml:"search_timeout_seconds"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// LogConfig holds logging settings. File is optional; when set, logs are
// also written to a size-rotated file.
type LogConfig struct {
	Level      string `toml:"level" env:"MEDIATRACK_LOG_LEVEL"`
	Format     string `toml:"format"`
	File       string `toml:"file" env:"MEDIATRACK_LOG_FILE"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ReadTimeout returns the read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown timeout as a duration.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// SearchTimeout returns the upstream search timeout as a duration.
func (t TMDBConfig) SearchTimeout() time.Duration {
	return time.Duration(t.SearchTimeoutSeconds) * time.Second
}

// RequestTimeout returns the upstream details/credits timeout as a duration.
func (t TMDBConfig) RequestTimeout() time.Duration {
	return time.Duration(t.RequestTimeoutSeconds) * time.Second
}

const defaultConfigContent = `[server]
host = "localhost"
port = 3000
read_timeout_seconds = 15
write_timeout_seconds = 30
shutdown_timeout_seconds = 10

[database]
path = "data/mediatrack.db"

[tmdb]
api_key = ""                      # Your TMDB v3 API key (or set TMDB_API_KEY env var)
base_url = "https://api.themoviedb.org/3"
image_base_url = "https://image.tmdb.org/t/p/w500"
search_timeout_seconds = 10
request_timeout_seconds = 15

[log]
level = "info"                    # debug, info, warn, error
format = "text"                   # text or json
file = ""                         # Optional rotating log file
max_size_mb = 100
max_backups = 3
max_age_days = 28
compress = false
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("tmdb", "search_timeout_seconds") && cfg.TMDB.SearchTimeoutSeconds < 1 {
		return fmt.Errorf("invalid tmdb.search_timeout_seconds %d: must be >= 1", cfg.TMDB.SearchTimeoutSeconds)
	}
	if md.IsDefined("tmdb", "request_timeout_seconds") && cfg.TMDB.RequestTimeoutSeconds < 1 {
		return fmt.Errorf("invalid tmdb.request_timeout_seconds %d: must be >= 1", cfg.TMDB.RequestTimeoutSeconds)
	}
	if md.IsDefined("database", "path") && strings.TrimSpace(cfg.Database.Path) == "" {
		return errors.New("invalid database.path: must not be empty")
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 30
	}
	if cfg.Server.ShutdownTimeoutSeconds == 0 {
		cfg.Server.ShutdownTimeoutSeconds = 10
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/mediatrack.db"
	}
	if cfg.TMDB.BaseURL == "" {
		cfg.TMDB.BaseURL = "https://api.themoviedb.org/3"
	}
	if cfg.TMDB.ImageBaseURL == "" {
		cfg.TMDB.ImageBaseURL = "https://image.tmdb.org/t/p/w500"
	}
	if cfg.TMDB.SearchTimeoutSeconds == 0 {
		cfg.TMDB.SearchTimeoutSeconds = 10
	}
	if cfg.TMDB.RequestTimeoutSeconds == 0 {
		cfg.TMDB.RequestTimeoutSeconds = 15
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 100
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = 28
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "text", "json":
		// valid
	default:
		return fmt.Errorf("invalid log.format %q: must be \"text\" or \"json\"", cfg.Log.Format)
	}

	if !strings.HasPrefix(cfg.TMDB.BaseURL, "http://") && !strings.HasPrefix(cfg.TMDB.BaseURL, "https://") {
		return fmt.Errorf("invalid tmdb.base_url %q: must be an HTTP or HTTPS URL", cfg.TMDB.BaseURL)
	}

	if cfg.TMDB.APIKey == "" {
		slog.Warn("tmdb.api_key is empty: set it in the config file or via TMDB_API_KEY environment variable")
	}

	return nil
}
