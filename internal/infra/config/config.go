// Where: internal/infra/config/config.go
// What: Runtime configuration: storage location, update source, HTTP settings.
// Why: Pass paths and endpoints explicitly instead of process-wide constants.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/antipatico/portid/internal/meta"
	"github.com/antipatico/portid/internal/version"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvDataDir     = meta.EnvPrefix + "_DATA_DIR"
	EnvUpdateURL   = meta.EnvPrefix + "_UPDATE_URL"
	EnvUserAgent   = meta.EnvPrefix + "_USER_AGENT"
	EnvHTTPTimeout = meta.EnvPrefix + "_HTTP_TIMEOUT"
	EnvS3Endpoint  = meta.EnvPrefix + "_S3_ENDPOINT"
	EnvConfigPath  = meta.EnvPrefix + "_CONFIG"
)

// Config holds everything the store and refresh need to locate data.
type Config struct {
	DataDir     string        `yaml:"data_dir,omitempty"`
	DBName      string        `yaml:"db_name,omitempty"`
	UpdateURL   string        `yaml:"update_url,omitempty"`
	UserAgent   string        `yaml:"user_agent,omitempty"`
	HTTPTimeout time.Duration `yaml:"http_timeout,omitempty"`
	S3Endpoint  string        `yaml:"s3_endpoint,omitempty"`
	S3Region    string        `yaml:"s3_region,omitempty"`
}

// Default returns the built-in configuration. HTTPTimeout is zero: downloads
// are not time-limited unless configured.
func Default() (Config, error) {
	dataDir, err := DefaultDataDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		DataDir:   dataDir,
		DBName:    meta.DBFileName,
		UpdateURL: meta.DefaultUpdateURL,
		UserAgent: version.UserAgent(),
	}, nil
}

// DefaultDataDir returns $XDG_DATA_HOME/portid or ~/.local/share/portid.
func DefaultDataDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, meta.DataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", meta.DataDirName), nil
}

// DefaultPath returns the config file location: PORTID_CONFIG,
// $XDG_CONFIG_HOME/portid/config.yaml, or ~/.config/portid/config.yaml.
func DefaultPath() (string, error) {
	if override := strings.TrimSpace(os.Getenv(EnvConfigPath)); override != "" {
		return override, nil
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, meta.DataDirName, meta.ConfigFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", meta.DataDirName, meta.ConfigFileName), nil
}

// Load builds the effective configuration: defaults, then the YAML file,
// then environment variables. An empty path means DefaultPath, which may be
// absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}
	fileCfg, err := readFile(path)
	switch {
	case err == nil:
		cfg = cfg.Merge(fileCfg)
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, err
	}

	overlay, err := fromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg = cfg.Merge(overlay)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (Config, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := validateFile(path, payload); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func fromEnv() (Config, error) {
	cfg := Config{
		DataDir:    strings.TrimSpace(os.Getenv(EnvDataDir)),
		UpdateURL:  strings.TrimSpace(os.Getenv(EnvUpdateURL)),
		UserAgent:  strings.TrimSpace(os.Getenv(EnvUserAgent)),
		S3Endpoint: strings.TrimSpace(os.Getenv(EnvS3Endpoint)),
	}
	if raw := strings.TrimSpace(os.Getenv(EnvHTTPTimeout)); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvHTTPTimeout, err)
		}
		cfg.HTTPTimeout = timeout
	}
	return cfg, nil
}

// Merge returns c with every non-zero field of overlay applied.
func (c Config) Merge(overlay Config) Config {
	if overlay.DataDir != "" {
		c.DataDir = overlay.DataDir
	}
	if overlay.DBName != "" {
		c.DBName = overlay.DBName
	}
	if overlay.UpdateURL != "" {
		c.UpdateURL = overlay.UpdateURL
	}
	if overlay.UserAgent != "" {
		c.UserAgent = overlay.UserAgent
	}
	if overlay.HTTPTimeout != 0 {
		c.HTTPTimeout = overlay.HTTPTimeout
	}
	if overlay.S3Endpoint != "" {
		c.S3Endpoint = overlay.S3Endpoint
	}
	if overlay.S3Region != "" {
		c.S3Region = overlay.S3Region
	}
	return c
}

// Validate rejects configurations the store or refresh cannot use.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errDataDirRequired
	}
	if c.DBName == "" || c.DBName != filepath.Base(c.DBName) {
		return fmt.Errorf("%w: %q", errInvalidDBName, c.DBName)
	}
	if strings.TrimSpace(c.UpdateURL) == "" {
		return errUpdateURLRequired
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: %s", errNegativeTimeout, c.HTTPTimeout)
	}
	return nil
}

// DatabasePath is the snapshot file location.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DBName)
}
