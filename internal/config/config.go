// Package config handles the configuration directory, config.toml and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

const (
	// AppName is the application directory name.
	AppName = "todomaster"

	// ConfigFile is the optional settings filename inside the config directory.
	ConfigFile = "config.toml"

	// DefaultDataFile is the file backend's store filename.
	DefaultDataFile = "store.json"

	// DefaultDatabase is the sqlite backend's database filename.
	DefaultDatabase = "store.db"

	// DefaultBcryptCost is the bcrypt work factor for new accounts.
	DefaultBcryptCost = 10
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Environment variables that override config.toml.
const (
	EnvBackend    = "TODOMASTER_BACKEND"
	EnvDataFile   = "TODOMASTER_DATA_FILE"
	EnvDatabase   = "TODOMASTER_DATABASE"
	EnvBcryptCost = "TODOMASTER_BCRYPT_COST"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	// Backend selects the key-value store: file, sqlite or memory.
	Backend string `toml:"backend"`

	// DataFile is the file backend's store path, relative to Dir unless absolute.
	DataFile string `toml:"data_file"`

	// Database is the sqlite database path, relative to Dir unless absolute.
	Database string `toml:"database"`

	// BcryptCost is the work factor used when hashing new passwords.
	BcryptCost int `toml:"bcrypt_cost"`

	// Log receives debug logs. Nil means discard.
	Log *zap.Logger `toml:"-"`
}

// New creates a Config for the given directory with defaults applied.
// If configDir is empty, uses XDG_CONFIG_HOME/todomaster or $HOME/.config/todomaster.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:        dir,
		Backend:    BackendFile,
		DataFile:   DefaultDataFile,
		Database:   DefaultDatabase,
		BcryptCost: DefaultBcryptCost,
	}, nil
}

// Load creates a Config and layers config.toml and the environment on top of
// the defaults. A missing config.toml is not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile() error {
	path := c.ConfigPath()
	if _, err := toml.DecodeFile(path, c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvDataFile); v != "" {
		c.DataFile = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvBcryptCost); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %q", EnvBcryptCost, v)
		}
		c.BcryptCost = n
	}
	return nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost out of range: %d", c.BcryptCost)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataFilePath returns the file backend's store path.
func (c *Config) DataFilePath() string {
	return c.resolve(c.DataFile)
}

// DatabasePath returns the sqlite database path.
func (c *Config) DatabasePath() string {
	return c.resolve(c.Database)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Logger returns the configured logger, or a no-op logger.
func (c *Config) Logger() *zap.Logger {
	if c == nil || c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}
