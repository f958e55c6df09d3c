// Package config handles the XDG configuration directory, the optional
// config.yaml file and the data file paths.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"ltask/internal/backend/sqlitestore"
	"ltask/internal/logging"
	"ltask/internal/service"
	"ltask/internal/snapshot"
	"ltask/internal/weather"
)

const (
	// AppName is the application directory name.
	AppName = "ltask"

	// ConfigFile is the optional YAML configuration filename.
	ConfigFile = "config.yaml"

	// EnvFile is the optional dotenv filename loaded before the config.
	EnvFile = ".env"

	// BackendFile stores the full store in a JSON snapshot.
	BackendFile = "file"

	// BackendSQLite stores the full store in a SQLite database.
	BackendSQLite = "sqlite"
)

// ErrInvalid is returned when the configuration fails validation.
var ErrInvalid = zerr.New("invalid configuration")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// Debug enables debug logging.
	Debug bool `yaml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-"`

	// Store selects the task list variant.
	Store service.Variant `yaml:"store" validate:"oneof=full basic"`

	// Backend selects where the full store is persisted.
	Backend string `yaml:"backend" validate:"oneof=file sqlite"`

	// DataDir holds the snapshot files. Defaults to Dir.
	DataDir string `yaml:"data_dir"`

	Weather Weather `yaml:"weather"`

	// Logger is set by the dispatcher once flags are parsed.
	Logger *slog.Logger `yaml:"-" validate:"-"`
}

// Weather configures the weather lookup.
type Weather struct {
	Endpoint  string        `yaml:"endpoint" validate:"required,url"`
	Country   string        `yaml:"country" validate:"required,len=2"`
	Units     string        `yaml:"units" validate:"oneof=standard metric imperial"`
	APIKeyEnv string        `yaml:"api_key_env" validate:"required"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
}

var validate = validator.New()

// New creates a new Config with defaults for the given config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/ltask or $HOME/.config/ltask.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:     dir,
		Store:   service.VariantFull,
		Backend: BackendFile,
		Weather: Weather{
			Endpoint:  weather.DefaultEndpoint,
			Country:   weather.DefaultCountry,
			Units:     weather.DefaultUnits,
			APIKeyEnv: weather.DefaultAPIKeyEnv,
			Timeout:   weather.DefaultTimeout,
		},
		Logger: logging.Discard(),
	}
}

// Load builds the Config for configDir: defaults, then the .env file, then
// config.yaml, then validation. Both files are optional.
func Load(configDir string) (*Config, error) {
	cfg := New(configDir)

	envPath := filepath.Join(cfg.Dir, EnvFile)
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(err, "load env file"), "path", envPath)
	}

	data, err := os.ReadFile(cfg.ConfigPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, "read config"), "path", cfg.ConfigPath())
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "parse config"), "path", cfg.ConfigPath())
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return zerr.Wrap(ErrInvalid, err.Error())
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

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the directory holding the snapshots.
func (c *Config) DataPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return c.Dir
}

// TasksPath returns the full store's snapshot path.
func (c *Config) TasksPath() string {
	return filepath.Join(c.DataPath(), snapshot.TasksFile)
}

// NotesPath returns the basic store's snapshot path.
func (c *Config) NotesPath() string {
	return filepath.Join(c.DataPath(), snapshot.NotesFile)
}

// DatabasePath returns the SQLite database path.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataPath(), sqlitestore.DatabaseFile)
}

// WeatherOptions returns the weather client options.
func (c *Config) WeatherOptions() weather.Options {
	return weather.Options{
		Endpoint: c.Weather.Endpoint,
		Country:  c.Weather.Country,
		Units:    c.Weather.Units,
		Timeout:  c.Weather.Timeout,
	}
}
