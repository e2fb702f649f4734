// Package config loads the YAML configuration file with environment variable expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/softstreaks/internal/constants"
	"github.com/julianstephens/softstreaks/internal/utils"
)

// Config represents the application configuration.
type Config struct {
	// Store is a .json file, a SQLite database path or a postgres:// URL
	Store    string         `yaml:"store"`
	Timezone string         `yaml:"timezone"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Backup   BackupConfig   `yaml:"backup"`
	Export   ExportConfig   `yaml:"export"`
	Reminder ReminderConfig `yaml:"reminder"`

	// Dir is the directory holding the config file, logs and backups
	Dir string `yaml:"-"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Store, validation.Required),
		validation.Field(&c.Timezone, validation.By(validateTimezone)),
	); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Backup.Validate()
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Debug bool   `yaml:"debug"`
	Dir   string `yaml:"dir"`
}

// ServerConfig holds the local API server configuration.
//
// An empty Token leaves the API open; it only listens on localhost.
type ServerConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Token string `yaml:"token"`
}

// Address returns the listen address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthEnabled returns true when a bearer token is required.
func (c *ServerConfig) AuthEnabled() bool {
	return c.Token != ""
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// BackupConfig holds backup retention settings.
type BackupConfig struct {
	Max int `yaml:"max"`
}

// Validate validates the backup configuration.
func (c *BackupConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Max, validation.Required, validation.Min(1), validation.Max(365)),
	)
}

// ExportConfig holds export settings.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// ReminderConfig controls desktop reminders.
type ReminderConfig struct {
	Enabled bool `yaml:"enabled"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store:    utils.ExpandHome(constants.DefaultStorePath),
		Timezone: "Local",
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: constants.DefaultServerPort,
		},
		Backup: BackupConfig{
			Max: constants.MaxBackups,
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Reminder: ReminderConfig{
			Enabled: true,
		},
		Dir: utils.ExpandHome(constants.DefaultConfigDir),
	}
}

// Load reads the config file at path over the defaults. A missing file is
// not an error. Environment overrides are applied before validation.
func Load(path string) (*Config, error) {
	path = utils.ExpandHome(path)
	cfg := NewDefaultConfig()
	cfg.Dir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SOFTSTREAKS_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(constants.EnvStore); v != "" {
		c.Store = v
	}
	if v := os.Getenv(constants.EnvTimezone); v != "" {
		c.Timezone = v
	}
}

func (c *Config) normalize() {
	c.Store = utils.ExpandHome(c.Store)
	c.Log.Dir = utils.ExpandHome(c.Log.Dir)
	c.Export.Dir = utils.ExpandHome(c.Export.Dir)
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
}

// BackupDir returns the directory backups are written to.
func (c *Config) BackupDir() string {
	return filepath.Join(c.Dir, constants.BackupDirName)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	path = utils.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

func validateTimezone(value interface{}) error {
	tz, _ := value.(string)
	if !utils.ValidateTimezone(tz) {
		return fmt.Errorf("unknown timezone %q", tz)
	}
	return nil
}
