package lc_api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRefreshInterval = 5 * time.Minute
	DefaultRefreshCooldown = 2 * time.Second
	DefaultDebounce        = 300 * time.Millisecond
)

type Config struct {
	Username        string        `yaml:"username"`
	Endpoint        string        `yaml:"endpoint"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	RefreshCooldown time.Duration `yaml:"refresh_cooldown"`
	Debounce        time.Duration `yaml:"debounce"`
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
	DBPath          string        `yaml:"db_path"`
	TimeZone        string        `yaml:"timezone"`
	LogFile         string        `yaml:"log_file"`
	LogLevel        string        `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Endpoint:        DefaultGraphqlURL,
		RefreshInterval: DefaultRefreshInterval,
		RefreshCooldown: DefaultRefreshCooldown,
		Debounce:        DefaultDebounce,
		DBPath:          "lc-status-db",
		TimeZone:        "Local",
		LogFile:         "lc-status.log",
		LogLevel:        "info",
	}
}

// LoadConfig reads the yaml file at path on top of the defaults, then applies
// .env and LC_* environment overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	yamlFile, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return config, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(yamlFile, &config); err != nil {
			return config, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, fmt.Errorf("load .env: %w", err)
	}
	config.applyEnv()
	config.fillDefaults()

	if _, err := config.Location(); err != nil {
		return config, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"LC_USERNAME":    &c.Username,
		"LC_GRAPHQL_URL": &c.Endpoint,
		"LC_DB_PATH":     &c.DBPath,
		"LC_LOG_LEVEL":   &c.LogLevel,
		"LC_TIMEZONE":    &c.TimeZone,
	}
	for key, field := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
	}
}

func (c *Config) fillDefaults() {
	defaults := DefaultConfig()
	if c.Endpoint == "" {
		c.Endpoint = defaults.Endpoint
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = defaults.RefreshInterval
	}
	if c.RefreshCooldown < 0 {
		c.RefreshCooldown = 0
	}
	if c.Debounce <= 0 {
		c.Debounce = defaults.Debounce
	}
	if c.DBPath == "" {
		c.DBPath = defaults.DBPath
	}
	if c.TimeZone == "" {
		c.TimeZone = defaults.TimeZone
	}
}

// Location resolves TimeZone; "Local" and "" mean the machine's zone.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
