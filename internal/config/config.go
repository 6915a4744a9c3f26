// Package config handles the XDG configuration directory and the config file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings file inside Dir.
	ConfigFile = "config.yaml"

	// DefaultBaseURL is the API the collections live on.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	// DefaultTaskLimit caps how many tasks are fetched at startup.
	DefaultTaskLimit = 15

	// DefaultOwnerLimit caps how many owners are fetched at startup.
	DefaultOwnerLimit = 5
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// BaseURL is the root of the remote API.
	BaseURL string `yaml:"base_url"`

	// TaskLimit is sent as _limit when fetching tasks.
	TaskLimit int `yaml:"task_limit"`

	// OwnerLimit is sent as _limit when fetching owners.
	OwnerLimit int `yaml:"owner_limit"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent"`

	// Timeout bounds each request. Zero leaves it to the transport.
	Timeout time.Duration `yaml:"timeout"`

	// Debug enables debug logging.
	Debug bool `yaml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-"`
}

// Default returns a Config with built-in settings and no directory.
func Default() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		TaskLimit:  DefaultTaskLimit,
		OwnerLimit: DefaultOwnerLimit,
	}
}

// New creates a Config for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// Settings come from built-in defaults, then config.yaml if present, then
// TODO_* environment variables.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := Default()
	cfg.Dir = dir

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
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

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// HasFile checks if config.yaml exists.
func (c *Config) HasFile() bool {
	_, err := os.Stat(c.FilePath())
	return err == nil
}

// Validate checks that the settings can be used to reach the API.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url: %s", c.BaseURL)
	}
	if c.TaskLimit < 1 {
		return fmt.Errorf("invalid task_limit: %d", c.TaskLimit)
	}
	if c.OwnerLimit < 1 {
		return fmt.Errorf("invalid owner_limit: %d", c.OwnerLimit)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	return nil
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.FilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if val := os.Getenv("TODO_BASE_URL"); val != "" {
		c.BaseURL = val
	}
	if val := getEnvInt("TODO_TASK_LIMIT"); val > 0 {
		c.TaskLimit = val
	}
	if val := getEnvInt("TODO_OWNER_LIMIT"); val > 0 {
		c.OwnerLimit = val
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
