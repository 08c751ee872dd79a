package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/exchange/internal/logger"
	"gopkg.in/yaml.v3"
)

// DefaultExchangeDirectory is the shared exchange root used when none is configured.
const DefaultExchangeDirectory = "/srv/nbgrader/exchange"

// HistoryConfig represents removal history configuration
type HistoryConfig struct {
	// Enabled records every removed directory in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database (empty = $EXCHANGE_HOME/history/removals.db)
	DBPath string `yaml:"db_path"`
}

// Config represents exchange configuration options
type Config struct {
	// ExchangeDirectory is the root of the shared exchange
	ExchangeDirectory string `yaml:"exchange_directory"`

	// CourseID is the default course filter
	CourseID string `yaml:"course_id"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory for per-run log files (empty = no file log)
	LogDir string `yaml:"log_dir"`

	// History contains removal history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		ExchangeDirectory: DefaultExchangeDirectory,
		CourseID:          "",
		LogLevel:          "info",
		LogDir:            "",
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.ExchangeDirectory != "" {
		cfg.ExchangeDirectory = fileCfg.ExchangeDirectory
	}
	if fileCfg.CourseID != "" {
		cfg.CourseID = fileCfg.CourseID
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}

	// history.enabled defaults to true, so only an explicit key may turn it off
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if historySection, ok := rawMap["history"].(map[string]interface{}); ok {
			if _, exists := historySection["enabled"]; exists {
				cfg.History.Enabled = fileCfg.History.Enabled
			}
			if _, exists := historySection["db_path"]; exists {
				cfg.History.DBPath = fileCfg.History.DBPath
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(exchangeDir *string, courseID *string, logLevel *string, logDir *string, noHistory *bool) {
	if exchangeDir != nil {
		c.ExchangeDirectory = *exchangeDir
	}
	if courseID != nil {
		c.CourseID = *courseID
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if noHistory != nil && *noHistory {
		c.History.Enabled = false
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.ExchangeDirectory == "" {
		return fmt.Errorf("exchange_directory cannot be empty")
	}

	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// HistoryDBPath returns the configured history database path, falling back
// to the default location under the exchange home.
func (c *Config) HistoryDBPath() (string, error) {
	if c.History.DBPath != "" {
		return c.History.DBPath, nil
	}
	return GetHistoryDBPath()
}
