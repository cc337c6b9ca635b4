package logger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level" env:"LOG_LEVEL"`
	ConsoleEnabled bool   `yaml:"console_enabled" env:"LOG_CONSOLE_ENABLED"`
	ConsoleFormat  string `yaml:"console_format" env:"LOG_CONSOLE_FORMAT"`
	FileEnabled    bool   `yaml:"file_enabled" env:"LOG_FILE_ENABLED"`
	FilePath       string `yaml:"file_path" env:"LOG_FILE_PATH"`
	FileFormat     string `yaml:"file_format" env:"LOG_FILE_FORMAT"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
	FileCompress   bool   `yaml:"file_compress"`
}

// fileConfig is the shape of the logging file; other sections are ignored.
type fileConfig struct {
	Logging *Config `yaml:"logging"`
}

// DefaultConfig returns console-only text logging at INFO.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FilePath:       "logs/mysterioushouse.log",
		FileFormat:     "json",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// LoadConfig reads the logging block of a YAML file over the defaults and
// then applies LOG_* environment overrides. A missing file is not an error.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return config, fmt.Errorf("reading logging config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &fileConfig{Logging: &config}); err != nil {
				return config, fmt.Errorf("parsing logging config %s: %w", configPath, err)
			}
		}
	}

	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("logging environment: %w", err)
	}

	defaults := DefaultConfig()
	if config.FileMaxSizeMB <= 0 {
		config.FileMaxSizeMB = defaults.FileMaxSizeMB
	}
	if config.FileMaxBackups <= 0 {
		config.FileMaxBackups = defaults.FileMaxBackups
	}
	if config.FileMaxAgeDays <= 0 {
		config.FileMaxAgeDays = defaults.FileMaxAgeDays
	}

	return config, nil
}
