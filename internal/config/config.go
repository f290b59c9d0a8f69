package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/jsoncsv/internal/errors"
	"github.com/mcncl/jsoncsv/internal/formatter"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsoncsv
type Config struct {
	Input   string        `yaml:"input"`
	Output  string        `yaml:"output"`
	Lenient bool          `yaml:"lenient"`
	Header  HeaderConfig  `yaml:"header"`
	Logging LoggingConfig `yaml:"logging"`
}

// HeaderConfig controls how the header line is written
type HeaderConfig struct {
	Case string `yaml:"case"`
}

// LoggingConfig controls diagnostic output on stderr
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var logLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var logFormats = map[string]struct{}{
	"text": {},
	"json": {},
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Header: HeaderConfig{
			Case: string(formatter.CaseKeep),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := checkSchema(data); err != nil {
		return nil, err
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsoncsv.yml", ".jsoncsv.yaml", "jsoncsv.yml", "jsoncsv.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enumerated settings and normalizes their spelling
func (c *Config) Validate() error {
	headerCase, err := formatter.ParseCase(c.Header.Case)
	if err != nil {
		return err
	}
	c.Header.Case = string(headerCase)

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = "info"
	}
	if _, ok := logLevels[level]; !ok {
		return fmt.Errorf("%w: %q", errors.ErrInvalidLogLevel, c.Logging.Level)
	}
	c.Logging.Level = level

	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = "text"
	}
	if _, ok := logFormats[format]; !ok {
		return fmt.Errorf("%w: %q", errors.ErrInvalidLogFormat, c.Logging.Format)
	}
	c.Logging.Format = format

	return nil
}

// HeaderCase returns the validated header case
func (c *Config) HeaderCase() formatter.Case {
	headerCase, err := formatter.ParseCase(c.Header.Case)
	if err != nil {
		return formatter.CaseKeep
	}
	return headerCase
}

// CLIOverrides holds values given on the command line. Empty strings and
// false booleans mean "not given".
type CLIOverrides struct {
	Input      string
	Output     string
	HeaderCase string
	LogFormat  string
	Debug      bool
	Lenient    bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Input != "" {
		cfg.Input = cli.Input
	}
	if cli.Output != "" {
		cfg.Output = cli.Output
	}
	if cli.HeaderCase != "" {
		cfg.Header.Case = cli.HeaderCase
	}
	if cli.LogFormat != "" {
		cfg.Logging.Format = cli.LogFormat
	}
	if cli.Debug {
		cfg.Logging.Level = "debug"
	}
	// A flag can only switch lenient mode on; the file may have done so already.
	if cli.Lenient {
		cfg.Lenient = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
