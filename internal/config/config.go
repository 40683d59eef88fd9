package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type OutputConfig struct {
	Console *bool  `yaml:"console,omitempty"`
	CSV     *bool  `yaml:"csv,omitempty"`
	CSVPath string `yaml:"csv_path,omitempty"`
	JSON    bool   `yaml:"json,omitempty"`
}

type PostgresConfig struct {
	Connection string `yaml:"connection,omitempty"`
	Table      string `yaml:"table,omitempty"`
	Timeout    string `yaml:"timeout,omitempty"`
}

type ProjectConfig struct {
	Root            string         `yaml:"root,omitempty"`
	Layout          string         `yaml:"layout,omitempty"`
	DefaultCurrency string         `yaml:"default_currency,omitempty"`
	Ignore          []string       `yaml:"ignore,omitempty"`
	Checksum        bool           `yaml:"checksum,omitempty"`
	Output          OutputConfig   `yaml:"output"`
	Postgres        PostgresConfig `yaml:"postgres"`
}

const ConfigFileName = "filemeta.yaml"

// Load reads filemeta.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file from an explicit path.
func LoadFile(configPath string) (*ProjectConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PostgresTimeout parses postgres.timeout. Zero means no timeout.
func (c *ProjectConfig) PostgresTimeout() (time.Duration, error) {
	if c == nil || c.Postgres.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Postgres.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid postgres.timeout in %s: %w", ConfigFileName, err)
	}
	return d, nil
}
