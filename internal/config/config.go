package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is read when no configuration path is given.
const DefaultFileName = "artifactbuilder.yaml"

// EnvFiles are loaded before the configuration file is expanded.
var EnvFiles = []string{".env", ".env.local"}

// Config is the artifactbuilder configuration.
type Config struct {
	// SourceDir is the package root on disk.
	SourceDir string `yaml:"source_dir"`
	// ArtifactDir is the output root, relative to SourceDir.
	ArtifactDir string `yaml:"artifact_dir"`
	// CoreVersion prefixes legacy version numbers, for example "8.x".
	CoreVersion string `yaml:"core_version"`
	// Bump is a version part or an explicit next version. Empty means minor.
	Bump         string `yaml:"bump,omitempty"`
	ArtifactType string `yaml:"artifact_type,omitempty"`
	ComposerFile string `yaml:"composer_file,omitempty"`

	History HistoryConfig `yaml:"history"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// HistoryConfig controls the build history journal.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	// Textfile is written in the node_exporter textfile format after each build.
	Textfile string `yaml:"textfile,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level LogLevel `yaml:"level"`
}

// Load reads the configuration at configPath. An empty configPath means
// DefaultFileName, and a missing default file yields the defaults. Values
// may reference environment variables as ${VAR}; .env files are loaded first
// without overriding the existing environment.
func Load(configPath string) (*Config, error) {
	loadEnvFiles(EnvFiles...)

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultFileName
	}

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, ErrConfigInvalid.WithContext("path", configPath).Wrap(err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case errors.Is(err, os.ErrNotExist):
		return nil, ErrConfigNotFound.WithContext("path", configPath)
	default:
		return nil, ErrConfigUnreadable.WithContext("path", configPath).Wrap(err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// loadEnvFiles loads each existing file. Variables already set win.
func loadEnvFiles(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			fmt.Fprintf(os.Stderr, "Note: %s could not be loaded: %v\n", p, err)
		}
	}
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if configPath == "" {
		configPath = DefaultFileName
	}
	if _, err := os.Stat(configPath); err == nil && !force {
		return ErrConfigExists.WithContext("path", configPath)
	}

	example := Default()
	example.Bump = "minor"
	example.History.Enabled = true

	data, err := yaml.Marshal(example)
	if err != nil {
		return ErrConfigInvalid.Wrap(err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ErrConfigUnreadable.WithContext("path", configPath).Wrap(err)
	}
	return nil
}
