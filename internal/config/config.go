// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the configuration for classcheck
type Config struct {
	Version string `yaml:"version" json:"version"`

	// Analysis settings consulted by the checks
	Checks ChecksConfig `yaml:"checks" json:"checks"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// File patterns
	Files FilesConfig `yaml:"files" json:"files"`
}

type ChecksConfig struct {
	// Style gates the coding-style diagnostics (constructors,
	// operator= shape, private functions, constness, ...)
	Style bool `yaml:"style" json:"style"`

	// Inconclusive gates checks that may over-report, currently the
	// virtual destructor check
	Inconclusive bool `yaml:"inconclusive" json:"inconclusive"`

	// MultipleConfigs disables the constness check when more than one
	// preprocessor configuration of the sources is being analyzed
	MultipleConfigs bool `yaml:"multiple_configs" json:"multiple_configs"`
}

type OutputConfig struct {
	// Default output format
	Format string `yaml:"format" json:"format"`

	// Colorized output
	Colors bool `yaml:"colors" json:"colors"`

	// Verbosity level
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Output file path (optional)
	OutputFile string `yaml:"output_file,omitempty" json:"output_file,omitempty"`
}

type FilesConfig struct {
	// Source file extensions to analyze
	Extensions []string `yaml:"extensions" json:"extensions"`

	// Exclude patterns
	Exclude []string `yaml:"exclude" json:"exclude"`

	// Whether to follow symlinks
	FollowSymlinks bool `yaml:"follow_symlinks" json:"follow_symlinks"`

	// Max file size (in KB)
	MaxFileSize int `yaml:"max_file_size" json:"max_file_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Checks: ChecksConfig{
			Style:           true,
			Inconclusive:    false,
			MultipleConfigs: false,
		},
		Output: OutputConfig{
			Format:  "console",
			Colors:  true,
			Verbose: false,
		},
		Files: FilesConfig{
			Extensions:     []string{".c", ".cc", ".cpp", ".cxx", ".h", ".hh", ".hpp", ".hxx"},
			Exclude:        []string{"build/**", ".git/**"},
			FollowSymlinks: false,
			MaxFileSize:    2048, // 2MB
		},
	}
}

// LoadConfig loads configuration from file or returns default
func LoadConfig(configPath string) (*Config, error) {
	// If no config path provided, look for default config files
	if configPath == "" {
		configPath = findConfigFile()
	}

	// If still no config found, return default
	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := DefaultConfig() // Start with defaults

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	possiblePaths := []string{
		".classcheck.yml",
		".classcheck.yaml",
		"classcheck.yml",
		"classcheck.yaml",
		".config/classcheck.yml",
		".config/classcheck.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validFormats := []string{"console", "json"}
	formatValid := false
	for _, format := range validFormats {
		if c.Output.Format == format {
			formatValid = true
			break
		}
	}
	if !formatValid {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, validFormats)
	}

	if len(c.Files.Extensions) == 0 {
		return fmt.Errorf("at least one source file extension is required")
	}
	for _, ext := range c.Files.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("invalid source file extension: %q", ext)
		}
	}

	if c.Files.MaxFileSize < 1 {
		return fmt.Errorf("max_file_size must be at least 1")
	}

	return nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateConfig creates a sample configuration file
func GenerateConfig(configPath string) error {
	config := DefaultConfig()
	return config.SaveConfig(configPath)
}

// IsSourceFile reports whether a path has one of the configured
// source extensions.
func (c *Config) IsSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Files.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
