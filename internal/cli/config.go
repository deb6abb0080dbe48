package cli

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// ConfigVersion is the current configuration file format
const ConfigVersion = "1.0"

// Config represents the configuration for the gpucatalog CLI
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version" json:"version"`
	// ServerURL is the base URL of the catalog service
	ServerURL string `yaml:"server_url" json:"server_url"`
	// LogLevel is the zerolog level used for diagnostics on stderr
	LogLevel string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
}

var config *Config

// GetDefaultConfigPath returns the default path for the config file
// It uses the OS-specific config directory (e.g., ~/.config/gpucatalog on Linux)
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "gpucatalog", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file
// If no file is specified, it uses the default config location
func LoadConfig(file string) error {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	yamlStr, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if err = yaml.Unmarshal(yamlStr, &c); err != nil {
		return fmt.Errorf("unable to parse config file: %w", err)
	}

	// Morph the server URL before validating
	c.ServerURL = MorphServer(c.ServerURL)
	if err := c.ValidateConfig(); err != nil {
		return err
	}

	config = &c
	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// WriteConfig writes the current configuration to the specified file
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	yamlStr, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	err = os.WriteFile(file, yamlStr, os.FileMode(0644))
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}

// ValidateConfig checks for required fields and proper formatting
func (cfg *Config) ValidateConfig() error {
	if cfg.ServerURL == "" {
		return errors.New("server_url is required")
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://") && !strings.HasPrefix(cfg.ServerURL, "https://") {
		return errors.New("server_url must start with http:// or https://")
	}
	u, err := url.Parse(cfg.ServerURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("server_url %q is not a valid URL", cfg.ServerURL)
	}
	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	return nil
}

// Print prints the configuration in a human-readable format
func (cfg *Config) Print(w io.Writer) {
	fmt.Fprintf(w, "Version: %s\n", cfg.Version)
	fmt.Fprintf(w, "Server: %s\n", cfg.ServerURL)
	if cfg.LogLevel != "" {
		fmt.Fprintf(w, "Log level: %s\n", cfg.LogLevel)
	}
}

// MorphServer ensures the server URL is properly formatted
// Adds http:// prefix if missing and removes trailing slashes
func MorphServer(server string) string {
	if server == "" {
		return server
	}

	// Remove any trailing slashes
	server = strings.TrimRight(server, "/")

	// Add http:// if no protocol is specified
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "http://" + server
	}

	return server
}

// GetServerURL returns the properly formatted server URL
func (cfg *Config) GetServerURL() string {
	return MorphServer(cfg.ServerURL)
}
