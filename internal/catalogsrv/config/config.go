package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StorePostgresql = "postgresql"
	StoreMemory     = "memory"
)

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"sslmode"`
	// StatementTimeout bounds every statement run by the store, e.g. "5s".
	StatementTimeout string `toml:"statement_timeout"`
}

type ConfigParam struct {
	ServerPort string   `toml:"server_port"`
	HandleCORS bool     `toml:"handle_cors"`
	CORSOrigin []string `toml:"cors_origins"`
	Store      string   `toml:"store"`
	LogLevel   string   `toml:"log_level"`
	DB         DBConfig `toml:"db"`
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

func defaultConfig() ConfigParam {
	return ConfigParam{
		ServerPort: "8000",
		HandleCORS: true,
		CORSOrigin: []string{"*"},
		Store:      StoreMemory,
		LogLevel:   "info",
		DB: DBConfig{
			Host:             "localhost",
			Port:             5432,
			User:             "gpucatalog",
			Name:             "gpucatalog",
			SSLMode:          "disable",
			StatementTimeout: "5s",
		},
	}
}

// LoadConfig reads the TOML file into the global config. Keys missing from
// the file keep their default values. An empty filename loads the defaults.
func LoadConfig(filename string) error {
	cp := defaultConfig()
	if filename == "" {
		cfg = &cp
		return nil
	}
	// Read the config file
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	// Parse the config file
	if _, err := toml.Decode(string(content), &cp); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cp.Validate(); err != nil {
		return err
	}
	// assign config to global cfg
	cfg = &cp
	return nil
}

func (c *ConfigParam) Validate() error {
	switch c.Store {
	case StorePostgresql, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q, expected %q or %q", c.Store, StorePostgresql, StoreMemory)
	}
	if c.ServerPort == "" {
		return fmt.Errorf("server_port is required")
	}
	if _, err := c.DB.Timeout(); err != nil {
		return err
	}
	return nil
}

// DSN returns the connection string for the pgx driver.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Timeout parses StatementTimeout. An empty value means no timeout.
func (d DBConfig) Timeout() (time.Duration, error) {
	if d.StatementTimeout == "" {
		return 0, nil
	}
	t, err := time.ParseDuration(d.StatementTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid statement_timeout %q: %w", d.StatementTimeout, err)
	}
	return t, nil
}

func init() {
	err := LoadConfig("")
	if err != nil {
		panic(err)
	}
}
