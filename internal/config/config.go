// Package config loads service configuration from YAML and the environment.
package config

import (
	"github.com/pazarglobal/agent/internal/api"
	"github.com/pazarglobal/agent/internal/cache"
	"github.com/pazarglobal/agent/internal/database"
	"github.com/pazarglobal/agent/internal/llm"
	"github.com/pazarglobal/agent/internal/logging"
)

// Default configuration values.
const (
	defaultServiceName    = "agent"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8090
	defaultDBHost         = "localhost"
	defaultDBPort         = "5432"
	defaultDBUser         = "postgres"
	defaultDBName         = "pazarglobal"
	defaultDBSSLMode      = "disable"
	defaultLogLevel       = "info"
)

// Config holds all configuration for the agent service.
type Config struct {
	Service  ServiceConfig    `yaml:"service"`
	Server   api.ServerConfig `yaml:"server"`
	Database database.Config  `yaml:"database"`
	Redis    cache.Config     `yaml:"redis"`
	LLM      llm.Config       `yaml:"llm"`
	Logging  LoggingConfig    `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level       string `env:"LOG_LEVEL" yaml:"level"`
	Development bool   `env:"LOG_DEV"   yaml:"development"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return LoadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = defaultServiceName
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = defaultServiceVersion
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServicePort
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = defaultDBHost
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = defaultDBPort
	}
	if cfg.Database.User == "" {
		cfg.Database.User = defaultDBUser
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = defaultDBName
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = defaultDBSSLMode
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = llm.DefaultTimeout
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
}

// LoggerConfig converts the logging section into the logger's own config.
func (c *Config) LoggerConfig() logging.Config {
	return logging.Config{
		Level:       c.Logging.Level,
		Development: c.Logging.Development,
		OutputPaths: []string{"stdout"},
	}
}
