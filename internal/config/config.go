package config

import "time"

// Store backends for the event log.
const (
	StoreBackendJSONL  = "jsonl"
	StoreBackendSQLite = "sqlite"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	StoreBackend      string        `mapstructure:"store_backend" yaml:"store_backend"`
	ChatLogPath       string        `mapstructure:"chat_log_path" yaml:"chat_log_path"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":5000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		StoreBackend:      StoreBackendJSONL,
		ChatLogPath:       "chat-log.txt",
		DatabasePath:      "chatrelay.db",
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.StoreBackend != "" {
		c.StoreBackend = other.StoreBackend
	}
	if other.ChatLogPath != "" {
		c.ChatLogPath = other.ChatLogPath
	}
	if other.DatabasePath != "" {
		c.DatabasePath = other.DatabasePath
	}
}
