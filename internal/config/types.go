package config

import (
	"net"
	"strconv"
	"time"
)

// Config represents the complete remex configuration.
type Config struct {
	Remote  RemoteConfig  `yaml:"remote"`
	Session SessionConfig `yaml:"session"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`

	// SourcePath is the file the configuration was loaded from, if any.
	SourcePath string `yaml:"-"`
}

// RemoteConfig describes how to reach the remote executor.
type RemoteConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
	// Service is the gRPC service name the executor registers.
	Service         string        `yaml:"service"`
	MaxMessageBytes int           `yaml:"max_message_bytes"`
	RPCTimeout      time.Duration `yaml:"rpc_timeout"`
	Compression     string        `yaml:"compression"`
	// OutputEncoding is the executor's text encoding for command output.
	OutputEncoding string        `yaml:"output_encoding"`
	Keepalive      time.Duration `yaml:"keepalive"`
}

// SessionConfig holds defaults for new sessions.
type SessionConfig struct {
	BaseName   string `yaml:"base_name"`
	KeepOnExit bool   `yaml:"keep_on_exit"`
}

// JournalConfig controls the local session history.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig controls process logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Target returns the executor's host:port.
func (c *Config) Target() string {
	return net.JoinHostPort(c.Remote.Address, strconv.Itoa(c.Remote.Port))
}

// Defaults returns a Config with default values.
func Defaults() *Config {
	return &Config{
		Remote: RemoteConfig{
			Address:         "localhost",
			Port:            50051,
			Service:         "CmdExecutor",
			MaxMessageBytes: 100 * 1024 * 1024,
			RPCTimeout:      0,
			OutputEncoding:  "gbk",
		},
		Session: SessionConfig{
			BaseName: "remex",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "./remex.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
