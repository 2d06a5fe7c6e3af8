package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable pointing at a config file.
const EnvConfigPath = "REMEX_CONFIG"

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ErrNoConfig is returned by Discover when no config file exists in any
// standard location.
var ErrNoConfig = errors.New("no config found")

// Load reads and parses configuration from a file, or from config.yaml inside
// a directory, after checking it against its .checksums entry. Fields missing
// from the file keep their defaults.
func Load(configPath string) (*Config, error) {
	absPath, err := resolve(configPath)
	if err != nil {
		return nil, err
	}
	if err := verifyChecksum(absPath); err != nil {
		return nil, err
	}
	return parse(absPath)
}

// Parse is Load without the integrity check.
func Parse(configPath string) (*Config, error) {
	absPath, err := resolve(configPath)
	if err != nil {
		return nil, err
	}
	return parse(absPath)
}

func resolve(configPath string) (string, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}
	if info.IsDir() {
		absPath = filepath.Join(absPath, "config.yaml")
		if _, err := os.Stat(absPath); err != nil {
			return "", fmt.Errorf("directory provided but config.yaml not found: %s", absPath)
		}
	}
	return absPath, nil
}

func parse(absPath string) (*Config, error) {
	cfg, err := loadConfigFile(absPath)
	if err != nil {
		return nil, err
	}
	cfg.SourcePath = absPath

	cfg = applyConfigDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads configPath when set, otherwise the discovered config,
// otherwise the defaults.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath != "" {
		return Load(configPath)
	}
	found, err := Discover()
	if errors.Is(err, ErrNoConfig) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(found)
}

// Discover finds a config file in the standard locations.
// Priority order: $REMEX_CONFIG, ~/.config/remex/config.yaml, ./remex.yaml.
func Discover() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("$%s points to %s: %w", EnvConfigPath, p, err)
		}
		return p, nil
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		userConfig := filepath.Join(homeDir, ".config", "remex", "config.yaml")
		if _, err := os.Stat(userConfig); err == nil {
			return userConfig, nil
		}
	}

	if _, err := os.Stat("remex.yaml"); err == nil {
		return "remex.yaml", nil
	}

	return "", fmt.Errorf("%w (checked: $%s, ~/.config/remex/config.yaml, ./remex.yaml)", ErrNoConfig, EnvConfigPath)
}

func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	interpolated := interpolateEnv(string(data))

	cfg := Defaults()
	if err := yaml.Unmarshal([]byte(interpolated), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// applyConfigDefaults fills fields that were explicitly set to their zero value.
func applyConfigDefaults(cfg *Config) *Config {
	defaults := Defaults()

	if cfg.Remote.Address == "" {
		cfg.Remote.Address = defaults.Remote.Address
	}
	if cfg.Remote.Port == 0 {
		cfg.Remote.Port = defaults.Remote.Port
	}
	if cfg.Remote.Service == "" {
		cfg.Remote.Service = defaults.Remote.Service
	}
	if cfg.Remote.MaxMessageBytes == 0 {
		cfg.Remote.MaxMessageBytes = defaults.Remote.MaxMessageBytes
	}
	if cfg.Remote.OutputEncoding == "" {
		cfg.Remote.OutputEncoding = defaults.Remote.OutputEncoding
	}

	if cfg.Session.BaseName == "" {
		cfg.Session.BaseName = defaults.Session.BaseName
	}

	if cfg.Journal.Path == "" {
		cfg.Journal.Path = defaults.Journal.Path
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}

	return cfg
}

// interpolateEnv replaces ${VAR} with the value of VAR. Unset variables are
// left in place and rejected by validate.
func interpolateEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}

// validate performs basic validation on the configuration.
func validate(cfg *Config) error {
	if err := checkUnresolved("remote.address", cfg.Remote.Address); err != nil {
		return err
	}
	if cfg.Remote.Port < 1 || cfg.Remote.Port > 65535 {
		return fmt.Errorf("remote.port must be between 1 and 65535 (got %d)", cfg.Remote.Port)
	}
	if err := checkUnresolved("remote.service", cfg.Remote.Service); err != nil {
		return err
	}
	if cfg.Remote.MaxMessageBytes < 0 {
		return fmt.Errorf("remote.max_message_bytes must not be negative")
	}
	if cfg.Remote.RPCTimeout < 0 {
		return fmt.Errorf("remote.rpc_timeout must not be negative")
	}
	if cfg.Remote.Keepalive < 0 {
		return fmt.Errorf("remote.keepalive must not be negative")
	}
	switch cfg.Remote.Compression {
	case "", "gzip":
	default:
		return fmt.Errorf("remote.compression must be empty or gzip (got %q)", cfg.Remote.Compression)
	}

	if err := checkUnresolved("session.base_name", cfg.Session.BaseName); err != nil {
		return err
	}
	if strings.ContainsAny(cfg.Session.BaseName, `/\`) {
		return fmt.Errorf("session.base_name must not contain path separators (got %q)", cfg.Session.BaseName)
	}

	if cfg.Journal.Enabled {
		if err := checkUnresolved("journal.path", cfg.Journal.Path); err != nil {
			return err
		}
	}

	if err := ValidateLogLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level %w", err)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("log.format must be json or text (got %q)", cfg.Log.Format)
	}

	return nil
}

// ValidateLogLevel accepts debug, info, warn and error in any case.
func ValidateLogLevel(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("must be one of: debug, info, warn, error (got %q)", level)
}

func checkUnresolved(field, value string) error {
	if matches := envVarPattern.FindStringSubmatch(value); len(matches) > 1 {
		return fmt.Errorf("%s: environment variable ${%s} is not set", field, matches[1])
	}
	return nil
}
