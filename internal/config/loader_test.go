package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
		checkFn func(t *testing.T, cfg *Config)
	}{
		{
			name: "minimal valid config",
			yaml: `
remote:
  address: exec.internal
  port: 6000
`,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Target() != "exec.internal:6000" {
					t.Errorf("Target() = %q", cfg.Target())
				}
				if cfg.Remote.Service != "CmdExecutor" {
					t.Error("default service not applied")
				}
				if cfg.Remote.MaxMessageBytes != 100*1024*1024 {
					t.Error("default max_message_bytes not applied")
				}
				if cfg.Remote.OutputEncoding != "gbk" {
					t.Error("default output_encoding not applied")
				}
				if cfg.Session.BaseName != "remex" {
					t.Error("default base_name not applied")
				}
				if !cfg.Journal.Enabled || cfg.Journal.Path != "./remex.db" {
					t.Error("default journal not applied")
				}
				if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
					t.Error("default log settings not applied")
				}
			},
		},
		{
			name: "full config",
			yaml: `
remote:
  address: 10.0.0.5
  port: 50052
  service: executor.v1.CmdExecutor
  max_message_bytes: 1048576
  rpc_timeout: 90s
  compression: gzip
  output_encoding: utf-8
  keepalive: 30s
session:
  base_name: Test_R
  keep_on_exit: true
journal:
  enabled: false
log:
  level: debug
  format: text
`,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Remote.RPCTimeout != 90*time.Second {
					t.Error("rpc_timeout not parsed")
				}
				if cfg.Remote.Keepalive != 30*time.Second {
					t.Error("keepalive not parsed")
				}
				if cfg.Remote.Compression != "gzip" {
					t.Error("compression not parsed")
				}
				if cfg.Remote.Service != "executor.v1.CmdExecutor" {
					t.Error("service not parsed")
				}
				if cfg.Session.BaseName != "Test_R" || !cfg.Session.KeepOnExit {
					t.Error("session not parsed")
				}
				if cfg.Journal.Enabled {
					t.Error("journal.enabled: false not honored")
				}
				if cfg.Log.Format != "text" {
					t.Error("log.format not parsed")
				}
			},
		},
		{
			name: "env interpolation",
			yaml: `
remote:
  address: ${REMEX_TEST_HOST}
journal:
  path: ${REMEX_TEST_DIR}/history.db
`,
			env: map[string]string{"REMEX_TEST_HOST": "build-box", "REMEX_TEST_DIR": "/var/lib/remex"},
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Remote.Address != "build-box" {
					t.Errorf("address = %q", cfg.Remote.Address)
				}
				if cfg.Journal.Path != "/var/lib/remex/history.db" {
					t.Errorf("journal.path = %q", cfg.Journal.Path)
				}
			},
		},
		{
			name: "unset env var",
			yaml: `
remote:
  address: ${REMEX_TEST_UNSET_HOST}
`,
			wantErr: "remote.address: environment variable ${REMEX_TEST_UNSET_HOST} is not set",
		},
		{
			name: "port out of range",
			yaml: `
remote:
  port: 70000
`,
			wantErr: "remote.port",
		},
		{
			name: "unknown compression",
			yaml: `
remote:
  compression: zstd
`,
			wantErr: "remote.compression",
		},
		{
			name: "base name with separator",
			yaml: `
session:
  base_name: a/b
`,
			wantErr: "session.base_name",
		},
		{
			name: "log level and format in any case",
			yaml: `
log:
  level: INFO
  format: Text
`,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Log.Level != "info" {
					t.Errorf("log.level = %q, want info", cfg.Log.Level)
				}
				if cfg.Log.Format != "text" {
					t.Errorf("log.format = %q, want text", cfg.Log.Format)
				}
			},
		},
		{
			name: "invalid log level",
			yaml: `
log:
  level: verbose
`,
			wantErr: "log.level",
		},
		{
			name:    "invalid yaml",
			yaml:    "remote: [",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.SourcePath != path {
				t.Errorf("SourcePath = %q, want %q", cfg.SourcePath, path)
			}
			if tt.checkFn != nil {
				tt.checkFn(t, cfg)
			}
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("session:\n  base_name: dirmode\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.BaseName != "dirmode" {
		t.Errorf("base_name = %q", cfg.Session.BaseName)
	}
}

func TestLoadDirectoryWithoutConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "config.yaml not found") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfigPath, "")
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Target() != "localhost:50051" {
		t.Errorf("Target() = %q", cfg.Target())
	}
	if cfg.SourcePath != "" {
		t.Errorf("SourcePath = %q, want empty", cfg.SourcePath)
	}
}

func TestDiscoverPrefersEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	got, err := Discover()
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got != path {
		t.Errorf("Discover() = %q, want %q", got, path)
	}
}

func TestDiscoverUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")
	want := filepath.Join(home, ".config", "remex", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(want), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(want, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Discover()
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got != want {
		t.Errorf("Discover() = %q, want %q", got, want)
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "Warn", "error"} {
		if err := ValidateLogLevel(level); err != nil {
			t.Errorf("ValidateLogLevel(%q) = %v, want nil", level, err)
		}
	}
	for _, level := range []string{"", "verbose", "trace"} {
		if err := ValidateLogLevel(level); err == nil {
			t.Errorf("ValidateLogLevel(%q) = nil, want error", level)
		}
	}
}
