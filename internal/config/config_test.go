package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
  read_timeout: 5s
form:
  name: shelter
  sensitive: true
security:
  key: "0123456789abcdef0123456789abcdef"
logging:
  level: debug
  format: json
  file: /tmp/animalform.log
  max_backups: 3
metrics:
  enabled: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Server.Addr = "127.0.0.1:9000"
	want.Server.ReadTimeout = 5 * time.Second
	want.Form = FormConfig{Name: "shelter", Sensitive: true}
	want.Security.Key = "0123456789abcdef0123456789abcdef"
	want.Logging = LoggingConfig{Level: "debug", Format: "json", File: "/tmp/animalform.log", MaxBackups: 3}
	want.Metrics.Enabled = false

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":7000\"\n")

	t.Setenv("ANIMALFORM_ADDR", ":7100")
	t.Setenv("ANIMALFORM_WRITE_TIMEOUT", "1m")
	t.Setenv("ANIMALFORM_FORM_SENSITIVE", "true")
	t.Setenv("ANIMALFORM_LOG_MAX_SIZE_MB", "25")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":7100" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":7100")
	}
	if cfg.Server.WriteTimeout != time.Minute {
		t.Errorf("Server.WriteTimeout = %v, want 1m", cfg.Server.WriteTimeout)
	}
	if !cfg.Form.Sensitive {
		t.Error("Form.Sensitive = false, want true")
	}
	if cfg.Logging.MaxSizeMB != 25 {
		t.Errorf("Logging.MaxSizeMB = %d, want 25", cfg.Logging.MaxSizeMB)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "server: [",
			wantErr: "failed to parse YAML config",
		},
		{
			name:    "bad env bool",
			env:     map[string]string{"ANIMALFORM_FORM_SENSITIVE": "maybe"},
			wantErr: "invalid bool value",
		},
		{
			name:    "bad env duration",
			env:     map[string]string{"ANIMALFORM_READ_TIMEOUT": "soon"},
			wantErr: "invalid duration value",
		},
		{
			name:    "short key",
			yaml:    "security:\n  key: short\n",
			wantErr: "security key must be at least 32 bytes",
		},
		{
			name:    "bad form name",
			yaml:    "form:\n  name: \"a/b\"\n",
			wantErr: "must be usable in a URL path segment",
		},
		{
			name:    "bad log format",
			yaml:    "logging:\n  format: xml\n",
			wantErr: "logging format must be text or json",
		},
		{
			name:    "relative metrics path",
			yaml:    "metrics:\n  path: metrics\n",
			wantErr: "metrics path must start with /",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeConfig(t, tt.yaml)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Load() error = %v, want read failure", err)
	}
}

func TestLoggingConfig(t *testing.T) {
	cfg := Default()
	cfg.Logging = LoggingConfig{Level: "warn", Format: "json", File: "x.log", MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 3}

	got := cfg.LoggingConfig()
	if got.Level != "warn" || got.Format != "json" || got.File != "x.log" ||
		got.MaxSizeMB != 1 || got.MaxBackups != 2 || got.MaxAgeDays != 3 {
		t.Errorf("LoggingConfig() = %+v", got)
	}
}
