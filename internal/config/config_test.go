package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvBackendURL, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BackendURL != "http://127.0.0.1:8787" {
		t.Fatalf("BackendURL = %q, want default", cfg.BackendURL)
	}
	if cfg.PollIntervalMS != 5000 {
		t.Fatalf("PollIntervalMS = %d, want 5000", cfg.PollIntervalMS)
	}
	if cfg.ProxyAddr != "" {
		t.Fatalf("ProxyAddr = %q, want empty (proxy off by default)", cfg.ProxyAddr)
	}
	if cfg.LogDir == "" {
		t.Fatal("LogDir should default to a concrete directory")
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	t.Setenv(EnvBackendURL, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
backend_url = "http://ops.example:9000"
poll_interval_ms = 2500
proxy_addr = "127.0.0.1:8080"
log_dir = "` + dir + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BackendURL != "http://ops.example:9000" {
		t.Fatalf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.PollIntervalMS != 2500 {
		t.Fatalf("PollIntervalMS = %d", cfg.PollIntervalMS)
	}
	if cfg.ProxyAddr != "127.0.0.1:8080" {
		t.Fatalf("ProxyAddr = %q", cfg.ProxyAddr)
	}
	if cfg.LogDir != dir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, dir)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvBackendURL, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`poll_interval_ms = 1000`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BackendURL != "http://127.0.0.1:8787" {
		t.Fatalf("BackendURL = %q, want default preserved", cfg.BackendURL)
	}
	if cfg.PollIntervalMS != 1000 {
		t.Fatalf("PollIntervalMS = %d, want 1000", cfg.PollIntervalMS)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`backend_url = [not toml`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for malformed config")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv(EnvBackendURL, "http://wartime.example:1234")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`backend_url = "http://file.example:1"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BackendURL != "http://wartime.example:1234" {
		t.Fatalf("BackendURL = %q, want env value", cfg.BackendURL)
	}
}

func TestLogPath(t *testing.T) {
	cfg := Config{LogDir: "/var/log/vanguard"}
	got := cfg.LogPath()
	if got != filepath.Join("/var/log/vanguard", "vanguard.log") {
		t.Fatalf("LogPath = %q", got)
	}

	empty := Config{}
	if !strings.HasSuffix(empty.LogPath(), "vanguard.log") {
		t.Fatalf("empty LogPath = %q, want default log file", empty.LogPath())
	}
}
