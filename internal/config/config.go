package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the runtime settings Vanguard needs.
type Config struct {
	BackendURL     string
	PollIntervalMS int
	ProxyAddr      string
	LogDir         string
}

const (
	defaultConfigPath = "~/.config/vanguard/config.toml"
	defaultLogDir     = "~/.local/share/vanguard/logs"
	defaultBackend    = "http://127.0.0.1:8787"
	defaultPollMS     = 5000

	// EnvBackendURL overrides the configured backend base URL.
	EnvBackendURL = "VANGUARD_BACKEND_URL"
)

// Load locates and parses the config, falling back to defaults when missing.
// The VANGUARD_BACKEND_URL environment variable, when set, wins over both the
// file and the default.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BackendURL:     defaultBackend,
		PollIntervalMS: defaultPollMS,
		LogDir:         defaultLogDir,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return finalize(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BackendURL     string `toml:"backend_url"`
		PollIntervalMS int    `toml:"poll_interval_ms"`
		ProxyAddr      string `toml:"proxy_addr"`
		LogDir         string `toml:"log_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BackendURL); v != "" {
		cfg.BackendURL = v
	}
	if raw.PollIntervalMS > 0 {
		cfg.PollIntervalMS = raw.PollIntervalMS
	}
	cfg.ProxyAddr = strings.TrimSpace(raw.ProxyAddr)
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = v
	}

	return finalize(cfg), nil
}

func finalize(cfg Config) Config {
	if env := strings.TrimSpace(os.Getenv(EnvBackendURL)); env != "" {
		cfg.BackendURL = env
	}
	cfg.LogDir = mustExpand(cfg.LogDir)
	return cfg
}

// LogPath returns the path of the primary log file.
func (c Config) LogPath() string {
	dir := c.LogDir
	if strings.TrimSpace(dir) == "" {
		dir = mustExpand(defaultLogDir)
	}
	return filepath.Join(dir, "vanguard.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
