// Package config loads Vanguard's runtime configuration.
//
// # Resolution Order
//
//  1. An explicitly provided path is used as-is
//  2. Otherwise ~/.config/vanguard/config.toml
//  3. A missing file falls back to defaults without error
//  4. Present-but-empty fields keep their defaults
//
// The VANGUARD_BACKEND_URL environment variable, when set, overrides the
// backend URL from both the file and the defaults. A file that exists but
// fails to parse is an error; silently ignoring a typo in a config the
// operator wrote is worse than refusing to start.
//
// # Fields
//
//   - backend_url: operations backend base URL (default http://127.0.0.1:8787)
//   - poll_interval_ms: snapshot poll cadence (default 5000)
//   - proxy_addr: local reverse proxy bind address (empty = proxy off)
//   - log_dir: directory for vanguard.log (default ~/.local/share/vanguard/logs)
//
// Example config.toml:
//
//	backend_url = "http://10.40.0.12:8787"
//	poll_interval_ms = 3000
//	proxy_addr = "127.0.0.1:8080"
//
// Paths beginning with ~ expand against the user's home directory.
package config
