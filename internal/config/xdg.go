// ABOUTME: XDG Base Directory specification helpers
// ABOUTME: Resolves data, config, and database paths with fallbacks
package config

import (
	"os"
	"path/filepath"
)

// GetDataHome returns XDG_DATA_HOME or fallback to ~/.local/share
func GetDataHome() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}
	home := os.Getenv("HOME")
	return filepath.Join(home, ".local", "share")
}

// GetConfigHome returns XDG_CONFIG_HOME or fallback to ~/.config
func GetConfigHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home := os.Getenv("HOME")
	return filepath.Join(home, ".config")
}

// DBPath returns the feeding database location. FEEDLOG_DB_PATH overrides
// the XDG default.
func DBPath() string {
	if p := os.Getenv("FEEDLOG_DB_PATH"); p != "" {
		return p
	}
	return filepath.Join(GetDataHome(), "feedlog", "feedlog.db")
}

// GatewayConfigPath returns the default gateway config file location.
func GatewayConfigPath() string {
	return filepath.Join(GetConfigHome(), "feedlog", "gateway.toml")
}
