// ABOUTME: Gateway configuration loading
// ABOUTME: Merges TOML file settings with environment overrides
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
)

// Duration wraps time.Duration so it can be written as "30s" in TOML and in
// environment variables.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// GatewayConfig holds the relay gateway settings. File values come from a
// TOML config; environment variables override the file.
type GatewayConfig struct {
	RelayURL       string   `toml:"relay_url" env:"FEEDLOG_RELAY_URL"`
	ToolCommand    string   `toml:"tool_command" env:"FEEDLOG_TOOL_COMMAND"`
	ToolArgs       []string `toml:"tool_args" env:"FEEDLOG_TOOL_ARGS" envSeparator:" "`
	InitialBackoff Duration `toml:"initial_backoff" env:"FEEDLOG_BACKOFF_INITIAL"`
	MaxBackoff     Duration `toml:"max_backoff" env:"FEEDLOG_BACKOFF_MAX"`
	Jitter         float64  `toml:"jitter" env:"FEEDLOG_BACKOFF_JITTER"`
}

// LoadGatewayConfig loads gateway settings from the TOML file at path (if it
// exists), applies environment overrides, and fills in defaults. A missing
// file is not an error; a missing relay URL is.
func LoadGatewayConfig(path string) (*GatewayConfig, error) {
	cfg := &GatewayConfig{
		ToolCommand:    os.Args[0],
		ToolArgs:       []string{"mcp"},
		InitialBackoff: Duration{time.Second},
		MaxBackoff:     Duration{30 * time.Second},
		Jitter:         0.2,
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.RelayURL == "" {
		return nil, fmt.Errorf("relay URL not configured (set relay_url in %s or FEEDLOG_RELAY_URL)", path)
	}
	if cfg.InitialBackoff.Duration <= 0 || cfg.MaxBackoff.Duration < cfg.InitialBackoff.Duration {
		return nil, fmt.Errorf("backoff misconfigured: initial=%s max=%s", cfg.InitialBackoff, cfg.MaxBackoff)
	}

	return cfg, nil
}
