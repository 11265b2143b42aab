// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the trading terminal's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the trading terminal.
type Config struct {
	Agent   AgentConfig   `yaml:"agent"`
	Wallet  WalletConfig  `yaml:"wallet"`
	Trading TradingConfig `yaml:"trading"`
	Push    PushConfig    `yaml:"push"`
	Log     LogConfig     `yaml:"log"`
}

// AgentConfig points at the remote trading agent.
type AgentConfig struct {
	// BaseURL is the agent's JSON-RPC endpoint.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds single (non-streaming) requests.
	Timeout Duration `yaml:"timeout"`

	// AuthToken is an optional static bearer token.
	AuthToken string `yaml:"auth_token"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// WalletConfig configures the hardware-wallet boundary.
type WalletConfig struct {
	DerivationPath string `yaml:"derivation_path"`

	// Seed is a hex-encoded ed25519 seed for the in-process software
	// signer. Leave empty to run without signing.
	Seed string `yaml:"seed"`
}

// PushConfig configures push notification delivery. Leaving CallbackURL
// empty disables push registration.
type PushConfig struct {
	// CallbackURL is where the agent POSTs task updates.
	CallbackURL string `yaml:"callback_url"`

	// Secret signs the per-task callback tokens.
	Secret string `yaml:"secret"`

	// TokenTTL bounds callback token lifetime.
	TokenTTL Duration `yaml:"token_ttl"`
}

// TradingConfig configures order defaults.
type TradingConfig struct {
	// Market is the default trading pair, e.g. "SUI/USDC".
	Market string `yaml:"market"`
}

// LogConfig controls log output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			Timeout: Duration(30 * time.Second),
		},
		Wallet: WalletConfig{
			DerivationPath: "m/44'/784'/0'/0'/0'",
		},
		Trading: TradingConfig{
			Market: "SUI/USDC",
		},
		Push: PushConfig{
			TokenTTL: Duration(time.Hour),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load parses the YAML configuration at path, applying defaults for
// anything the file leaves unset.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the terminal cannot run
// without.
func (c *Config) Validate() error {
	if c.Agent.BaseURL == "" {
		return errors.New("agent.base_url is required")
	}
	if c.Agent.Timeout <= 0 {
		return errors.New("agent.timeout must be positive")
	}
	if c.Push.CallbackURL != "" && c.Push.Secret == "" {
		return errors.New("push.secret is required when push.callback_url is set")
	}
	return nil
}
