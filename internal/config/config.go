// Copyright (c) 2026 Keyworker Team
// Keyworker - activation key management client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists the JSON file that tells the keys CLI
// where the Worker lives and which admin credential to present.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultPath is the config file looked up relative to the working directory.
const DefaultPath = "keys.json"

// EnvPrefix is prepended to environment overrides, e.g. KEYS_BASE_URL.
const EnvPrefix = "keys"

// ErrNoBaseURL is returned by Load when the file does not name a Worker.
var ErrNoBaseURL = errors.New("base_url is not set")

// HistoryConfig selects the local request journal backend.
// An empty DSN disables the journal.
type HistoryConfig struct {
	Type string `mapstructure:"type" json:"type"`
	DSN  string `mapstructure:"dsn" json:"dsn"`
}

// Config is the parsed keys.json. It is built once per process and handed
// to whatever needs it; nothing mutates it after Load.
type Config struct {
	AdminKey  string        `mapstructure:"admin_key" json:"admin_key,omitempty"`
	AdminKeys []string      `mapstructure:"admin_keys" json:"admin_keys,omitempty"`
	BaseURL   string        `mapstructure:"base_url" json:"base_url"`
	BuyURL    string        `mapstructure:"buy_url" json:"buy_url,omitempty"`
	Language  string        `mapstructure:"language" json:"language,omitempty"`
	History   HistoryConfig `mapstructure:"history" json:"history"`
}

// Defaults are registered with viper before the file is read so every key
// can be overridden from the environment.
var Defaults = map[string]any{
	"admin_key":    "",
	"admin_keys":   []string{},
	"base_url":     "",
	"buy_url":      "",
	"language":     "en",
	"history.type": "sqlite",
	"history.dsn":  "",
}

// Admin returns the credential sent with privileged requests: admin_key when
// present, otherwise the first non-empty entry of admin_keys.
func (c Config) Admin() string {
	if c.AdminKey != "" {
		return c.AdminKey
	}
	for _, k := range c.AdminKeys {
		if k != "" {
			return k
		}
	}
	return ""
}

// Load reads the JSON config at path. A missing or malformed file is an
// error; callers treat it as fatal. A .env file next to the config is loaded
// first so KEYS_* overrides can live beside it.
func Load(path string) (Config, error) {
	var c Config
	if path == "" {
		path = DefaultPath
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return c, err
	}

	v := viper.New()
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return c, fmt.Errorf("could not read config %s: %w", path, err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("could not parse config %s: %w", path, err)
	}

	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return c, fmt.Errorf("%s: %w", path, ErrNoBaseURL)
	}
	return c, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("could not load %s: %w", path, err)
	}
	return nil
}

// Write persists c as indented JSON. The file holds the admin secret, so it
// is created 0600.
func Write(path string, c Config) error {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create config directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("could not write config %s: %w", path, err)
	}
	return nil
}
