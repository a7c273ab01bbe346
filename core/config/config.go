/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Datagrid Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads the datagrid configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "DATAGRID_CONFIG"

// Config represents the configuration file
type Config struct {
	Listen      string        `yaml:"listen,omitempty"`
	PageSize    int           `yaml:"page-size,omitempty"`
	HoverDelay  time.Duration `yaml:"hover-delay,omitempty"`
	LogLevel    string        `yaml:"log-level,omitempty"`
	Warmup      time.Duration `yaml:"warmup,omitempty"`
	Placeholder string        `yaml:"placeholder,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Listen:      "127.0.0.1:8097",
		PageSize:    10,
		HoverDelay:  500 * time.Millisecond,
		LogLevel:    "info",
		Warmup:      0,
		Placeholder: "No results.",
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		return envPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "datagrid", "config.yaml"), nil
}

// Load loads the configuration from the default location.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration at path. Values missing from the file
// keep their defaults and a missing file yields Default().
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page-size must be positive, got %d", ErrInvalidConfig, c.PageSize)
	}
	if c.HoverDelay < 0 {
		return fmt.Errorf("%w: hover-delay must not be negative, got %s", ErrInvalidConfig, c.HoverDelay)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("%w: warmup must not be negative, got %s", ErrInvalidConfig, c.Warmup)
	}
	if c.Listen == "" {
		return fmt.Errorf("%w: listen address is empty", ErrInvalidConfig)
	}
	return nil
}
