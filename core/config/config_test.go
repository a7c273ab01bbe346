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


package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Contains(t, filepath.ToSlash(path), ".config/datagrid/config.yaml")
}

func TestGetConfigPath_Env(t *testing.T) {
	t.Setenv(EnvConfigPath, "/custom/datagrid.yaml")

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/datagrid.yaml", path)
}

func TestLoad_Missing(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
listen: ":9000"
page-size: 25
hover-delay: 750ms
warmup: 2s
log-level: debug
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 750*time.Millisecond, cfg.HoverDelay)
	assert.Equal(t, 2*time.Second, cfg.Warmup)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Default().Placeholder, cfg.Placeholder, "unset values keep defaults")
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		isInvalid bool
	}{
		{"malformed yaml", "page-size: [1, 2", false},
		{"zero page size", "page-size: 0", true},
		{"negative hover delay", "hover-delay: -1s", true},
		{"negative warmup", "warmup: -5s", true},
		{"empty listen", `listen: ""`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.isInvalid, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestValidateDefault(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
