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

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATAGRID_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	logLevel, configPath, ordersPath = "", "", ""
	browsePageSize, browsePlain = 0, false
	versionOutput = "simple"

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		out, err := execute(t, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "datagrid version dev")
		assert.Contains(t, out, "go version:")
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "version", "-o", "json")
		require.NoError(t, err)

		var info versionInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "dev", info.Version)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "version", "-o", "xml")
		assert.Error(t, err)
	})
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page-size: 25\nlog-level: debug\n"), 0o644))

	_, err := execute(t, "--config", path, "version")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.PageSize)

	_, err = execute(t, "--config", path, "--log-level", "error", "version")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page-size: -1\n"), 0o644))

	_, err := execute(t, "--config", path, "version")
	assert.Error(t, err)
}

// executeStdout runs the command and returns what it wrote to os.Stdout.
func executeStdout(t *testing.T, args ...string) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	_, runErr := execute(t, args...)

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestBrowsePlain(t *testing.T) {
	output, runErr := executeStdout(t, "browse", "--plain", "--page-size", "5")

	require.NoError(t, runErr)
	assert.Contains(t, output, "ORD-1001")
	assert.Contains(t, output, "ORD-1005")
	assert.NotContains(t, output, "ORD-1006")
	assert.Contains(t, output, "(page 1 of 5, 23 rows)")
}

func TestBrowseRejectsBadPageSize(t *testing.T) {
	_, err := execute(t, "browse", "--plain", "--page-size=-3")
	assert.Error(t, err)
}

func TestBrowseOrdersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	data := "id,customer,region,product,quantity,unit_price,status,ordered_at\n" +
		"X-1,Initrode,Europe,Stapler,3,2.50,pending,2024-05-01\n" +
		"X-2,Initech,Asia,Printer,1,180.00,shipped,2024-05-02\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	output, err := executeStdout(t, "browse", "--plain", "--orders", path)
	require.NoError(t, err)
	assert.Contains(t, output, "X-1")
	assert.Contains(t, output, "X-2")
	assert.NotContains(t, output, "ORD-1001")

	_, err = execute(t, "browse", "--plain", "--orders", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
