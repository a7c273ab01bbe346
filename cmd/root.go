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
	"fmt"
	"os"

	"github.com/google/datagrid/core/config"
	"github.com/google/datagrid/core/logger"

	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	ordersPath string

	// cfg is loaded before any subcommand runs
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "datagrid",
		Short: "Paginated data grid for the browser and the terminal",
		Long: `datagrid renders tabular data as a fixed-height, paginated grid.

It serves the grid over HTTP with sortable headers, row links and hover
panels, or browses the same grid interactively in the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error) - overrides config file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to the config file (default $DATAGRID_CONFIG or ~/.config/datagrid/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&ordersPath, "orders", "",
		"orders CSV file to show instead of the built-in dataset")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	effectiveLogLevel := cfg.LogLevel
	if logLevel != "" {
		effectiveLogLevel = logLevel
	}
	logger.SetLevel(effectiveLogLevel)
	return nil
}
