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
	"github.com/google/datagrid/core/tui"
	"github.com/google/datagrid/demo"

	"github.com/spf13/cobra"
)

var (
	browsePageSize int
	browsePlain    bool

	browseCmd = &cobra.Command{
		Use:   "browse",
		Short: "Browse the demo orders grid in the terminal",
		Long: `Browse the demo orders grid in the terminal.

Rows are selected with the arrow keys or the mouse. Enter or a click opens
the row, s sorts by the selected column (S adds it to the sort), n and p
page through the data. When stdout is not a terminal, or with --plain,
the first page is printed as a table instead.`,
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}
)

func init() {
	browseCmd.Flags().IntVar(&browsePageSize, "page-size", 0, "rows per page (overrides config file)")
	browseCmd.Flags().BoolVar(&browsePlain, "plain", false, "print a plain table instead of the interactive grid")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command, _ []string) error {
	if browsePageSize != 0 {
		cfg.PageSize = browsePageSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	orders, err := demo.NewOrdersSource(demo.SourceOptions{
		File:        ordersPath,
		Warmup:      cfg.Warmup,
		Placeholder: cfg.Placeholder,
		HoverDelay:  cfg.HoverDelay,
	})
	if err != nil {
		return err
	}

	gridCfg, err := orders.TUIConfig(cfg.PageSize)
	if err != nil {
		return err
	}
	return tui.Display(gridCfg, tui.DisplayOptions{Plain: browsePlain})
}
