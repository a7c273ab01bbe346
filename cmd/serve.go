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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/datagrid/core/logger"
	"github.com/google/datagrid/core/server"
	"github.com/google/datagrid/demo"

	"github.com/spf13/cobra"
)

var (
	serveListen   string
	servePageSize int

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo grids over HTTP",
		Example: `  datagrid serve
  datagrid serve --listen :9000 --page-size 25`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "address to listen on (overrides config file)")
	serveCmd.Flags().IntVar(&servePageSize, "page-size", 0, "rows per page (overrides config file)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveListen != "" {
		cfg.Listen = serveListen
	}
	if servePageSize != 0 {
		cfg.PageSize = servePageSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.NewServer(server.Options{
		Title:      "Datagrid",
		Subtitle:   "Sortable, paginated grids",
		PageSize:   cfg.PageSize,
		HoverDelay: cfg.HoverDelay,
	})
	if err != nil {
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
	if err := srv.Register(orders); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Server starting on http://%s\n", cfg.Listen)
	logger.Log.Infow("serving grids", "page_size", cfg.PageSize, "warmup", cfg.Warmup)
	return srv.ListenAndServe(ctx, cfg.Listen)
}

// contextOrBackground covers commands run without Execute
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
