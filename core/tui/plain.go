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

package tui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/datagrid/core/grid"
	"github.com/google/datagrid/core/tablestate"
	"golang.org/x/term"
)

// DisplayOptions controls how a grid is shown.
type DisplayOptions struct {
	// Plain forces table output even on a TTY.
	Plain bool
}

// Display picks the interactive grid on a terminal and plain output
// otherwise.
func Display[T tablestate.Record](cfg Config[T], opts DisplayOptions) error {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	if !isTTY || opts.Plain {
		if cfg.Loading != nil {
			for cfg.Loading() {
				time.Sleep(loadingPoll)
			}
			cfg.Props.Loading = false
		}
		return PrintPlain(os.Stdout, cfg)
	}

	link, err := Run(cfg)
	if err != nil {
		return err
	}
	if link != "" {
		fmt.Println(link)
	}
	return nil
}

// PrintPlain writes the grid as a bordered table followed by the page
// summary.
func PrintPlain[T tablestate.Record](w io.Writer, cfg Config[T]) error {
	t := cfg.Props.Table
	if _, err := fmt.Fprintln(w, RenderPlain(cfg)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(page %d of %d, %d rows)\n", t.PageIndex()+1, t.PageCount(), t.TotalRows())
	return err
}

// RenderPlain renders the grid layout as a lipgloss table. Blank rows are
// kept so the table always shows a full page. The placeholder of an empty
// grid is centred on its own line below the header.
func RenderPlain[T tablestate.Record](cfg Config[T]) string {
	plan := grid.Layout(cfg.Props)

	headers := make([]string, len(plan.Columns))
	for i, col := range plan.Columns {
		headers[i] = col.Def.Header + sortIndicator(col.IsSorted())
	}

	rows := make([][]string, 0, len(plan.Body))
	kinds := make([]grid.RowKind, 0, len(plan.Body))
	empty := false
	for _, br := range plan.Body {
		row := make([]string, len(plan.Columns))
		switch br.Kind {
		case grid.RowData:
			for i, c := range br.Row.VisibleCells() {
				row[i] = c.Text()
			}
		case grid.RowSkeleton:
			for i, col := range plan.Columns {
				row[i] = col.Def.Meta.SkeletonText
				if row[i] == "" {
					row[i] = skeletonFiller
				}
			}
		case grid.RowEmpty:
			empty = true
			continue
		}
		rows = append(rows, row)
		kinds = append(kinds, br.Kind)
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	out := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(separatorStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case row >= 0 && row < len(kinds) && kinds[row] == grid.RowSkeleton:
				return skeletonStyle.Padding(0, 1)
			default:
				return cellStyle
			}
		}).
		String()

	if empty {
		width := max(lipgloss.Width(out), lipgloss.Width(cfg.Placeholder))
		out += "\n" + render(placeholderStyle, lipgloss.PlaceHorizontal(width, lipgloss.Center, cfg.Placeholder))
	}
	return out
}
