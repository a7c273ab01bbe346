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

package tablestate

import (
	"fmt"

	"github.com/google/safehtml"
)

// Row wraps one record of the table data.
type Row[T Record] struct {
	ID       string
	Index    int // position in Options.Data
	Original T

	table *Table[T]
}

// VisibleCells returns one cell per visible leaf column.
func (r *Row[T]) VisibleCells() []*Cell[T] {
	cols := r.table.VisibleLeafColumns()
	cells := make([]*Cell[T], 0, len(cols))
	for _, col := range cols {
		cells = append(cells, &Cell[T]{
			ID:     r.ID + "_" + col.ID,
			Row:    r,
			Column: col,
		})
	}
	return cells
}

// RowModel is the list of rows to display.
type RowModel[T Record] struct {
	Rows []*Row[T]
}

// CoreRowModel wraps Data without sorting or pagination.
func (t *Table[T]) CoreRowModel() *RowModel[T] {
	rows := make([]*Row[T], len(t.opts.Data))
	for i, rec := range t.opts.Data {
		rows[i] = &Row[T]{ID: rec.RowID(), Index: i, Original: rec, table: t}
	}
	return &RowModel[T]{Rows: rows}
}

// RowModel returns the sorted and paginated rows. The result is cached
// until the state changes.
func (t *Table[T]) RowModel() *RowModel[T] {
	if t.rowModel != nil {
		return t.rowModel
	}
	rows := t.sortRows(t.CoreRowModel().Rows)
	rows = t.paginate(rows)
	t.rowModel = &RowModel[T]{Rows: rows}
	return t.rowModel
}

func (t *Table[T]) paginate(rows []*Row[T]) []*Row[T] {
	p := t.state.Pagination
	if t.opts.ManualPagination || p.PageSize <= 0 {
		return rows
	}
	start := p.PageIndex * p.PageSize
	if start >= len(rows) || start < 0 {
		return []*Row[T]{}
	}
	end := start + p.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// CellContext is passed to cell renderers.
type CellContext[T Record] struct {
	Row    *Row[T]
	Column *Column[T]
}

// Value returns the accessor value of the cell, or nil without accessor.
func (c CellContext[T]) Value() any {
	if c.Column.Def.Accessor == nil {
		return nil
	}
	return c.Column.Def.Accessor(c.Row.Original)
}

// Text formats the cell value as plain text.
func (c CellContext[T]) Text() string {
	v := c.Value()
	if c.Column.Def.Format != nil {
		return c.Column.Def.Format(v)
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Cell is the intersection of a row and a visible leaf column.
type Cell[T Record] struct {
	ID     string
	Row    *Row[T]
	Column *Column[T]
}

// Context returns the renderer context of the cell.
func (c *Cell[T]) Context() CellContext[T] {
	return CellContext[T]{Row: c.Row, Column: c.Column}
}

// Render produces the HTML content of the cell. Without a Cell renderer
// the formatted value is escaped.
func (c *Cell[T]) Render() safehtml.HTML {
	ctx := c.Context()
	if c.Column.Def.Cell != nil {
		return c.Column.Def.Cell(ctx)
	}
	return safehtml.HTMLEscaped(ctx.Text())
}

// Text returns the plain text content of the cell.
func (c *Cell[T]) Text() string {
	return c.Context().Text()
}
