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

// Package tablestate holds the table state a data grid renders from:
// column definitions, sorting, visibility, pagination and the derived
// row model. Grids only read it, except for relaying sort toggles.
package tablestate

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/safehtml"
)

var (
	// ErrEmptyColumnID is returned when a column definition has no ID.
	ErrEmptyColumnID = errors.New("column definition without id")
	// ErrDuplicateColumn is returned when two column definitions share an ID.
	ErrDuplicateColumn = errors.New("duplicate column id")
)

// Record is implemented by every row type. RowID must be unique within a table.
type Record interface {
	RowID() string
}

// Pagination selects the page of the row model to expose.
type Pagination struct {
	PageIndex int
	PageSize  int // 0 disables pagination
}

// State is the mutable part of a table.
type State struct {
	Sorting          SortingState
	ColumnVisibility map[string]bool // missing entries are visible
	Pagination       Pagination
}

// Clone returns a copy that shares no map or slice with s.
func (s State) Clone() State {
	s.Sorting = slices.Clone(s.Sorting)
	s.ColumnVisibility = maps.Clone(s.ColumnVisibility)
	return s
}

// ColumnMeta carries presentation hints that are not part of the data.
type ColumnMeta struct {
	ClassName    string
	Skeleton     safehtml.HTML // shown in HTML cells while loading
	SkeletonText string        // shown in terminal cells while loading
}

// ColumnDef defines a column. A definition with Columns is a group column
// and only contributes a header.
type ColumnDef[T Record] struct {
	ID         string
	Header     string
	HeaderCell func() safehtml.HTML
	Accessor   func(T) any
	Cell       func(CellContext[T]) safehtml.HTML
	Format     func(any) string
	Meta       ColumnMeta
	Sortable   bool
	SortingFn  func(a, b T) int
	Size       int
	Columns    []ColumnDef[T]
}

// Options configures a Table.
type Options[T Record] struct {
	Data    []T
	Columns []ColumnDef[T]
	State   State

	// ManualSorting means Data is already sorted; SortingFn is not used.
	ManualSorting bool
	// ManualPagination means Data already holds only the current page.
	ManualPagination bool
	// TotalRows is the unpaginated row count when ManualPagination is set.
	TotalRows int

	// SortingLink maps a sorting state to the URL that applies it.
	SortingLink func(SortingState) safehtml.URL
	// OnSortingChange is called after SetSorting replaced the state.
	OnSortingChange func(SortingState)
}

// Table is the derived table state.
type Table[T Record] struct {
	opts     Options[T]
	state    State
	columns  []*Column[T] // top level, in definition order
	byID     map[string]*Column[T]
	leaves   []*Column[T] // all leaves in display order
	rowModel *RowModel[T]
}

// New builds a table from options. The table keeps its own copy of
// opts.State.
func New[T Record](opts Options[T]) (*Table[T], error) {
	t := &Table[T]{
		opts:  opts,
		state: opts.State.Clone(),
		byID:  make(map[string]*Column[T]),
	}
	if t.state.ColumnVisibility == nil {
		t.state.ColumnVisibility = make(map[string]bool)
	}
	for i := range opts.Columns {
		col, err := t.buildColumn(&opts.Columns[i], nil, 0)
		if err != nil {
			return nil, err
		}
		t.columns = append(t.columns, col)
	}
	return t, nil
}

func (t *Table[T]) buildColumn(def *ColumnDef[T], parent *Column[T], depth int) (*Column[T], error) {
	if def.ID == "" {
		return nil, fmt.Errorf("%w (header %q)", ErrEmptyColumnID, def.Header)
	}
	if _, exists := t.byID[def.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, def.ID)
	}
	col := &Column[T]{
		ID:     def.ID,
		Def:    def,
		Depth:  depth,
		Parent: parent,
		table:  t,
	}
	t.byID[def.ID] = col
	for i := range def.Columns {
		child, err := t.buildColumn(&def.Columns[i], col, depth+1)
		if err != nil {
			return nil, err
		}
		col.Columns = append(col.Columns, child)
	}
	if len(col.Columns) == 0 {
		t.leaves = append(t.leaves, col)
	}
	return col, nil
}

// State returns a copy of the current state.
func (t *Table[T]) State() State {
	return t.state.Clone()
}

// Sorting returns the current sorting state.
func (t *Table[T]) Sorting() SortingState {
	return t.state.Sorting
}

// SetSorting replaces the sorting state and notifies OnSortingChange.
func (t *Table[T]) SetSorting(sorting SortingState) {
	t.state.Sorting = sorting
	t.rowModel = nil
	if t.opts.OnSortingChange != nil {
		t.opts.OnSortingChange(sorting)
	}
}

// SetPageIndex moves to another page.
func (t *Table[T]) SetPageIndex(index int) {
	if index < 0 {
		index = 0
	}
	t.state.Pagination.PageIndex = index
	t.rowModel = nil
}

// SetColumnVisibility shows or hides a column.
func (t *Table[T]) SetColumnVisibility(id string, visible bool) {
	t.state.ColumnVisibility[id] = visible
	t.rowModel = nil
}

// Column looks up a column by ID.
func (t *Table[T]) Column(id string) *Column[T] {
	return t.byID[id]
}

// AllColumns returns the top level columns, visible or not.
func (t *Table[T]) AllColumns() []*Column[T] {
	return t.columns
}

// AllLeafColumns returns every leaf column, visible or not.
func (t *Table[T]) AllLeafColumns() []*Column[T] {
	return t.leaves
}

// VisibleLeafColumns returns the leaf columns that render cells.
func (t *Table[T]) VisibleLeafColumns() []*Column[T] {
	visible := make([]*Column[T], 0, len(t.leaves))
	for _, col := range t.leaves {
		if col.IsVisible() {
			visible = append(visible, col)
		}
	}
	return visible
}

// TotalRows returns the number of rows before pagination.
func (t *Table[T]) TotalRows() int {
	if t.opts.ManualPagination {
		if t.opts.TotalRows > 0 {
			return t.opts.TotalRows
		}
		return len(t.opts.Data)
	}
	return len(t.opts.Data)
}

// PageCount returns the number of pages, at least 1.
func (t *Table[T]) PageCount() int {
	size := t.state.Pagination.PageSize
	total := t.TotalRows()
	if size <= 0 || total == 0 {
		return 1
	}
	return (total + size - 1) / size
}

// PageIndex returns the current page index.
func (t *Table[T]) PageIndex() int {
	return t.state.Pagination.PageIndex
}

// CanPreviousPage reports whether a page precedes the current one.
func (t *Table[T]) CanPreviousPage() bool {
	return t.state.Pagination.PageIndex > 0
}

// CanNextPage reports whether a page follows the current one.
func (t *Table[T]) CanNextPage() bool {
	return t.state.Pagination.PageIndex+1 < t.PageCount()
}
