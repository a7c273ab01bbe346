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

// DefaultColumnSize is used for columns without an explicit Size.
const DefaultColumnSize = 150

// Column is a node of the column tree.
type Column[T Record] struct {
	ID      string
	Def     *ColumnDef[T]
	Depth   int
	Parent  *Column[T]
	Columns []*Column[T]

	table *Table[T]
}

// IsLeaf reports whether the column renders cells.
func (c *Column[T]) IsLeaf() bool {
	return len(c.Columns) == 0
}

// IsVisible reports whether the column is shown. A group is visible while
// any of its leaves is.
func (c *Column[T]) IsVisible() bool {
	if c.IsLeaf() {
		visible, set := c.table.state.ColumnVisibility[c.ID]
		return !set || visible
	}
	return c.VisibleLeafCount() > 0
}

// VisibleLeafCount counts the visible leaves below (or at) the column.
func (c *Column[T]) VisibleLeafCount() int {
	if c.IsLeaf() {
		if c.IsVisible() {
			return 1
		}
		return 0
	}
	n := 0
	for _, child := range c.Columns {
		n += child.VisibleLeafCount()
	}
	return n
}

// Size returns the width of the column in pixels. Groups add up their
// visible leaves.
func (c *Column[T]) Size() int {
	if !c.IsLeaf() {
		total := 0
		for _, child := range c.Columns {
			if child.IsVisible() {
				total += child.Size()
			}
		}
		return total
	}
	if c.Def.Size > 0 {
		return c.Def.Size
	}
	return DefaultColumnSize
}

// HeaderContent renders the column header.
func (c *Column[T]) HeaderContent() safehtml.HTML {
	if c.Def.HeaderCell != nil {
		return c.Def.HeaderCell()
	}
	return safehtml.HTMLEscaped(c.Def.Header)
}

// CanSort reports whether toggling the column changes the row order.
func (c *Column[T]) CanSort() bool {
	if !c.IsLeaf() || !c.Def.Sortable {
		return false
	}
	return c.table.opts.ManualSorting || c.Def.SortingFn != nil
}

// IsSorted returns the current sort direction of the column.
func (c *Column[T]) IsSorted() SortDirection {
	for _, s := range c.table.state.Sorting {
		if s.ID == c.ID {
			if s.Desc {
				return SortDescending
			}
			return SortAscending
		}
	}
	return SortNone
}

// SortIndex returns the position of the column in a multi-column sort, or -1.
func (c *Column[T]) SortIndex() int {
	for i, s := range c.table.state.Sorting {
		if s.ID == c.ID {
			return i
		}
	}
	return -1
}

// NextSorting returns the sorting state one toggle of this column produces.
// Directions cycle none, ascending, descending. Without multi the column
// replaces any other sorted column.
func (c *Column[T]) NextSorting(multi bool) SortingState {
	current := c.table.state.Sorting
	next := nextDirection(c.IsSorted())

	var result SortingState
	if multi {
		for _, s := range current {
			if s.ID != c.ID {
				result = append(result, s)
			}
		}
	}
	switch next {
	case SortAscending:
		if multi && c.SortIndex() >= 0 {
			result = insertAt(result, c.SortIndex(), ColumnSort{ID: c.ID})
		} else {
			result = append(result, ColumnSort{ID: c.ID})
		}
	case SortDescending:
		if multi && c.SortIndex() >= 0 {
			result = insertAt(result, c.SortIndex(), ColumnSort{ID: c.ID, Desc: true})
		} else {
			result = append(result, ColumnSort{ID: c.ID, Desc: true})
		}
	}
	return result
}

func insertAt(s SortingState, i int, cs ColumnSort) SortingState {
	if i >= len(s) {
		return append(s, cs)
	}
	s = append(s, ColumnSort{})
	copy(s[i+1:], s[i:])
	s[i] = cs
	return s
}

// ToggleSorting applies NextSorting to the table. It is a no-op for
// columns that cannot sort.
func (c *Column[T]) ToggleSorting(multi bool) {
	if !c.CanSort() {
		return
	}
	c.table.SetSorting(c.NextSorting(multi))
}

// ToggleSortingURL returns the link that toggles the column, or the zero
// URL when the column cannot sort or the table has no SortingLink.
func (c *Column[T]) ToggleSortingURL() safehtml.URL {
	if !c.CanSort() || c.table.opts.SortingLink == nil {
		return safehtml.URL{}
	}
	return c.table.opts.SortingLink(c.NextSorting(false))
}

// Header is one cell of a header group.
type Header[T Record] struct {
	ID            string
	Column        *Column[T]
	Depth         int
	ColSpan       int
	IsPlaceholder bool
}

// Content renders the header cell. Placeholders are empty.
func (h *Header[T]) Content() safehtml.HTML {
	if h.IsPlaceholder {
		return safehtml.HTML{}
	}
	return h.Column.HeaderContent()
}

// Size returns the header width.
func (h *Header[T]) Size() int {
	return h.Column.Size()
}

// HeaderGroup is one row of headers.
type HeaderGroup[T Record] struct {
	ID      string
	Depth   int
	Headers []*Header[T]
}

// HeaderGroups returns one group per level of the visible column tree.
// Leaves shallower than the deepest level get placeholder headers above
// them so every group spans the same number of leaf columns.
func (t *Table[T]) HeaderGroups() []*HeaderGroup[T] {
	maxDepth := 0
	for _, col := range t.columns {
		if d := visibleDepth(col); d > maxDepth {
			maxDepth = d
		}
	}

	groups := make([]*HeaderGroup[T], 0, maxDepth)
	for level := 0; level < maxDepth; level++ {
		g := &HeaderGroup[T]{ID: fmt.Sprint(level), Depth: level}
		for _, col := range t.columns {
			g.Headers = appendHeaders(g.Headers, col, level, maxDepth)
		}
		groups = append(groups, g)
	}
	return groups
}

func appendHeaders[T Record](headers []*Header[T], col *Column[T], level, maxDepth int) []*Header[T] {
	if !col.IsVisible() {
		return headers
	}
	if col.IsLeaf() {
		if level == maxDepth-1 {
			return append(headers, &Header[T]{ID: col.ID, Column: col, Depth: level, ColSpan: 1})
		}
		return append(headers, &Header[T]{
			ID:            fmt.Sprintf("%d_%s_placeholder", level, col.ID),
			Column:        col,
			Depth:         level,
			ColSpan:       1,
			IsPlaceholder: true,
		})
	}
	if col.Depth == level {
		return append(headers, &Header[T]{ID: col.ID, Column: col, Depth: level, ColSpan: col.VisibleLeafCount()})
	}
	for _, child := range col.Columns {
		headers = appendHeaders(headers, child, level, maxDepth)
	}
	return headers
}

// visibleDepth is the number of header rows a column needs.
func visibleDepth[T Record](col *Column[T]) int {
	if !col.IsVisible() {
		return 0
	}
	if col.IsLeaf() {
		return 1
	}
	deepest := 0
	for _, child := range col.Columns {
		if d := visibleDepth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// FlatHeaders returns the bottom header row, one header per visible leaf.
func (t *Table[T]) FlatHeaders() []*Header[T] {
	groups := t.HeaderGroups()
	if len(groups) == 0 {
		return nil
	}
	return groups[len(groups)-1].Headers
}
