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
	"sort"
)

// SortDirection is the sort state of a single column.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return ""
	}
}

func nextDirection(d SortDirection) SortDirection {
	switch d {
	case SortNone:
		return SortAscending
	case SortAscending:
		return SortDescending
	default:
		return SortNone
	}
}

// ColumnSort sorts by one column.
type ColumnSort struct {
	ID   string
	Desc bool
}

// SortingState is an ordered list of column sorts; earlier entries win.
type SortingState []ColumnSort

// sortableColumn holds a comparator and its direction
type sortableColumn[T Record] struct {
	cmp        func(a, b T) int
	descending bool
}

// sortRows orders rows by the sorting state. The sort is stable so rows
// that compare equal keep their data order.
func (t *Table[T]) sortRows(rows []*Row[T]) []*Row[T] {
	if t.opts.ManualSorting || len(t.state.Sorting) == 0 {
		return rows
	}

	// Resolve columns, skipping the ones without a comparator
	cols := make([]sortableColumn[T], 0, len(t.state.Sorting))
	for _, s := range t.state.Sorting {
		col := t.byID[s.ID]
		if col == nil || !col.CanSort() {
			continue
		}
		cols = append(cols, sortableColumn[T]{cmp: col.Def.SortingFn, descending: s.Desc})
	}
	if len(cols) == 0 {
		return rows
	}

	sorted := make([]*Row[T], len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		for _, sc := range cols {
			c := sc.cmp(sorted[i].Original, sorted[j].Original)
			if c != 0 {
				if sc.descending {
					return c > 0
				}
				return c < 0
			}
		}
		return false
	})
	return sorted
}
