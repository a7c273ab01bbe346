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

// Package grid is the data grid component. It projects a table state onto
// a fixed number of visible rows: data rows padded with blank rows,
// skeleton rows while loading, or a single placeholder row when there is
// nothing to show. The grid owns no data; it only reads the table state
// and relays sort toggles, row clicks and hovers.
package grid

import (
	"strconv"

	"github.com/google/datagrid/core/tablestate"
	"github.com/google/safehtml"
)

// Props configures a grid.
type Props[T tablestate.Record] struct {
	Table *tablestate.Table[T]

	// HoverElement renders the panel shown while hovering a row. Nil
	// disables hover panels.
	HoverElement func(T) safehtml.HTML

	Loading     bool
	Placeholder safehtml.HTML
	PageSize    int

	// LinkFormatter maps a row to the target its cells link to.
	LinkFormatter func(T) string
}

// RowKind tells which branch produced a body row.
type RowKind int

const (
	RowData RowKind = iota
	RowBlank
	RowSkeleton
	RowEmpty
)

func (k RowKind) String() string {
	switch k {
	case RowData:
		return "data"
	case RowBlank:
		return "blank"
	case RowSkeleton:
		return "skeleton"
	case RowEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// BodyRow is one row of the grid body. Row is only set for data rows.
type BodyRow[T tablestate.Record] struct {
	Key  string
	Kind RowKind
	Row  *tablestate.Row[T]
}

// Plan is the frontend independent layout of a grid.
type Plan[T tablestate.Record] struct {
	HeaderGroups []*tablestate.HeaderGroup[T]
	Columns      []*tablestate.Column[T] // visible leaf columns
	Body         []BodyRow[T]
	ColumnCount  int // span of the empty row
}

// Layout computes the body rows. Loading, empty and data are mutually
// exclusive: loading yields PageSize skeleton rows, an empty row model
// yields a single placeholder row, otherwise every row of the row model
// is followed by blank rows up to PageSize.
func Layout[T tablestate.Record](props Props[T]) Plan[T] {
	t := props.Table
	plan := Plan[T]{
		HeaderGroups: t.HeaderGroups(),
		Columns:      t.VisibleLeafColumns(),
	}
	plan.ColumnCount = len(plan.Columns)
	if plan.ColumnCount == 0 {
		plan.ColumnCount = 1
	}

	if props.Loading {
		for i := 0; i < props.PageSize; i++ {
			plan.Body = append(plan.Body, BodyRow[T]{Key: skeletonKey(i), Kind: RowSkeleton})
		}
		return plan
	}

	rows := t.RowModel().Rows
	if len(rows) == 0 {
		plan.Body = []BodyRow[T]{{Key: "empty", Kind: RowEmpty}}
		return plan
	}

	for _, row := range rows {
		plan.Body = append(plan.Body, BodyRow[T]{Key: row.ID, Kind: RowData, Row: row})
	}
	for i := 0; i < props.PageSize-len(rows); i++ {
		plan.Body = append(plan.Body, BodyRow[T]{Key: blankKey(i), Kind: RowBlank})
	}
	return plan
}

func skeletonKey(i int) string { return "skeleton-" + strconv.Itoa(i) }
func blankKey(i int) string    { return "blank-" + strconv.Itoa(i) }

// Count returns the number of body rows of a kind.
func (p Plan[T]) Count(kind RowKind) int {
	n := 0
	for _, r := range p.Body {
		if r.Kind == kind {
			n++
		}
	}
	return n
}
