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

package grid

import (
	"strconv"
	"strings"

	"github.com/google/datagrid/core/tablestate"
	"github.com/google/safehtml"
)

// RowHeight is the rendered height of a body row in pixels.
const RowHeight = 52

// ViewModel contains the grid formatted for template consumption
type ViewModel struct {
	HeaderRows  []HeaderRowView
	Rows        []RowView
	ColumnCount int // colspan of the empty row
	PageSize    int
	Loading     bool
	Hoverable   bool // rows carry hover panels
	TableStyle  safehtml.Style
}

// HeaderRowView is one header group
type HeaderRowView struct {
	Key   string
	Cells []HeaderCellView
}

// HeaderCellView is a single header cell
type HeaderCellView struct {
	Key           string
	ColSpan       int
	Style         safehtml.Style
	ClassName     string
	Content       safehtml.HTML
	IsPlaceholder bool
	Sortable      bool
	SortURL       safehtml.URL // toggles the column sort
	Sort          tablestate.SortDirection
}

// SortedAscending reports whether the up indicator is shown.
func (h HeaderCellView) SortedAscending() bool { return h.Sort == tablestate.SortAscending }

// SortedDescending reports whether the down indicator is shown.
func (h HeaderCellView) SortedDescending() bool { return h.Sort == tablestate.SortDescending }

// AriaSort is the value of the aria-sort attribute.
func (h HeaderCellView) AriaSort() string {
	switch h.Sort {
	case tablestate.SortAscending:
		return "ascending"
	case tablestate.SortDescending:
		return "descending"
	default:
		return "none"
	}
}

// RowView is one body row
type RowView struct {
	Key           string
	Kind          RowKind
	Href          safehtml.URL // data rows only
	Cells         []CellView
	HoverPanel    safehtml.HTML
	HasHoverPanel bool
	ColSpan       int           // empty row only
	Placeholder   safehtml.HTML // empty row only
}

func (r RowView) IsData() bool     { return r.Kind == RowData }
func (r RowView) IsBlank() bool    { return r.Kind == RowBlank }
func (r RowView) IsSkeleton() bool { return r.Kind == RowSkeleton }
func (r RowView) IsEmpty() bool    { return r.Kind == RowEmpty }

// CellView is one body cell
type CellView struct {
	Key       string
	Style     safehtml.Style
	ClassName string
	Content   safehtml.HTML
}

// Build renders the grid into a view model.
func Build[T tablestate.Record](props Props[T]) ViewModel {
	plan := Layout(props)

	vm := ViewModel{
		ColumnCount: plan.ColumnCount,
		PageSize:    props.PageSize,
		Loading:     props.Loading,
		Hoverable:   props.HoverElement != nil,
		// A table's CSS height is a minimum: rows beyond it grow the table
		TableStyle: safehtml.StyleFromProperties(safehtml.StyleProperties{
			Height: px((props.PageSize + 1) * RowHeight),
		}),
	}

	for _, group := range plan.HeaderGroups {
		hr := HeaderRowView{Key: group.ID}
		for _, h := range group.Headers {
			hr.Cells = append(hr.Cells, buildHeaderCell(h))
		}
		vm.HeaderRows = append(vm.HeaderRows, hr)
	}

	for _, br := range plan.Body {
		vm.Rows = append(vm.Rows, buildRow(props, plan, br))
	}
	return vm
}

func buildHeaderCell[T tablestate.Record](h *tablestate.Header[T]) HeaderCellView {
	cell := HeaderCellView{
		Key:           h.ID,
		ColSpan:       h.ColSpan,
		Style:         widthStyle(h.Size()),
		Content:       h.Content(),
		IsPlaceholder: h.IsPlaceholder,
	}
	if h.IsPlaceholder {
		return cell
	}

	var classes []string
	if h.Column.CanSort() {
		cell.Sortable = true
		cell.SortURL = h.Column.ToggleSortingURL()
		classes = append(classes, "dg-sortable")
	}
	if h.Column.Def.Meta.ClassName != "" {
		classes = append(classes, h.Column.Def.Meta.ClassName)
	}
	cell.ClassName = strings.Join(classes, " ")
	cell.Sort = h.Column.IsSorted()
	return cell
}

func buildRow[T tablestate.Record](props Props[T], plan Plan[T], br BodyRow[T]) RowView {
	rv := RowView{Key: br.Key, Kind: br.Kind}

	switch br.Kind {
	case RowData:
		if props.LinkFormatter != nil {
			rv.Href = safehtml.URLSanitized(props.LinkFormatter(br.Row.Original))
		}
		for _, cell := range br.Row.VisibleCells() {
			rv.Cells = append(rv.Cells, CellView{
				Key:       cell.ID,
				Style:     widthStyle(cell.Column.Size()),
				ClassName: cell.Column.Def.Meta.ClassName,
				Content:   cell.Render(),
			})
		}
		if props.HoverElement != nil {
			rv.HoverPanel = props.HoverElement(br.Row.Original)
			rv.HasHoverPanel = true
		}

	case RowBlank:
		for _, col := range plan.Columns {
			rv.Cells = append(rv.Cells, CellView{Key: col.ID, Style: widthStyle(col.Size())})
		}

	case RowSkeleton:
		for _, col := range plan.Columns {
			rv.Cells = append(rv.Cells, CellView{
				Key:     col.ID,
				Style:   widthStyle(col.Size()),
				Content: col.Def.Meta.Skeleton,
			})
		}

	case RowEmpty:
		rv.ColSpan = plan.ColumnCount
		rv.Placeholder = props.Placeholder
	}
	return rv
}

func widthStyle(size int) safehtml.Style {
	return safehtml.StyleFromProperties(safehtml.StyleProperties{Width: px(size)})
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}
