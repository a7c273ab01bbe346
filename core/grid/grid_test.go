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
	"cmp"
	"fmt"
	"testing"

	"github.com/google/datagrid/core/tablestate"
	"github.com/google/safehtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticket struct {
	id       string
	title    string
	priority int
}

func (t ticket) RowID() string { return t.id }

func tickets(n int) []ticket {
	out := make([]ticket, n)
	for i := range out {
		out[i] = ticket{id: fmt.Sprintf("t%d", i+1), title: fmt.Sprintf("Ticket %d", i+1), priority: n - i}
	}
	return out
}

var skeletonBar = safehtml.HTMLEscaped("loading")

func ticketColumns() []tablestate.ColumnDef[ticket] {
	return []tablestate.ColumnDef[ticket]{
		{
			ID:        "title",
			Header:    "Title",
			Accessor:  func(t ticket) any { return t.title },
			Sortable:  true,
			SortingFn: func(a, b ticket) int { return cmp.Compare(a.title, b.title) },
			Meta:      tablestate.ColumnMeta{ClassName: "font-bold", Skeleton: skeletonBar},
			Size:      220,
		},
		{
			ID:        "priority",
			Header:    "Priority",
			Accessor:  func(t ticket) any { return t.priority },
			Sortable:  true,
			SortingFn: func(a, b ticket) int { return cmp.Compare(a.priority, b.priority) },
			Meta:      tablestate.ColumnMeta{Skeleton: skeletonBar},
		},
		{
			ID:       "note",
			Header:   "Note",
			Accessor: func(t ticket) any { return "-" },
		},
	}
}

func newProps(t *testing.T, rows int, pageSize int, loading bool) Props[ticket] {
	t.Helper()
	table, err := tablestate.New(tablestate.Options[ticket]{
		Data:    tickets(rows),
		Columns: ticketColumns(),
		SortingLink: func(s tablestate.SortingState) safehtml.URL {
			if len(s) == 0 {
				return safehtml.URLSanitized("/tickets")
			}
			dir := ""
			if s[0].Desc {
				dir = "-"
			}
			return safehtml.URLSanitized("/tickets?sort=" + dir + s[0].ID)
		},
	})
	require.NoError(t, err)
	return Props[ticket]{
		Table:         table,
		Loading:       loading,
		Placeholder:   safehtml.HTMLEscaped("No tickets"),
		PageSize:      pageSize,
		LinkFormatter: func(tk ticket) string { return "/tickets/" + tk.id },
	}
}

func TestLayoutPadsShortPages(t *testing.T) {
	tests := []struct {
		rows, pageSize int
		wantData       int
		wantBlank      int
	}{
		{rows: 1, pageSize: 5, wantData: 1, wantBlank: 4},
		{rows: 4, pageSize: 5, wantData: 4, wantBlank: 1},
		{rows: 5, pageSize: 5, wantData: 5, wantBlank: 0},
		{rows: 7, pageSize: 5, wantData: 7, wantBlank: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d rows page %d", tt.rows, tt.pageSize), func(t *testing.T) {
			plan := Layout(newProps(t, tt.rows, tt.pageSize, false))

			assert.Equal(t, tt.wantData, plan.Count(RowData))
			assert.Equal(t, tt.wantBlank, plan.Count(RowBlank))
			assert.Zero(t, plan.Count(RowSkeleton))
			assert.Zero(t, plan.Count(RowEmpty))
			if tt.rows <= tt.pageSize {
				assert.Len(t, plan.Body, tt.pageSize)
			}
			for i, r := range plan.Body[:tt.wantData] {
				assert.Equal(t, RowData, r.Kind, "data rows come first (row %d)", i)
			}
		})
	}
}

func TestLayoutLoadingRendersSkeletonOnly(t *testing.T) {
	for _, rows := range []int{0, 2, 5, 9} {
		t.Run(fmt.Sprintf("%d rows", rows), func(t *testing.T) {
			plan := Layout(newProps(t, rows, 5, true))
			require.Len(t, plan.Body, 5)
			assert.Equal(t, 5, plan.Count(RowSkeleton))

			vm := Build(newProps(t, rows, 5, true))
			for _, r := range vm.Rows {
				assert.True(t, r.IsSkeleton())
				require.Len(t, r.Cells, 3)
				assert.Equal(t, skeletonBar, r.Cells[0].Content)
				assert.Equal(t, safehtml.HTML{}, r.Cells[2].Content, "column without skeleton stays empty")
				assert.Equal(t, safehtml.URL{}, r.Href)
			}
		})
	}
}

func TestLayoutEmpty(t *testing.T) {
	vm := Build(newProps(t, 0, 5, false))

	require.Len(t, vm.Rows, 1)
	row := vm.Rows[0]
	assert.True(t, row.IsEmpty())
	assert.Equal(t, 3, row.ColSpan)
	assert.Equal(t, "No tickets", row.Placeholder.String())
	assert.Empty(t, row.Cells)
}

func TestLayoutEmptyRespectsHiddenColumns(t *testing.T) {
	props := newProps(t, 0, 5, false)
	props.Table.SetColumnVisibility("note", false)

	plan := Layout(props)
	assert.Equal(t, 2, plan.ColumnCount)
}

func TestBuildDataRows(t *testing.T) {
	props := newProps(t, 2, 4, false)
	vm := Build(props)

	require.Len(t, vm.Rows, 4)
	first := vm.Rows[0]
	assert.True(t, first.IsData())
	assert.Equal(t, "t1", first.Key)
	assert.Equal(t, "/tickets/t1", first.Href.String())
	require.Len(t, first.Cells, 3)
	assert.Equal(t, "Ticket 1", first.Cells[0].Content.String())
	assert.Equal(t, "font-bold", first.Cells[0].ClassName)
	assert.Equal(t, "width:220px;", first.Cells[0].Style.String())
	assert.Equal(t, "width:150px;", first.Cells[1].Style.String())
	assert.False(t, first.HasHoverPanel)

	blank := vm.Rows[3]
	assert.True(t, blank.IsBlank())
	require.Len(t, blank.Cells, 3)
	for _, c := range blank.Cells {
		assert.Equal(t, safehtml.HTML{}, c.Content)
	}

	assert.Equal(t, "height:260px;", vm.TableStyle.String())
}

func TestBuildHoverPanels(t *testing.T) {
	props := newProps(t, 2, 3, false)
	props.HoverElement = func(tk ticket) safehtml.HTML {
		return safehtml.HTMLEscaped("Summary of " + tk.title)
	}
	vm := Build(props)

	assert.True(t, vm.Hoverable)
	assert.True(t, vm.Rows[0].HasHoverPanel)
	assert.Equal(t, "Summary of Ticket 1", vm.Rows[0].HoverPanel.String())
	assert.False(t, vm.Rows[2].HasHoverPanel, "blank rows have no panel")
}

func TestSortIndicators(t *testing.T) {
	tests := []struct {
		name     string
		sorting  tablestate.SortingState
		wantAsc  bool
		wantDesc bool
		wantAria string
		wantURL  string
	}{
		{"unsorted", nil, false, false, "none", "/tickets?sort=title"},
		{"ascending", tablestate.SortingState{{ID: "title"}}, true, false, "ascending", "/tickets?sort=-title"},
		{"descending", tablestate.SortingState{{ID: "title", Desc: true}}, false, true, "descending", "/tickets"},
		{"other column", tablestate.SortingState{{ID: "priority"}}, false, false, "none", "/tickets?sort=title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := newProps(t, 3, 5, false)
			props.Table.SetSorting(tt.sorting)
			vm := Build(props)

			require.Len(t, vm.HeaderRows, 1)
			title := vm.HeaderRows[0].Cells[0]
			assert.Equal(t, tt.wantAsc, title.SortedAscending())
			assert.Equal(t, tt.wantDesc, title.SortedDescending())
			assert.Equal(t, tt.wantAria, title.AriaSort())
			assert.Equal(t, tt.wantURL, title.SortURL.String())
			assert.True(t, title.Sortable)
			assert.Equal(t, "dg-sortable font-bold", title.ClassName)
		})
	}

	t.Run("unsortable column", func(t *testing.T) {
		vm := Build(newProps(t, 3, 5, false))
		note := vm.HeaderRows[0].Cells[2]
		assert.False(t, note.Sortable)
		assert.False(t, note.SortedAscending())
		assert.False(t, note.SortedDescending())
		assert.Equal(t, safehtml.URL{}, note.SortURL)
	})
}

func TestSortedRowsFollowTableState(t *testing.T) {
	props := newProps(t, 3, 3, false)
	props.Table.Column("priority").ToggleSorting(false)

	plan := Layout(props)
	var ids []string
	for _, r := range plan.Body {
		ids = append(ids, r.Key)
	}
	assert.Equal(t, []string{"t3", "t2", "t1"}, ids)
}

func TestOverlay(t *testing.T) {
	tests := []struct {
		name string
		mods Modifiers
		want bool
	}{
		{"plain click", Modifiers{}, true},
		{"ctrl", Modifiers{Ctrl: true}, false},
		{"shift", Modifiers{Shift: true}, false},
		{"meta", Modifiers{Meta: true}, false},
		{"alt", Modifiers{Alt: true}, false},
		{"ctrl and shift", Modifiers{Ctrl: true, Shift: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Overlay
			assert.Equal(t, tt.want, o.HandleRowClick(tt.mods))
			assert.Equal(t, tt.want, o.Visible())
		})
	}

	t.Run("modifier click keeps an open overlay", func(t *testing.T) {
		var o Overlay
		o.HandleRowClick(Modifiers{})
		assert.True(t, o.HandleRowClick(Modifiers{Meta: true}))
		o.Reset()
		assert.False(t, o.Visible())
	})
}

func TestHoverPanel(t *testing.T) {
	t.Run("reveal after delay", func(t *testing.T) {
		var h HoverPanel[string]
		token := h.Enter("t1")
		assert.False(t, h.Visible())

		assert.True(t, h.Reveal(token, func() string { return "panel t1" }))
		assert.True(t, h.Visible())
		assert.Equal(t, "panel t1", h.Content())
		assert.Equal(t, "t1", h.Key())
	})

	t.Run("leave destroys the panel", func(t *testing.T) {
		var h HoverPanel[string]
		h.Reveal(h.Enter("t1"), func() string { return "panel t1" })

		h.Leave()
		assert.False(t, h.Visible())
		assert.Empty(t, h.Content())
		assert.Empty(t, h.Key())
	})

	t.Run("stale reveal is ignored", func(t *testing.T) {
		var h HoverPanel[string]
		stale := h.Enter("t1")
		h.Leave()
		rendered := false
		assert.False(t, h.Reveal(stale, func() string { rendered = true; return "x" }))
		assert.False(t, rendered, "panel must not render after the hover ended")

		old := h.Enter("t1")
		current := h.Enter("t2")
		assert.False(t, h.Reveal(old, func() string { return "t1" }))
		assert.True(t, h.Reveal(current, func() string { return "t2" }))
		assert.Equal(t, "t2", h.Content())
	})

	t.Run("moving to another row drops the old panel", func(t *testing.T) {
		var h HoverPanel[string]
		h.Reveal(h.Enter("t1"), func() string { return "t1" })
		h.Enter("t2")
		assert.False(t, h.Visible())
		assert.Empty(t, h.Content())
	})
}
