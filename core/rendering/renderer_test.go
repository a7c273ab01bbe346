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

package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/datagrid/core/grid"
	"github.com/google/datagrid/core/tablestate"
	"github.com/google/datagrid/core/views"
	"github.com/google/safehtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planet struct {
	id   string
	name string
}

func (p planet) RowID() string { return p.id }

func planetGrid(t *testing.T, data []planet, loading bool, sorting tablestate.SortingState) grid.ViewModel {
	t.Helper()
	table, err := tablestate.New(tablestate.Options[planet]{
		Data: data,
		Columns: []tablestate.ColumnDef[planet]{
			{
				ID:        "name",
				Header:    "Name",
				Accessor:  func(p planet) any { return p.name },
				Sortable:  true,
				SortingFn: func(a, b planet) int { return strings.Compare(a.name, b.name) },
				Meta:      tablestate.ColumnMeta{Skeleton: safehtml.HTMLEscaped("...")},
			},
			{ID: "id", Header: "ID", Accessor: func(p planet) any { return p.id }},
		},
		State: tablestate.State{Sorting: sorting},
		SortingLink: func(s tablestate.SortingState) safehtml.URL {
			return safehtml.URLSanitized("/grid/planets?sort=name")
		},
	})
	require.NoError(t, err)
	return grid.Build(grid.Props[planet]{
		Table:         table,
		Loading:       loading,
		Placeholder:   safehtml.HTMLEscaped("No planets <yet>"),
		PageSize:      4,
		LinkFormatter: func(p planet) string { return "/grid/planets/rows/" + p.id },
		HoverElement: func(p planet) safehtml.HTML {
			return safehtml.HTMLEscaped("About " + p.name)
		},
	})
}

func newRenderer(t *testing.T) *GridRenderer {
	t.Helper()
	r, err := NewGridRenderer()
	require.NoError(t, err)
	return r
}

func TestRenderGrid(t *testing.T) {
	r := newRenderer(t)
	data := []planet{{"p1", "Mars"}, {"p2", "Venus"}}

	html, err := r.RenderGrid(planetGrid(t, data, false, tablestate.SortingState{{ID: "name"}}))
	require.NoError(t, err)
	out := html.String()

	assert.Equal(t, 2, strings.Count(out, `class="dg-row dg-row-data"`))
	assert.Equal(t, 2, strings.Count(out, `class="dg-row dg-row-blank"`))
	assert.Contains(t, out, `data-row-key="p1"`)
	assert.Contains(t, out, `href="/grid/planets/rows/p1"`)
	assert.Contains(t, out, `aria-sort="ascending"`)
	assert.Contains(t, out, `&#9650;`)
	assert.NotContains(t, out, `&#9660;`)
	assert.Contains(t, out, `About Mars`)
	assert.Contains(t, out, `class="dg-hover-source" hidden`)
	assert.Contains(t, out, `style="height:260px;"`)
	assert.NotContains(t, out, "dg-placeholder")
}

func TestRenderGridDescendingIndicator(t *testing.T) {
	r := newRenderer(t)

	html, err := r.RenderGrid(planetGrid(t, []planet{{"p1", "Mars"}}, false, tablestate.SortingState{{ID: "name", Desc: true}}))
	require.NoError(t, err)

	assert.Contains(t, html.String(), `aria-sort="descending"`)
	assert.Contains(t, html.String(), `&#9660;`)
	assert.NotContains(t, html.String(), `&#9650;`)
}

func TestRenderGridIndicatorOnUnsortableColumn(t *testing.T) {
	r := newRenderer(t)

	// Sort state set by the caller on a column without a sort toggle
	html, err := r.RenderGrid(planetGrid(t, []planet{{"p1", "Mars"}}, false, tablestate.SortingState{{ID: "id"}}))
	require.NoError(t, err)
	out := html.String()

	assert.Contains(t, out, `aria-sort="ascending">ID<span class="dg-sort-indicator">&#9650;</span></th>`)
	assert.Equal(t, 1, strings.Count(out, `class="dg-sort-link"`))
	assert.NotContains(t, out, `&#9660;`)
}

func TestRenderGridLoading(t *testing.T) {
	r := newRenderer(t)

	html, err := r.RenderGrid(planetGrid(t, []planet{{"p1", "Mars"}}, true, nil))
	require.NoError(t, err)
	out := html.String()

	assert.Equal(t, 4, strings.Count(out, `class="dg-row dg-row-skeleton"`))
	assert.NotContains(t, out, "dg-row-data")
	assert.NotContains(t, out, "Mars")
	assert.Contains(t, out, "dg-loading")
}

func TestRenderGridEmpty(t *testing.T) {
	r := newRenderer(t)

	html, err := r.RenderGrid(planetGrid(t, nil, false, nil))
	require.NoError(t, err)
	out := html.String()

	assert.Equal(t, 1, strings.Count(out, `<tr class="dg-row`))
	assert.Contains(t, out, `colspan="2"`)
	assert.Contains(t, out, "No planets &lt;yet&gt;")
}

func TestRenderPage(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer

	err := r.Render(&buf, views.PageViewModel{
		Title:        "Planets",
		Description:  "Inner planets",
		HomeURL:      safehtml.URLSanitized("/"),
		Grid:         planetGrid(t, []planet{{"p1", "Mars"}}, false, nil),
		HoverDelayMs: 500,
		Pager: views.PagerView{
			Show: true, Page: 2, PageCount: 3, TotalRows: 9,
			HasPrev: true, PrevURL: safehtml.URLSanitized("/grid/planets"),
		},
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "<title>Planets</title>")
	assert.Contains(t, out, `class="dg-overlay" hidden`)
	assert.Contains(t, out, `data-hover-delay="500"`)
	assert.Contains(t, out, ".dg-placeholder { height: 260px;")
	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, ">Previous</a>")
	assert.NotContains(t, out, ">Next</a>")
	assert.Contains(t, out, "e.ctrlKey || e.shiftKey || e.metaKey || e.altKey")
	assert.Contains(t, out, `data-row-key="p1"`)
}

func TestRenderPageSizes(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer

	err := r.Render(&buf, views.PageViewModel{
		Title: "Planets",
		Grid:  planetGrid(t, []planet{{"p1", "Mars"}}, false, nil),
		Pager: views.PagerView{
			ShowSizes: true,
			Sizes: []views.PageSizeOption{
				{Size: 10, URL: safehtml.URLSanitized("/grid/planets?size=10"), Current: true},
				{Size: 25, URL: safehtml.URLSanitized("/grid/planets?size=25")},
			},
		},
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "<strong>10</strong>")
	assert.Contains(t, out, `<a href="/grid/planets?size=25">25</a>`)
	assert.NotContains(t, out, "Page 0 of")
}

func TestRenderLandingAndDetail(t *testing.T) {
	r := newRenderer(t)

	var landing bytes.Buffer
	require.NoError(t, r.RenderLanding(&landing, views.LandingViewModel{
		Title: "Datagrid",
		Grids: []views.GridInfo{{Name: "planets", Title: "Planets", URL: safehtml.URLSanitized("/grid/planets")}},
	}))
	assert.Contains(t, landing.String(), `href="/grid/planets"`)
	assert.Contains(t, landing.String(), `data-grid="planets"`)

	var detail bytes.Buffer
	require.NoError(t, r.RenderDetail(&detail, views.DetailViewModel{
		Title:     "Mars",
		GridTitle: "Planets",
		BackURL:   safehtml.URLSanitized("/grid/planets"),
		Fields:    []views.DetailField{{Label: "Moons", Value: safehtml.HTMLEscaped("2")}},
	}))
	assert.Contains(t, detail.String(), "Back to Planets")
	assert.Contains(t, detail.String(), "<dt>Moons</dt><dd>2</dd>")
}
