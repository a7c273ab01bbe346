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

package views

import (
	"github.com/google/datagrid/core/grid"
	"github.com/google/datagrid/core/query"
	"github.com/google/safehtml"
)

// PageViewModel contains a grid page formatted for template consumption
type PageViewModel struct {
	Title        string
	Description  string
	HomeURL      safehtml.URL
	Grid         grid.ViewModel
	Pager        PagerView
	HoverDelayMs int64 // delay before a row's hover panel opens
}

// PageInfo describes where the rendered rows sit in the full data set.
type PageInfo struct {
	PageIndex int // zero based
	PageCount int
	TotalRows int
}

// PagerView is the pagination footer below the grid
type PagerView struct {
	Show      bool // false when everything fits on one page
	Page      int  // one based, for display
	PageCount int
	TotalRows int
	HasPrev   bool
	HasNext   bool
	PrevURL   safehtml.URL
	NextURL   safehtml.URL

	// Sizes links to the same grid with another page size. Only shown
	// when the data does not fit the smallest size.
	ShowSizes bool
	Sizes     []PageSizeOption
}

// PageSizeOption is one entry of the page size selector
type PageSizeOption struct {
	Size    int
	URL     safehtml.URL
	Current bool
}

// PageSizes are the sizes offered below a grid.
var PageSizes = []int{10, 25, 50, 100}

// NewPager builds the pagination footer for the current query.
func NewPager(info PageInfo, q *query.Query) PagerView {
	p := PagerView{
		Show:      info.PageCount > 1,
		Page:      info.PageIndex + 1,
		PageCount: info.PageCount,
		TotalRows: info.TotalRows,
		HasPrev:   info.PageIndex > 0,
		HasNext:   info.PageIndex+1 < info.PageCount,
	}
	if p.HasPrev {
		p.PrevURL = q.WithPage(info.PageIndex - 1)
	}
	if p.HasNext {
		p.NextURL = q.WithPage(info.PageIndex + 1)
	}

	p.ShowSizes = info.TotalRows > PageSizes[0]
	for _, size := range PageSizes {
		p.Sizes = append(p.Sizes, PageSizeOption{
			Size:    size,
			URL:     q.WithPageSize(size),
			Current: size == q.PageSize,
		})
	}
	return p
}

// LandingViewModel contains the list of available grids
type LandingViewModel struct {
	Title    string
	Subtitle string
	Grids    []GridInfo
}

// GridInfo describes one grid on the landing page
type GridInfo struct {
	Name        string
	Title       string
	Description string
	URL         safehtml.URL
}

// DetailViewModel is the page a data row links to
type DetailViewModel struct {
	Title     string
	GridTitle string
	BackURL   safehtml.URL // grid the row belongs to
	Fields    []DetailField
}

// DetailField is one labelled value of a detail page
type DetailField struct {
	Label string
	Value safehtml.HTML
}
