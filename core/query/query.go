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

package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/datagrid/core/tablestate"
	"github.com/google/safehtml"
)

// MaxPageSize bounds the size parameter.
const MaxPageSize = 200

// SortColumn is one entry of the sort parameter
type SortColumn struct {
	Name       string
	Descending bool
}

// Query represents the parsed state of a grid URL
type Query struct {
	// Base path (e.g., "/grid/orders")
	Path string

	Sort     []SortColumn // Sort order, most significant first
	Page     int          // Zero based page index
	PageSize int          // Rows per page
}

// NewQuery creates a Query from a URL.
//
// Format: ?sort=col,-col2&page=N&size=N where a leading '-' sorts
// descending and page is one based.
func NewQuery(u *url.URL, defaultPageSize int) *Query {
	state := &Query{
		Path:     u.Path,
		Sort:     []SortColumn{},
		PageSize: clampPageSize(defaultPageSize),
	}

	q := u.Query()

	if sortStr := q.Get("sort"); sortStr != "" {
		seen := make(map[string]bool)
		for _, part := range strings.Split(sortStr, ",") {
			col := SortColumn{Name: part}
			if strings.HasPrefix(part, "-") {
				col = SortColumn{Name: part[1:], Descending: true}
			}
			if col.Name == "" || seen[col.Name] {
				continue
			}
			seen[col.Name] = true
			state.Sort = append(state.Sort, col)
		}
	}

	if pageStr := q.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page >= 1 {
			state.Page = page - 1
		}
	}

	if sizeStr := q.Get("size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil {
			state.PageSize = clampPageSize(size)
		}
	}

	return state
}

func clampPageSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	clone := &Query{
		Path:     s.Path,
		Sort:     make([]SortColumn, len(s.Sort)),
		Page:     s.Page,
		PageSize: s.PageSize,
	}
	copy(clone.Sort, s.Sort)
	return clone
}

// SortingState converts the sort parameter into table sorting state.
func (s *Query) SortingState() tablestate.SortingState {
	state := make(tablestate.SortingState, 0, len(s.Sort))
	for _, col := range s.Sort {
		state = append(state, tablestate.ColumnSort{ID: col.Name, Desc: col.Descending})
	}
	return state
}

// Pagination converts the page parameters into table pagination state.
func (s *Query) Pagination() tablestate.Pagination {
	return tablestate.Pagination{PageIndex: s.Page, PageSize: s.PageSize}
}

// WithSorting returns a URL with the given sort order. Changing the
// order goes back to the first page.
func (s *Query) WithSorting(sorting tablestate.SortingState) safehtml.URL {
	newState := s.Clone()
	newState.Sort = make([]SortColumn, 0, len(sorting))
	for _, cs := range sorting {
		newState.Sort = append(newState.Sort, SortColumn{Name: cs.ID, Descending: cs.Desc})
	}
	newState.Page = 0
	return newState.ToSafeURL()
}

// WithPage returns a URL pointing at the given zero based page.
func (s *Query) WithPage(page int) safehtml.URL {
	newState := s.Clone()
	if page < 0 {
		page = 0
	}
	newState.Page = page
	return newState.ToSafeURL()
}

// WithPageSize returns a URL with a different page size.
func (s *Query) WithPageSize(size int) safehtml.URL {
	newState := s.Clone()
	newState.PageSize = clampPageSize(size)
	newState.Page = 0
	return newState.ToSafeURL()
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	if len(s.Sort) > 0 {
		parts := make([]string, 0, len(s.Sort))
		for _, col := range s.Sort {
			if col.Descending {
				parts = append(parts, "-"+col.Name)
			} else {
				parts = append(parts, col.Name)
			}
		}
		q.Set("sort", strings.Join(parts, ","))
	}

	if s.Page > 0 {
		q.Set("page", strconv.Itoa(s.Page+1))
	}

	// Page size is always included in URL
	q.Set("size", strconv.Itoa(s.PageSize))

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

