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

package demo

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/datagrid/core/grid"
	"github.com/google/datagrid/core/query"
	"github.com/google/datagrid/core/server"
	"github.com/google/datagrid/core/tablestate"
	"github.com/google/datagrid/core/tui"
	"github.com/google/datagrid/core/views"
	"github.com/google/safehtml"
)

// GridName is the URL name of the orders grid.
const GridName = "orders"

// SourceOptions configures an OrdersSource.
type SourceOptions struct {
	// File replaces the embedded dataset when set.
	File string
	// Warmup is how long the source reports loading after creation.
	Warmup      time.Duration
	Placeholder string
	HoverDelay  time.Duration
}

// OrdersSource serves the orders dataset to both frontends.
type OrdersSource struct {
	orders      []Order
	byID        map[string]Order
	placeholder string
	hoverDelay  time.Duration
	readyAt     time.Time
	now         func() time.Time
}

var _ server.GridSource = (*OrdersSource)(nil)

// NewOrdersSource loads the orders from opts.File, or the embedded
// dataset.
func NewOrdersSource(opts SourceOptions) (*OrdersSource, error) {
	var orders []Order
	var err error
	if opts.File != "" {
		orders, err = LoadOrdersFile(opts.File)
	} else {
		orders, err = LoadOrders()
	}
	if err != nil {
		return nil, err
	}
	return newOrdersSource(orders, opts, time.Now), nil
}

func newOrdersSource(orders []Order, opts SourceOptions, now func() time.Time) *OrdersSource {
	s := &OrdersSource{
		orders:      orders,
		byID:        make(map[string]Order, len(orders)),
		placeholder: opts.Placeholder,
		hoverDelay:  opts.HoverDelay,
		readyAt:     now().Add(opts.Warmup),
		now:         now,
	}
	if s.placeholder == "" {
		s.placeholder = "No orders."
	}
	for _, o := range orders {
		s.byID[o.ID] = o
	}
	return s
}

func (s *OrdersSource) Name() string        { return GridName }
func (s *OrdersSource) Title() string       { return "Orders" }
func (s *OrdersSource) Description() string { return "Customer orders with totals and shipping status" }

// Loading reports whether the warm-up period is still running.
func (s *OrdersSource) Loading() bool {
	return s.now().Before(s.readyAt)
}

func (s *OrdersSource) newTable(state tablestate.State, link func(tablestate.SortingState) safehtml.URL) (*tablestate.Table[Order], error) {
	table, err := tablestate.New(tablestate.Options[Order]{
		Data:        s.orders,
		Columns:     Columns(),
		State:       state,
		SortingLink: link,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create orders table: %w", err)
	}
	return table, nil
}

// Grid implements server.GridSource.
func (s *OrdersSource) Grid(q *query.Query) (grid.ViewModel, views.PageInfo, error) {
	table, err := s.newTable(tablestate.State{
		Sorting:    q.SortingState(),
		Pagination: q.Pagination(),
	}, q.WithSorting)
	if err != nil {
		return grid.ViewModel{}, views.PageInfo{}, err
	}
	// Out of range pages show the last page
	if table.PageIndex() >= table.PageCount() {
		table.SetPageIndex(table.PageCount() - 1)
	}

	vm := grid.Build(grid.Props[Order]{
		Table:         table,
		HoverElement:  HoverSummary,
		Loading:       s.Loading(),
		Placeholder:   safehtml.HTMLEscaped(s.placeholder),
		PageSize:      q.PageSize,
		LinkFormatter: rowLink,
	})
	info := views.PageInfo{
		PageIndex: table.PageIndex(),
		PageCount: table.PageCount(),
		TotalRows: table.TotalRows(),
	}
	return vm, info, nil
}

// Detail implements server.GridSource.
func (s *OrdersSource) Detail(id string) (views.DetailViewModel, error) {
	o, ok := s.byID[id]
	if !ok {
		return views.DetailViewModel{}, fmt.Errorf("order %q: %w", id, server.ErrRowNotFound)
	}
	vm := views.DetailViewModel{Title: "Order " + o.ID}
	for _, f := range detailFields(o) {
		value := safehtml.HTMLEscaped(f.Value)
		if f.Label == "Status" {
			value = StatusBadge(o.Status)
		}
		vm.Fields = append(vm.Fields, views.DetailField{Label: f.Label, Value: value})
	}
	return vm, nil
}

func detailFields(o Order) []tui.Field {
	return []tui.Field{
		{Label: "Order", Value: o.ID},
		{Label: "Date", Value: o.OrderedAt.Format("Monday, January 2, 2006")},
		{Label: "Customer", Value: o.Customer},
		{Label: "Region", Value: o.Region},
		{Label: "Product", Value: o.Product},
		{Label: "Quantity", Value: humanize.Comma(o.Quantity)},
		{Label: "Unit price", Value: money(o.UnitPrice)},
		{Label: "Total", Value: money(o.Total())},
		{Label: "Status", Value: o.Status},
	}
}

func rowLink(o Order) string {
	return server.RowPath(GridName, o.ID)
}

// TUIConfig builds the terminal grid. The table sorts and paginates the
// whole dataset itself.
func (s *OrdersSource) TUIConfig(pageSize int) (tui.Config[Order], error) {
	table, err := s.newTable(tablestate.State{
		Pagination: tablestate.Pagination{PageSize: pageSize},
	}, nil)
	if err != nil {
		return tui.Config[Order]{}, err
	}

	return tui.Config[Order]{
		Title: s.Title(),
		Props: grid.Props[Order]{
			Table:         table,
			Loading:       s.Loading(),
			PageSize:      pageSize,
			LinkFormatter: rowLink,
		},
		Placeholder: s.placeholder,
		HoverText:   HoverText,
		Detail: func(o Order) (tui.Detail, error) {
			return tui.Detail{Title: "Order " + o.ID, Fields: detailFields(o)}, nil
		},
		Loading:    s.Loading,
		HoverDelay: s.hoverDelay,
	}, nil
}
