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

// Package demo provides the sample orders grid served by the datagrid
// command.
package demo

import (
	"cmp"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/datagrid/core/csvimport"
	"github.com/google/datagrid/core/tablestate"
	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
)

//go:embed data/orders.csv
var ordersCSV string

// Order is one row of the orders dataset
type Order struct {
	ID        string
	Customer  string
	Region    string
	Product   string
	Quantity  int64
	UnitPrice float64
	Status    string
	OrderedAt time.Time
}

// RowID implements tablestate.Record.
func (o Order) RowID() string { return o.ID }

// Total is the order value.
func (o Order) Total() float64 {
	return float64(o.Quantity) * o.UnitPrice
}

func importOptions() csvimport.ImportOptions {
	options := csvimport.DefaultOptions()
	options.Required = []string{"id", "customer", "region", "product", "quantity", "unit_price", "status", "ordered_at"}
	return options
}

// LoadOrders parses the embedded dataset.
func LoadOrders() ([]Order, error) {
	orders, err := csvimport.ImportFromReader(strings.NewReader(ordersCSV), importOptions(), decodeOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to import orders: %w", err)
	}
	return orders, nil
}

// LoadOrdersFile parses a CSV file with the same columns as the embedded
// dataset.
func LoadOrdersFile(path string) ([]Order, error) {
	orders, err := csvimport.ImportFromFile(path, importOptions(), decodeOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to import orders from %s: %w", path, err)
	}
	return orders, nil
}

func decodeOrder(r csvimport.Row) (Order, error) {
	quantity, err := r.Int("quantity")
	if err != nil {
		return Order{}, err
	}
	price, err := r.Float("unit_price")
	if err != nil {
		return Order{}, err
	}
	orderedAt, err := time.Parse(time.DateOnly, r.Get("ordered_at"))
	if err != nil {
		return Order{}, fmt.Errorf("line %d, column %q: %w", r.Line, "ordered_at", err)
	}
	return Order{
		ID:        r.Get("id"),
		Customer:  r.Get("customer"),
		Region:    r.Get("region"),
		Product:   r.Get("product"),
		Quantity:  quantity,
		UnitPrice: price,
		Status:    r.Get("status"),
		OrderedAt: orderedAt,
	}, nil
}

var (
	skeletonTemplate = template.Must(template.New("skeleton").Parse(`<span class="dg-skeleton"></span>`))
	statusTemplate   = template.Must(template.New("status").Parse(`<span class="dg-status dg-status-{{.}}">{{.}}</span>`))
	hoverTemplate    = template.Must(template.New("hover").Parse(
		`<strong>{{.ID}}</strong><dl>` +
			`<dt>Customer</dt><dd>{{.Customer}} ({{.Region}})</dd>` +
			`<dt>Items</dt><dd>{{.Quantity}} x {{.Product}}</dd>` +
			`<dt>Total</dt><dd>{{.Amount}}</dd>` +
			`<dt>Ordered</dt><dd>{{.Date}}</dd>` +
			`</dl>`))
)

func skeleton() safehtml.HTML {
	html, err := skeletonTemplate.ExecuteToHTML(nil)
	if err != nil {
		return safehtml.HTML{}
	}
	return html
}

// money formats an amount as dollars with two decimals and thousands
// separators.
func money(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// StatusBadge renders the status cell.
func StatusBadge(status string) safehtml.HTML {
	html, err := statusTemplate.ExecuteToHTML(status)
	if err != nil {
		return safehtml.HTMLEscaped(status)
	}
	return html
}

// HoverSummary renders the hover panel of an order.
func HoverSummary(o Order) safehtml.HTML {
	html, err := hoverTemplate.ExecuteToHTML(struct {
		Order
		Amount string
		Date   string
	}{o, money(o.Total()), o.OrderedAt.Format("Jan 2, 2006")})
	if err != nil {
		return safehtml.HTMLEscaped(o.ID)
	}
	return html
}

// HoverText is the terminal version of HoverSummary.
func HoverText(o Order) string {
	return strings.Join([]string{
		o.ID,
		o.Customer + " (" + o.Region + ")",
		fmt.Sprintf("%d x %s", o.Quantity, o.Product),
		money(o.Total()),
	}, "\n")
}

// Columns defines the orders grid. Order and Customer are header groups.
func Columns() []tablestate.ColumnDef[Order] {
	bar := skeleton()
	return []tablestate.ColumnDef[Order]{
		{
			ID:     "order",
			Header: "Order",
			Columns: []tablestate.ColumnDef[Order]{
				{
					ID:        "id",
					Header:    "ID",
					Accessor:  func(o Order) any { return o.ID },
					Sortable:  true,
					SortingFn: func(a, b Order) int { return strings.Compare(a.ID, b.ID) },
					Size:      120,
					Meta:      tablestate.ColumnMeta{ClassName: "font-bold", Skeleton: bar, SkeletonText: "········"},
				},
				{
					ID:        "ordered_at",
					Header:    "Date",
					Accessor:  func(o Order) any { return o.OrderedAt },
					Format:    func(v any) string { return v.(time.Time).Format(time.DateOnly) },
					Sortable:  true,
					SortingFn: func(a, b Order) int { return a.OrderedAt.Compare(b.OrderedAt) },
					Size:      120,
					Meta:      tablestate.ColumnMeta{Skeleton: bar, SkeletonText: "··········"},
				},
			},
		},
		{
			ID:     "customer_group",
			Header: "Customer",
			Columns: []tablestate.ColumnDef[Order]{
				{
					ID:        "customer",
					Header:    "Name",
					Accessor:  func(o Order) any { return o.Customer },
					Sortable:  true,
					SortingFn: func(a, b Order) int { return strings.Compare(a.Customer, b.Customer) },
					Size:      200,
					Meta:      tablestate.ColumnMeta{Skeleton: bar, SkeletonText: "··············"},
				},
				{
					ID:        "region",
					Header:    "Region",
					Accessor:  func(o Order) any { return o.Region },
					Sortable:  true,
					SortingFn: func(a, b Order) int { return strings.Compare(a.Region, b.Region) },
					Size:      160,
					Meta:      tablestate.ColumnMeta{Skeleton: bar, SkeletonText: "···········"},
				},
			},
		},
		{
			ID:       "product",
			Header:   "Product",
			Accessor: func(o Order) any { return o.Product },
			Size:     170,
			Meta:     tablestate.ColumnMeta{Skeleton: bar, SkeletonText: "···········"},
		},
		{
			ID:        "quantity",
			Header:    "Qty",
			Accessor:  func(o Order) any { return o.Quantity },
			Sortable:  true,
			SortingFn: func(a, b Order) int { return cmp.Compare(a.Quantity, b.Quantity) },
			Size:      80,
			Meta:      tablestate.ColumnMeta{ClassName: "dg-num", Skeleton: bar, SkeletonText: "···"},
		},
		{
			ID:        "total",
			Header:    "Total",
			Accessor:  func(o Order) any { return o.Total() },
			Format:    func(v any) string { return money(v.(float64)) },
			Sortable:  true,
			SortingFn: func(a, b Order) int { return cmp.Compare(a.Total(), b.Total()) },
			Size:      130,
			Meta:      tablestate.ColumnMeta{ClassName: "dg-num", Skeleton: bar, SkeletonText: "·······"},
		},
		{
			ID:        "status",
			Header:    "Status",
			Accessor:  func(o Order) any { return o.Status },
			Cell:      func(c tablestate.CellContext[Order]) safehtml.HTML { return StatusBadge(c.Text()) },
			Sortable:  true,
			SortingFn: func(a, b Order) int { return strings.Compare(a.Status, b.Status) },
			Size:      130,
			Meta:      tablestate.ColumnMeta{Skeleton: bar, SkeletonText: "·········"},
		},
	}
}
