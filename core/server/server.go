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

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/datagrid/core/grid"
	"github.com/google/datagrid/core/logger"
	"github.com/google/datagrid/core/query"
	"github.com/google/datagrid/core/rendering"
	"github.com/google/datagrid/core/views"
	"github.com/google/safehtml"
)

var (
	// ErrRowNotFound is returned by GridSource.Detail for unknown row IDs.
	ErrRowNotFound = errors.New("row not found")
	// ErrDuplicateGrid is returned when two sources share a name.
	ErrDuplicateGrid = errors.New("duplicate grid name")
)

// GridSource provides one grid to the server.
// Sources own their data; the server only parses the URL and renders.
type GridSource interface {
	Name() string
	Title() string
	Description() string
	Grid(q *query.Query) (grid.ViewModel, views.PageInfo, error)
	Detail(id string) (views.DetailViewModel, error)
}

// Options configures the server.
type Options struct {
	Title      string
	Subtitle   string
	PageSize   int           // default page size when the URL has none
	HoverDelay time.Duration // passed to the page script
}

// Server represents the application server with all its dependencies
type Server struct {
	opts     Options
	renderer *rendering.GridRenderer
	sources  map[string]GridSource
	order    []string // registration order, for the landing page
}

// NewServer creates a new server
func NewServer(opts Options) (*Server, error) {
	renderer, err := rendering.NewGridRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.HoverDelay <= 0 {
		opts.HoverDelay = grid.DefaultHoverDelay
	}

	return &Server{
		opts:     opts,
		renderer: renderer,
		sources:  make(map[string]GridSource),
	}, nil
}

// Register adds a grid source.
func (s *Server) Register(src GridSource) error {
	name := src.Name()
	if _, exists := s.sources[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateGrid, name)
	}
	s.sources[name] = src
	s.order = append(s.order, name)
	return nil
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleLanding)
	mux.HandleFunc("GET /grid/{name}", s.handleGrid)
	mux.HandleFunc("GET /grid/{name}/rows/{id}", s.handleDetail)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})
	return logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infow("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Log.Infow("shutting down", "addr", addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	vm := views.LandingViewModel{
		Title:    s.opts.Title,
		Subtitle: s.opts.Subtitle,
	}
	for _, name := range s.order {
		src := s.sources[name]
		vm.Grids = append(vm.Grids, views.GridInfo{
			Name:        name,
			Title:       src.Title(),
			Description: src.Description(),
			URL:         gridURL(name),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderLanding(w, vm); err != nil {
		logger.Log.Errorw("landing page rendering error", "error", err)
	}
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	src, ok := s.sources[r.PathValue("name")]
	if !ok {
		http.Error(w, fmt.Sprintf("Grid '%s' not found", r.PathValue("name")), http.StatusNotFound)
		return
	}

	q := query.NewQuery(r.URL, s.opts.PageSize)
	vm, info, err := src.Grid(q)
	if err != nil {
		logger.Log.Errorw("grid failed", "grid", src.Name(), "error", err)
		http.Error(w, "Failed to load grid", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// Fragment requests get the grid only, for in-place refreshes
	if r.URL.Query().Get("fragment") == "1" {
		html, err := s.renderer.RenderGrid(vm)
		if err != nil {
			logger.Log.Errorw("grid rendering error", "grid", src.Name(), "error", err)
			http.Error(w, "Failed to render grid", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, html.String())
		return
	}

	page := views.PageViewModel{
		Title:        src.Title(),
		Description:  src.Description(),
		HomeURL:      safehtml.URLSanitized("/"),
		Grid:         vm,
		Pager:        views.NewPager(info, q),
		HoverDelayMs: s.opts.HoverDelay.Milliseconds(),
	}
	if err := s.renderer.Render(w, page); err != nil {
		logger.Log.Errorw("template rendering error", "grid", src.Name(), "error", err)
	}
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	src, ok := s.sources[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Grid '%s' not found", name), http.StatusNotFound)
		return
	}

	id := r.PathValue("id")
	vm, err := src.Detail(id)
	if errors.Is(err, ErrRowNotFound) {
		http.Error(w, fmt.Sprintf("Row '%s' not found", id), http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log.Errorw("detail failed", "grid", name, "row", id, "error", err)
		http.Error(w, "Failed to load row", http.StatusInternalServerError)
		return
	}

	if vm.GridTitle == "" {
		vm.GridTitle = src.Title()
	}
	if vm.BackURL.String() == "" {
		vm.BackURL = gridURL(name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderDetail(w, vm); err != nil {
		logger.Log.Errorw("detail rendering error", "grid", name, "row", id, "error", err)
	}
}

// GridPath is the path of a grid page.
func GridPath(name string) string {
	return "/grid/" + name
}

// RowPath is the path of a row detail page. The row ID is escaped so IDs
// containing '/', '?' or '#' stay one path segment.
func RowPath(name, id string) string {
	return GridPath(name) + "/rows/" + url.PathEscape(id)
}

func gridURL(name string) safehtml.URL {
	return safehtml.URLSanitized(GridPath(name))
}
