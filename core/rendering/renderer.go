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
	"embed"
	"io"

	"github.com/google/datagrid/core/grid"
	"github.com/google/datagrid/core/views"
	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
)

//go:embed templates/*
var templateFS embed.FS

// GridRenderer handles rendering of grid view models to HTML
type GridRenderer struct {
	pageTemplate    *template.Template
	landingTemplate *template.Template
	detailTemplate  *template.Template
}

// NewGridRenderer creates a new grid renderer
func NewGridRenderer() (*GridRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	// The page template embeds the grid fragment
	pageTemplate, err := template.New("page.html").ParseFS(trustedFS, "templates/page.html", "templates/grid.html")
	if err != nil {
		return nil, err
	}

	landingTemplate, err := template.New("landing.html").ParseFS(trustedFS, "templates/landing.html")
	if err != nil {
		return nil, err
	}

	detailTemplate, err := template.New("detail.html").ParseFS(trustedFS, "templates/detail.html")
	if err != nil {
		return nil, err
	}

	return &GridRenderer{
		pageTemplate:    pageTemplate,
		landingTemplate: landingTemplate,
		detailTemplate:  detailTemplate,
	}, nil
}

// Render renders a complete grid page to the provided writer
func (r *GridRenderer) Render(w io.Writer, vm views.PageViewModel) error {
	return r.pageTemplate.Execute(w, vm)
}

// RenderGrid renders only the grid fragment
func (r *GridRenderer) RenderGrid(vm grid.ViewModel) (safehtml.HTML, error) {
	return r.pageTemplate.ExecuteTemplateToHTML("grid.html", vm)
}

// RenderLanding renders a LandingViewModel to the provided writer
func (r *GridRenderer) RenderLanding(w io.Writer, vm views.LandingViewModel) error {
	return r.landingTemplate.Execute(w, vm)
}

// RenderDetail renders a DetailViewModel to the provided writer
func (r *GridRenderer) RenderDetail(w io.Writer, vm views.DetailViewModel) error {
	return r.detailTemplate.Execute(w, vm)
}
