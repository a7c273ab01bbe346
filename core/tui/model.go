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

// Package tui is the terminal frontend of the data grid. It renders the
// same layout as the HTML grid and drives row clicks, hover panels and
// the loading overlay from terminal mouse events.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/datagrid/core/grid"
	"github.com/google/datagrid/core/tablestate"
)

const (
	minColWidth    = 4
	loadingPoll    = 200 * time.Millisecond
	skeletonFiller = "░░░░░░"
)

// Detail is what a row opens to.
type Detail struct {
	Title  string
	Fields []Field
}

// Field is one labelled value of a Detail.
type Field struct {
	Label string
	Value string
}

// Config configures a terminal grid.
type Config[T tablestate.Record] struct {
	Title string
	Props grid.Props[T]

	// Placeholder is shown when there are no rows.
	Placeholder string

	// HoverText renders the hover panel of a row. Nil disables hovering.
	HoverText func(T) string

	// Detail loads the page a row links to. When nil, opening a row ends
	// the program and Run returns the row link.
	Detail func(T) (Detail, error)

	// Loading is polled while Props.Loading is set.
	Loading func() bool

	HoverDelay time.Duration
}

type hoverMsg struct{ token uint64 }

type loadTickMsg struct{}

type detailMsg struct {
	detail Detail
	err    error
}

// ═══════════════════════════════════════════════════════════════════════════
// Key Bindings
// ═══════════════════════════════════════════════════════════════════════════

type gridKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Sort      key.Binding
	MultiSort key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Open      key.Binding
	CopyLink  key.Binding
	Back      key.Binding
	Quit      key.Binding
}

var gridKeys = gridKeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev column")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next column")),
	Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	MultiSort: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "add sort")),
	NextPage:  key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
	PrevPage:  key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev page")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	CopyLink:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "show link")),
	Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

// Model is the bubbletea model of a terminal grid.
type Model[T tablestate.Record] struct {
	cfg Config[T]

	cursor    int // selected data row
	colCursor int // selected visible leaf column
	width     int
	height    int

	overlay grid.Overlay
	hover   grid.HoverPanel[string]
	spinner spinner.Model

	opened   *Detail
	selected string // link of the row that ended the program
	status   string
	err      error
}

// New creates a terminal grid.
func New[T tablestate.Record](cfg Config[T]) Model[T] {
	if cfg.HoverDelay <= 0 {
		cfg.HoverDelay = grid.DefaultHoverDelay
	}
	return Model[T]{
		cfg: cfg,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(spinnerStyle),
		),
	}
}

// Run launches the interactive grid. It blocks until the user quits and
// returns the link of the row that was opened, if any.
func Run[T tablestate.Record](cfg Config[T]) (string, error) {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	if fm, ok := finalModel.(Model[T]); ok {
		return fm.selected, nil
	}
	return "", nil
}

func (m Model[T]) Init() tea.Cmd {
	if m.cfg.Props.Loading {
		return tea.Batch(m.spinner.Tick, pollLoading())
	}
	return nil
}

func pollLoading() tea.Cmd {
	return tea.Tick(loadingPoll, func(time.Time) tea.Msg { return loadTickMsg{} })
}

func hoverAfter(d time.Duration, token uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return hoverMsg{token: token} })
}

func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if m.cfg.Props.Loading || m.overlay.Visible() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case loadTickMsg:
		if m.cfg.Loading != nil && m.cfg.Loading() {
			return m, pollLoading()
		}
		m.cfg.Props.Loading = false

	case hoverMsg:
		row := m.dataRow(m.hover.Key())
		if row != nil && m.cfg.HoverText != nil {
			m.hover.Reveal(msg.token, func() string { return m.cfg.HoverText(row.Original) })
		}

	case detailMsg:
		// Navigation finished
		m.overlay.Reset()
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		d := msg.detail
		m.opened = &d

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model[T]) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, gridKeys.Quit) {
		return m, tea.Quit
	}
	if m.overlay.Visible() {
		return m, nil
	}
	if m.opened != nil {
		if key.Matches(msg, gridKeys.Back) {
			m.opened = nil
		}
		return m, nil
	}

	m.status = ""
	m.err = nil
	plan := grid.Layout(m.cfg.Props)
	rows := dataRows(plan)
	t := m.cfg.Props.Table

	switch {
	case key.Matches(msg, gridKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, gridKeys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, gridKeys.Left):
		if m.colCursor > 0 {
			m.colCursor--
		}

	case key.Matches(msg, gridKeys.Right):
		if m.colCursor < len(plan.Columns)-1 {
			m.colCursor++
		}

	case key.Matches(msg, gridKeys.Sort, gridKeys.MultiSort):
		if m.colCursor < len(plan.Columns) && !m.cfg.Props.Loading {
			col := plan.Columns[m.colCursor]
			if col.CanSort() {
				col.ToggleSorting(key.Matches(msg, gridKeys.MultiSort))
				m.cursor = 0
				m.hover.Leave()
			}
		}

	case key.Matches(msg, gridKeys.NextPage):
		if t.CanNextPage() {
			t.SetPageIndex(t.PageIndex() + 1)
			m.cursor = 0
			m.hover.Leave()
		}

	case key.Matches(msg, gridKeys.PrevPage):
		if t.CanPreviousPage() {
			t.SetPageIndex(t.PageIndex() - 1)
			m.cursor = 0
			m.hover.Leave()
		}

	case key.Matches(msg, gridKeys.Open):
		if m.cursor < len(rows) {
			return m.openRow(rows[m.cursor].Row.Original, grid.Modifiers{})
		}

	case key.Matches(msg, gridKeys.CopyLink):
		if m.cursor < len(rows) {
			return m.openRow(rows[m.cursor].Row.Original, grid.Modifiers{Alt: true})
		}
	}

	return m, nil
}

func (m Model[T]) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.opened != nil || m.overlay.Visible() {
		return m, nil
	}

	plan := grid.Layout(m.cfg.Props)
	var br *grid.BodyRow[T]
	if idx := msg.Y - bodyTop(plan); idx >= 0 && idx < len(plan.Body) && plan.Body[idx].Kind == grid.RowData {
		br = &plan.Body[idx]
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.cfg.HoverText == nil {
			return m, nil
		}
		if br == nil {
			if m.hover.Key() != "" {
				m.hover.Leave()
			}
			return m, nil
		}
		if br.Key == m.hover.Key() {
			return m, nil
		}
		token := m.hover.Enter(br.Key)
		return m, hoverAfter(m.cfg.HoverDelay, token)

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || br == nil {
			return m, nil
		}
		for i, r := range dataRows(plan) {
			if r.Key == br.Key {
				m.cursor = i
			}
		}
		return m.openRow(br.Row.Original, grid.Modifiers{Ctrl: msg.Ctrl, Shift: msg.Shift, Alt: msg.Alt})
	}

	return m, nil
}

// openRow follows a row link. Clicks with modifiers only report the link.
func (m Model[T]) openRow(row T, mods grid.Modifiers) (tea.Model, tea.Cmd) {
	link := ""
	if m.cfg.Props.LinkFormatter != nil {
		link = m.cfg.Props.LinkFormatter(row)
	}

	if !m.overlay.HandleRowClick(mods) {
		m.status = "link " + link
		return m, nil
	}

	m.hover.Leave()
	if m.cfg.Detail == nil {
		m.selected = link
		return m, tea.Quit
	}

	load := m.cfg.Detail
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		d, err := load(row)
		return detailMsg{detail: d, err: err}
	})
}

// Selected returns the link of the row that ended the program.
func (m Model[T]) Selected() string {
	return m.selected
}

func (m Model[T]) dataRow(key string) *tablestate.Row[T] {
	if key == "" {
		return nil
	}
	for _, r := range dataRows(grid.Layout(m.cfg.Props)) {
		if r.Key == key {
			return r.Row
		}
	}
	return nil
}

func dataRows[T tablestate.Record](plan grid.Plan[T]) []grid.BodyRow[T] {
	var rows []grid.BodyRow[T]
	for _, r := range plan.Body {
		if r.Kind == grid.RowData {
			rows = append(rows, r)
		}
	}
	return rows
}

// bodyTop is the screen line of the first body row: the title, one line
// per header group and the separator come first.
func bodyTop[T tablestate.Record](plan grid.Plan[T]) int {
	return 1 + len(plan.HeaderGroups) + 1
}

// ═══════════════════════════════════════════════════════════════════════════
// View
// ═══════════════════════════════════════════════════════════════════════════

func (m Model[T]) View() string {
	if m.overlay.Visible() {
		return m.overlayView()
	}
	if m.opened != nil {
		return m.detailView()
	}

	plan := grid.Layout(m.cfg.Props)
	lines := m.gridLines(plan)

	if m.hover.Visible() {
		for i, br := range plan.Body {
			if br.Key == m.hover.Key() {
				lines = placePanel(lines, bodyTop(plan)+i, hoverStyle.Render(m.hover.Content()))
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model[T]) overlayView() string {
	content := m.spinner.View() + " Loading..."
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model[T]) detailView() string {
	var b strings.Builder
	b.WriteString(render(titleStyle, m.opened.Title))
	b.WriteString("\n\n")
	for _, f := range m.opened.Fields {
		b.WriteString(render(detailLabelStyle, f.Label))
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpLine(gridKeys.Back, gridKeys.Quit))
	return b.String()
}

func (m Model[T]) gridLines(plan grid.Plan[T]) []string {
	t := m.cfg.Props.Table
	var lines []string

	title := render(titleStyle, m.cfg.Title)
	if m.cfg.Props.Loading {
		title += " " + m.spinner.View()
	}
	lines = append(lines, title)

	for gi, group := range plan.HeaderGroups {
		last := gi == len(plan.HeaderGroups)-1
		cells := make([]string, 0, len(group.Headers))
		for _, h := range group.Headers {
			text := ""
			if !h.IsPlaceholder {
				text = h.Column.Def.Header + sortIndicator(h.Column.IsSorted())
			}
			style := headerStyle
			if last && m.colCursor < len(plan.Columns) && plan.Columns[m.colCursor].ID == h.Column.ID {
				style = selectedHeaderStyle
			}
			cells = append(cells, render(style, fit(text, spanWidth(h.Column))))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	total := totalWidth(plan)
	lines = append(lines, render(separatorStyle, strings.Repeat("─", total)))

	dataIdx := 0
	for _, br := range plan.Body {
		switch br.Kind {
		case grid.RowData:
			cells := br.Row.VisibleCells()
			parts := make([]string, len(cells))
			for i, c := range cells {
				parts[i] = fit(c.Text(), colWidth(c.Column))
			}
			line := strings.Join(parts, " ")
			if dataIdx == m.cursor {
				line = render(selectedRowStyle, line)
			}
			lines = append(lines, line)
			dataIdx++

		case grid.RowSkeleton:
			parts := make([]string, len(plan.Columns))
			for i, col := range plan.Columns {
				text := col.Def.Meta.SkeletonText
				if text == "" {
					text = skeletonFiller
				}
				parts[i] = fit(text, colWidth(col))
			}
			lines = append(lines, render(skeletonStyle, strings.Join(parts, " ")))

		case grid.RowBlank:
			lines = append(lines, strings.Repeat(" ", total))

		case grid.RowEmpty:
			lines = append(lines, render(placeholderStyle, lipgloss.PlaceHorizontal(total, lipgloss.Center, m.cfg.Placeholder)))
		}
	}

	lines = append(lines, render(separatorStyle, strings.Repeat("─", total)))
	lines = append(lines, render(footerStyle, fmt.Sprintf("Page %d of %d · %d rows%s",
		t.PageIndex()+1, t.PageCount(), t.TotalRows(), sortSummary(t.Sorting()))))
	lines = append(lines, helpLine(gridKeys.Up, gridKeys.Down, gridKeys.Left, gridKeys.Right,
		gridKeys.Sort, gridKeys.MultiSort, gridKeys.NextPage, gridKeys.PrevPage, gridKeys.Open, gridKeys.Quit))

	switch {
	case m.err != nil:
		lines = append(lines, render(errorStyle, "Error: "+m.err.Error()))
	case m.status != "":
		lines = append(lines, render(statusStyle, m.status))
	}
	return lines
}

// placePanel draws panel over the lines just above row, or below it when
// there is no room on top.
func placePanel(lines []string, row int, panel string) []string {
	panelLines := strings.Split(panel, "\n")
	start := row - len(panelLines)
	if start < 0 {
		start = row + 1
	}
	for i, pl := range panelLines {
		if start+i < len(lines) {
			lines[start+i] = "  " + pl
		} else {
			lines = append(lines, "  "+pl)
		}
	}
	return lines
}

func sortIndicator(d tablestate.SortDirection) string {
	switch d {
	case tablestate.SortAscending:
		return " ▲"
	case tablestate.SortDescending:
		return " ▼"
	default:
		return ""
	}
}

func sortSummary(s tablestate.SortingState) string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, len(s))
	for i, cs := range s {
		parts[i] = cs.ID
		if cs.Desc {
			parts[i] = "-" + cs.ID
		}
	}
	return " · sort " + strings.Join(parts, ",")
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, render(helpKeyStyle, h.Key)+" "+render(footerStyle, h.Desc))
	}
	return strings.Join(parts, "  ")
}

// colWidth converts a column size in pixels to terminal cells.
func colWidth[T tablestate.Record](col *tablestate.Column[T]) int {
	w := col.Size() / 10
	if w < minColWidth {
		w = minColWidth
	}
	return w
}

// spanWidth is the width of a header: the visible leaves below it and the
// separators between them.
func spanWidth[T tablestate.Record](col *tablestate.Column[T]) int {
	if col.IsLeaf() {
		return colWidth(col)
	}
	w, n := 0, 0
	for _, child := range col.Columns {
		if !child.IsVisible() {
			continue
		}
		w += spanWidth(child)
		n++
	}
	if n > 1 {
		w += n - 1
	}
	return w
}

func totalWidth[T tablestate.Record](plan grid.Plan[T]) int {
	w := 0
	for _, col := range plan.Columns {
		w += colWidth(col)
	}
	if len(plan.Columns) > 1 {
		w += len(plan.Columns) - 1
	}
	return w
}

// fit pads or truncates s to exactly width runes.
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width > 1 {
			return string(r[:width-1]) + "…"
		}
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
