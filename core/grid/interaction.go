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

import "time"

// DefaultHoverDelay is how long a row must be hovered before its panel opens.
const DefaultHoverDelay = 500 * time.Millisecond

// Modifiers are the modifier keys held during a click.
type Modifiers struct {
	Ctrl  bool
	Shift bool
	Meta  bool
	Alt   bool
}

// Any reports whether any modifier is held.
func (m Modifiers) Any() bool {
	return m.Ctrl || m.Shift || m.Meta || m.Alt
}

// Overlay is the full view loading indicator shown while a row link is
// being followed. Clicks with a modifier open the link elsewhere and do
// not show it.
type Overlay struct {
	visible bool
}

// HandleRowClick records a click on a data row and reports whether the
// overlay is now visible.
func (o *Overlay) HandleRowClick(mods Modifiers) bool {
	if !mods.Any() {
		o.visible = true
	}
	return o.visible
}

// Visible reports whether the overlay is shown.
func (o *Overlay) Visible() bool {
	return o.visible
}

// Reset hides the overlay. Call it when the grid is torn down or the
// navigation completed.
func (o *Overlay) Reset() {
	o.visible = false
}

// HoverPanel tracks the hover companion of a grid. A panel is revealed
// only if the row it was requested for is still hovered, and leaving
// the row discards the rendered content instead of hiding it.
type HoverPanel[C any] struct {
	key     string
	token   uint64
	visible bool
	content C
}

// Enter starts hovering the row with the given key. The returned token
// must be passed to Reveal once the hover delay has elapsed.
func (h *HoverPanel[C]) Enter(key string) uint64 {
	if h.key != key {
		h.Leave()
	}
	h.key = key
	h.token++
	return h.token
}

// Reveal renders the panel if token still belongs to the current hover.
func (h *HoverPanel[C]) Reveal(token uint64, render func() C) bool {
	if h.key == "" || token != h.token {
		return false
	}
	if !h.visible {
		h.content = render()
		h.visible = true
	}
	return true
}

// Leave ends the hover and drops the panel.
func (h *HoverPanel[C]) Leave() {
	var zero C
	h.key = ""
	h.token++
	h.visible = false
	h.content = zero
}

// Key returns the hovered row key, or "" when nothing is hovered.
func (h *HoverPanel[C]) Key() string {
	return h.key
}

// Visible reports whether the panel is shown.
func (h *HoverPanel[C]) Visible() bool {
	return h.visible
}

// Content returns the rendered panel. It is the zero value when hidden.
func (h *HoverPanel[C]) Content() C {
	return h.content
}
