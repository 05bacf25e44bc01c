// Package delegate provides a minimal list.ItemDelegate whose rendering is
// supplied as a function, so each list in the app only writes its row
// renderer instead of a full delegate type.
package delegate

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc draws one list row. index is the row being drawn; compare it
// against m.Index() to detect the cursor.
type RenderFunc func(w io.Writer, m list.Model, index int, item list.Item)

// Base is a single-line delegate with configurable row spacing.
type Base struct {
	spacing  int
	renderFn RenderFunc
}

// New creates a delegate with no spacing between rows.
func New(renderFn RenderFunc) Base {
	return Base{renderFn: renderFn}
}

// NewWithSpacing creates a delegate with blank lines between rows.
func NewWithSpacing(renderFn RenderFunc, spacing int) Base {
	return Base{spacing: spacing, renderFn: renderFn}
}

// Height implements list.ItemDelegate.
func (d Base) Height() int { return 1 }

// Spacing implements list.ItemDelegate.
func (d Base) Spacing() int { return d.spacing }

// Update implements list.ItemDelegate.
func (d Base) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

// Render implements list.ItemDelegate.
func (d Base) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if d.renderFn != nil {
		d.renderFn(w, m, index, item)
	}
}
