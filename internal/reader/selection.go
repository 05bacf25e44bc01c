// Package reader converts volatile reading-view selection state into stable
// presentation anchors that the highlight toolbar can attach to.
package reader

import "strings"

// Rect is a rectangle in screen cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether o lies wholly inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.Width <= r.X+r.Width &&
		o.Y+o.Height <= r.Y+r.Height
}

// Selection is the raw selection state observed on a selection-change signal.
type Selection struct {
	Text      string
	Collapsed bool
	Bounds    Rect
}

// ToolbarMargin is how far above the selection the floating toolbar anchor
// sits, so the toolbar never covers the selected text.
const ToolbarMargin = 2

// minSelectionLen is the trimmed length a selection must exceed before it is
// worth an anchor.
const minSelectionLen = 2

// Anchor is the presentable form of a selection: the selected text plus a
// screen point for the floating toolbar. It is never persisted and is
// cleared once a highlight or explain action consumes it.
type Anchor struct {
	Text string
	X, Y int
}

// Tracker derives anchors from selection-change signals. Each signal fully
// replaces the previous anchor; there is no debouncing beyond the triviality
// filter.
type Tracker struct {
	region Rect
	anchor *Anchor
}

// NewTracker creates a Tracker for the given readable-content region.
func NewTracker(region Rect) *Tracker {
	return &Tracker{region: region}
}

// SetRegion updates the readable-content region, e.g. after a resize.
func (t *Tracker) SetRegion(r Rect) {
	t.region = r
}

// Observe recomputes the anchor for the current selection. It returns the
// new anchor, or nil when the selection is collapsed, trivial, or outside
// the readable region.
func (t *Tracker) Observe(sel Selection) *Anchor {
	if sel.Collapsed ||
		!t.region.Contains(sel.Bounds) ||
		len(strings.TrimSpace(sel.Text)) <= minSelectionLen {
		t.anchor = nil
		return nil
	}
	t.anchor = &Anchor{
		Text: sel.Text,
		X:    sel.Bounds.X + sel.Bounds.Width/2,
		Y:    sel.Bounds.Y - ToolbarMargin,
	}
	return t.anchor
}

// Anchor returns the current anchor, or nil when there is none.
func (t *Tracker) Anchor() *Anchor {
	return t.anchor
}

// Clear drops the current anchor. Called after a highlight or explain action
// consumes the selection.
func (t *Tracker) Clear() {
	t.anchor = nil
}
