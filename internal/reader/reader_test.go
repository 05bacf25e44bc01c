package reader_test

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/lumina/internal/reader"
)

var region = reader.Rect{X: 0, Y: 0, Width: 80, Height: 24}

func sel(text string, bounds reader.Rect) reader.Selection {
	return reader.Selection{Text: text, Bounds: bounds}
}

func TestObserve_EmitsAnchorForSubstantialSelection(t *testing.T) {
	tr := reader.NewTracker(region)
	a := tr.Observe(sel("ethical AI", reader.Rect{X: 10, Y: 8, Width: 10, Height: 1}))
	if a == nil {
		t.Fatal("expected anchor, got nil")
	}
	if a.Text != "ethical AI" {
		t.Errorf("Text = %q", a.Text)
	}
	if a.X != 15 {
		t.Errorf("X = %d, want horizontal center 15", a.X)
	}
	if a.Y != 8-reader.ToolbarMargin {
		t.Errorf("Y = %d, want top edge minus margin", a.Y)
	}
	if tr.Anchor() != a {
		t.Error("Anchor() should return the emitted anchor")
	}
}

func TestObserve_RejectsTrivialAndOutside(t *testing.T) {
	cases := []struct {
		name string
		sel  reader.Selection
	}{
		{"collapsed", reader.Selection{Text: "word", Collapsed: true, Bounds: reader.Rect{X: 1, Y: 1, Width: 4, Height: 1}}},
		{"too short", sel("ab", reader.Rect{X: 1, Y: 1, Width: 2, Height: 1})},
		{"whitespace only", sel("    \t ", reader.Rect{X: 1, Y: 1, Width: 6, Height: 1})},
		{"outside region", sel("long enough", reader.Rect{X: 75, Y: 1, Width: 11, Height: 1})},
		{"below region", sel("long enough", reader.Rect{X: 1, Y: 30, Width: 11, Height: 1})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := reader.NewTracker(region)
			// Seed a previous anchor: the next signal must replace it.
			tr.Observe(sel("previous anchor", reader.Rect{X: 1, Y: 5, Width: 15, Height: 1}))
			if a := tr.Observe(tc.sel); a != nil {
				t.Errorf("Observe = %+v, want nil", a)
			}
			if tr.Anchor() != nil {
				t.Error("stale anchor survived a rejecting signal")
			}
		})
	}
}

func TestObserve_CollapseClearsPreviousAnchor(t *testing.T) {
	tr := reader.NewTracker(region)
	if tr.Observe(sel("ethical AI", reader.Rect{X: 5, Y: 5, Width: 10, Height: 1})) == nil {
		t.Fatal("setup anchor failed")
	}
	tr.Observe(reader.Selection{Collapsed: true})
	if tr.Anchor() != nil {
		t.Error("anchor not cleared on collapse signal")
	}
}

func TestClear(t *testing.T) {
	tr := reader.NewTracker(region)
	tr.Observe(sel("ethical AI", reader.Rect{X: 5, Y: 5, Width: 10, Height: 1}))
	tr.Clear()
	if tr.Anchor() != nil {
		t.Error("Clear left an anchor behind")
	}
}

// --- Span extraction ---

var lines = []string{
	"The Future of Artificial Intelligence",
	"",
	"AI is no longer a concept confined to",
	"science fiction; it is a reality.",
}

func TestExtract_SingleLine(t *testing.T) {
	sp := reader.Span{StartLine: 2, StartCol: 0, EndLine: 2, EndCol: 1}
	got := reader.Extract(lines, sp, 0, 0)
	if got.Text != "AI" {
		t.Errorf("Text = %q, want AI", got.Text)
	}
	if got.Collapsed {
		t.Error("two-cell span reported collapsed")
	}
	if got.Bounds != (reader.Rect{X: 0, Y: 2, Width: 2, Height: 1}) {
		t.Errorf("Bounds = %+v", got.Bounds)
	}
}

func TestExtract_MultiLine(t *testing.T) {
	sp := reader.Span{StartLine: 2, StartCol: 33, EndLine: 3, EndCol: 14}
	got := reader.Extract(lines, sp, 0, 5)
	if !strings.Contains(got.Text, "\n") {
		t.Errorf("multi-line text = %q", got.Text)
	}
	if !strings.HasPrefix(got.Text, "d to") || !strings.HasSuffix(got.Text, "science fiction") {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Bounds.Y != 7 || got.Bounds.Height != 2 {
		t.Errorf("Bounds = %+v", got.Bounds)
	}
}

func TestExtract_ReversedSpanNormalizes(t *testing.T) {
	fwd := reader.Span{StartLine: 2, StartCol: 0, EndLine: 2, EndCol: 1}
	rev := reader.Span{StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 0}
	if reader.Extract(lines, fwd, 0, 0).Text != reader.Extract(lines, rev, 0, 0).Text {
		t.Error("reversed span extracted different text")
	}
}

func TestExtract_OutOfRange(t *testing.T) {
	got := reader.Extract(lines, reader.Span{StartLine: 99, EndLine: 99}, 0, 0)
	if !got.Collapsed {
		t.Error("span past the content should be collapsed")
	}
	got = reader.Extract(nil, reader.Span{}, 0, 0)
	if !got.Collapsed {
		t.Error("empty content should yield collapsed selection")
	}
}

// --- Wrapping ---

func TestWrapText_Basic(t *testing.T) {
	got := reader.WrapText("one two three four five", 9)
	want := []string{"one two", "three", "four five"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
		if len([]rune(got[i])) > 9 {
			t.Errorf("line %d exceeds width: %q", i, got[i])
		}
	}
}

func TestWrapText_PreservesParagraphBreaks(t *testing.T) {
	got := reader.WrapText("para one\n\npara two", 40)
	if len(got) != 3 || got[1] != "" {
		t.Errorf("got %q, want blank line preserved", got)
	}
}

func TestWrapText_HardBreaksLongWords(t *testing.T) {
	got := reader.WrapText("superduperextralongword", 6)
	for _, l := range got {
		if len([]rune(l)) > 6 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(got, "") != "superduperextralongword" {
		t.Errorf("hard break lost characters: %q", got)
	}
}
