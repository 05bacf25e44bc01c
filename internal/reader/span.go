package reader

import "strings"

// Span is a selection over wrapped content lines, in rune columns. End is
// inclusive. Lines and columns are zero-based and relative to the content,
// not the screen.
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// Normalize returns s with start before end.
func (s Span) Normalize() Span {
	if s.EndLine < s.StartLine || (s.EndLine == s.StartLine && s.EndCol < s.StartCol) {
		return Span{
			StartLine: s.EndLine, StartCol: s.EndCol,
			EndLine: s.StartLine, EndCol: s.StartCol,
		}
	}
	return s
}

// Collapsed reports whether the span covers no more than a single cell.
func (s Span) Collapsed() bool {
	n := s.Normalize()
	return n.StartLine == n.EndLine && n.StartCol == n.EndCol
}

// Extract resolves a span against the wrapped content lines, producing the
// raw Selection a Tracker consumes. originX/originY translate content
// coordinates into screen cells (viewport offsets).
func Extract(lines []string, sp Span, originX, originY int) Selection {
	sp = sp.Normalize()
	if len(lines) == 0 || sp.StartLine >= len(lines) {
		return Selection{Collapsed: true}
	}
	if sp.EndLine >= len(lines) {
		sp.EndLine = len(lines) - 1
		sp.EndCol = maxCol(lines[sp.EndLine])
	}

	var parts []string
	width := 0
	for ln := sp.StartLine; ln <= sp.EndLine; ln++ {
		runes := []rune(lines[ln])
		lo, hi := 0, len(runes)
		if ln == sp.StartLine {
			lo = clamp(sp.StartCol, 0, len(runes))
		}
		if ln == sp.EndLine {
			hi = clamp(sp.EndCol+1, 0, len(runes))
		}
		if hi < lo {
			hi = lo
		}
		parts = append(parts, string(runes[lo:hi]))
		if w := hi - lo; w > width {
			width = w
		}
	}

	text := strings.Join(parts, "\n")
	boundsX := originX
	if sp.StartLine == sp.EndLine {
		boundsX = originX + sp.StartCol
	}
	return Selection{
		Text:      text,
		Collapsed: sp.Collapsed(),
		Bounds: Rect{
			X:      boundsX,
			Y:      originY + sp.StartLine,
			Width:  width,
			Height: sp.EndLine - sp.StartLine + 1,
		},
	}
}

func maxCol(line string) int {
	n := len([]rune(line))
	if n == 0 {
		return 0
	}
	return n - 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
