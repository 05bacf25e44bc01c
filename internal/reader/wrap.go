package reader

import "strings"

// WrapText wraps markdown-ish prose to width columns for the reading view,
// preserving blank lines as paragraph breaks. Words longer than the width
// are hard-broken. Styling is the presentation layer's job; this only
// shapes the text so selections can address it by line and column.
func WrapText(content string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, src := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		src = strings.TrimRight(src, " \t")
		if strings.TrimSpace(src) == "" {
			out = append(out, "")
			continue
		}
		out = append(out, wrapLine(src, width)...)
	}
	return out
}

func wrapLine(line string, width int) []string {
	var out []string
	var cur []rune
	for _, word := range strings.Fields(line) {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
			out = append(out, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(cur) == 0:
			cur = w
		case len(cur)+1+len(w) <= width:
			cur = append(append(cur, ' '), w...)
		default:
			out = append(out, string(cur))
			cur = w
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	if len(out) == 0 {
		out = append(out, "")
	}
	return out
}
