// Package grapheme fits cell text into fixed terminal widths without
// splitting grapheme clusters.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// Width returns the display width of text in terminal cells.
func Width(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	w := 0
	for g.Next() {
		w += clusterWidth(g.Str())
	}
	return w
}

// Truncate shortens text to at most width cells, ending in Ellipsis when
// anything was cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	limit := width - runewidth.StringWidth(Ellipsis)
	g := uniseg.NewGraphemes(text)
	used := 0
	var sb strings.Builder
	for g.Next() {
		cw := clusterWidth(g.Str())
		if used+cw > limit {
			break
		}
		sb.WriteString(g.Str())
		used += cw
	}
	sb.WriteString(Ellipsis)
	return sb.String()
}

// Fit truncates text to width and pads it with spaces to exactly width
// cells, aligned left or right.
func Fit(text string, width int, alignRight bool) string {
	if width <= 0 {
		return ""
	}
	text = Truncate(text, width)
	pad := width - Width(text)
	if pad <= 0 {
		return text
	}
	if alignRight {
		return strings.Repeat(" ", pad) + text
	}
	return text + strings.Repeat(" ", pad)
}

func clusterWidth(cluster string) int {
	return runewidth.StringWidth(cluster)
}
