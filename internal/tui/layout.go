package tui

import (
	"math"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// pxToCols converts a px measure from the layout snapshot into terminal cells.
func pxToCols(px, cellWidth float64) int {
	if px <= 0 || cellWidth <= 0 {
		return 0
	}
	n := int(math.Round(px / cellWidth))
	if n < 1 {
		n = 1
	}
	return n
}

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall. This makes split-pane rendering stable when using lipgloss.JoinHorizontal.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}

	return strings.Join(lines, "\n")
}

func fitLine(ln string, width int) string {
	// Fast path: avoid computing StringWidth on extremely long lines (can be slow).
	if width > 0 && len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width)
	}

	w := xansi.StringWidth(ln)
	if w > width {
		switch {
		case width <= 0:
			ln = ""
		case width == 1:
			ln = xansi.Cut(ln, 0, 1)
		default:
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln = ln + strings.Repeat(" ", width-w)
	}
	return ln
}

// overlayLeft draws over on top of the left edge of base, line by line.
// Both blocks must already be normalized to the same height; over is
// overWidth cells wide.
func overlayLeft(base, over string, overWidth int) string {
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(over, "\n")
	for i := range baseLines {
		if i >= len(overLines) {
			break
		}
		rest := xansi.Cut(baseLines[i], overWidth, xansi.StringWidth(baseLines[i]))
		baseLines[i] = overLines[i] + rest
	}
	return strings.Join(baseLines, "\n")
}
