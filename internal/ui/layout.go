package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	formLabelW = 16
	// maxBoxW keeps boxes readable on wide terminals.
	maxBoxW = 120
)

// padTo right-aligns s in width cells.
func padTo(width int, s string) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, s)
}

// trunc cuts s to width cells, marking the cut with an ellipsis.
func trunc(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// joinTabsWithinWidth joins as many tabs as fit in maxW and marks the rest
// with an ellipsis.
func joinTabsWithinWidth(tabs []string, maxW int) string {
	if maxW <= 0 || len(tabs) == 0 {
		return ""
	}
	ell := subtleStyle.Render("…")
	var out []string
	used := 0
	for _, t := range tabs {
		w := lipgloss.Width(t)
		if len(out) > 0 {
			w++
		}
		if used+w > maxW {
			if used+2 <= maxW {
				out = append(out, ell)
			}
			break
		}
		out = append(out, t)
		used += w
	}
	return strings.Join(out, " ")
}

func hardClipLinesToWidth(s string, w int) string {
	if w <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], w, "")
	}
	return strings.Join(lines, "\n")
}

func clampToWidthOneLine(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
	return ansi.Truncate(s, w, "")
}

func boxWidth(termW int) int {
	return min(termW-2, maxBoxW)
}
