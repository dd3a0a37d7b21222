package tui

import (
        "strings"

        xansi "github.com/charmbracelet/x/ansi"
)

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

// fitLine truncates ln with an ellipsis or pads it with spaces to exactly width columns.
func fitLine(ln string, width int) string {
        // Bound the cost of StringWidth on huge lines (long webhook bodies in the log).
        if width > 0 && len(ln) > 8192 {
                ln = xansi.Cut(ln, 0, width)
        }
        w := xansi.StringWidth(ln)
        if w > width {
                switch {
                case width <= 0:
                        return ""
                case width == 1:
                        ln = xansi.Cut(ln, 0, 1)
                default:
                        ln = xansi.Truncate(ln, width, "…")
                }
                w = xansi.StringWidth(ln)
        }
        if w < width {
                ln += strings.Repeat(" ", width-w)
        }
        return ln
}
