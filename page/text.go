package page

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/navshell/tui/theme"
)

// textTable renders rows as a bordered table limited to width columns.
func textTable(headers []string, rows [][]string, width int) string {
	t := theme.DefaultTheme
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Colors.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.Bold.Padding(0, 1)
			}
			return t.Normal.Padding(0, 1)
		})
	if width > 0 {
		tbl = tbl.Width(width)
	}
	return tbl.Render()
}

// heading renders a page title followed by body.
func heading(title string, body ...string) string {
	parts := append([]string{theme.DefaultTheme.Title.Render(title)}, body...)
	return strings.Join(parts, "\n")
}

func empty(msg string) string {
	return theme.DefaultTheme.Muted.Render(msg)
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
