package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/navshell/tui/theme"
)

const sidebarWidth = 18

// Terminal renders the chrome with lipgloss.
type Terminal struct {
	Theme *theme.Theme
	Icons theme.IconSet
}

// NewTerminal uses the active theme and icon set.
func NewTerminal() *Terminal {
	return &Terminal{Theme: theme.DefaultTheme, Icons: theme.Icons}
}

// ContentWidth is the width left for page content in a terminal of width columns.
func ContentWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := width - sidebarWidth - 5 // sidebar border and content padding
	if w < 10 {
		return 10
	}
	return w
}

// Render draws header, sidebar, content and status line. A zero height lets
// the content grow freely; otherwise the body is clipped to fit.
func (t *Terminal) Render(v View, width, height int) string {
	th := t.Theme

	title := v.Title
	if v.PageTitle != "" {
		title = fmt.Sprintf("%s · %s", v.Title, v.PageTitle)
	}
	header := th.HeaderBar.Render(title)
	if v.Version != "" && width > 0 {
		gap := width - lipgloss.Width(header) - lipgloss.Width(v.Version) - 2
		if gap > 0 {
			header = lipgloss.JoinHorizontal(lipgloss.Top, header,
				th.HeaderBar.Render(strings.Repeat(" ", gap)+th.Muted.Render(v.Version)))
		}
	}

	sidebar := th.Sidebar.Width(sidebarWidth).Render(t.navLines(v.Nav))

	body := v.Text
	if v.Error != nil {
		body = th.ErrorPanel.Render(fmt.Sprintf("%s %s failed to render\n%s %s",
			t.Icons.Error, v.Error.Page, v.Error.Code, v.Error.Message))
	}
	content := th.Content.Render(body)
	if cw := ContentWidth(width); cw > 0 {
		content = th.Content.Width(cw).Render(body)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	if height > 0 {
		main = clip(main, height-2)
	}

	status := v.Path
	if !v.Matched {
		status += "  " + th.Warning.Render("no route")
	}
	statusLine := th.StatusLine.Render(status)
	if width > 0 {
		statusLine = th.StatusLine.Width(width).Render(status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, main, statusLine)
}

func (t *Terminal) navLines(items []NavItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		label := fmt.Sprintf("%d %s %s", item.Index, t.Icons.ForPage(string(item.Page)), item.Label)
		if item.Active {
			lines = append(lines, t.Theme.NavActive.Render(label))
		} else {
			lines = append(lines, t.Theme.NavItem.Render(label))
		}
	}
	return strings.Join(lines, "\n")
}

// clip pads or truncates s to exactly n lines.
func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
