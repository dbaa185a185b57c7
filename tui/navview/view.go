package navview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minWidth  = 40
	minHeight = 10
)

// View renders the shell and the footer.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.width < minWidth || m.height < minHeight {
		return "Terminal too small. Please resize."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.body, m.footer())
}

func (m *Model) footer() string {
	if m.prompt.Focused() {
		return m.prompt.View()
	}
	return m.help.View(m.keys)
}

// render re-mounts the current page at the current size. The page reloads its
// data, so stats and events are fresh on every render.
func (m *Model) render() {
	if m.width == 0 {
		return
	}
	height := m.height - lipgloss.Height(m.footer())
	m.result, m.body = m.shell.RenderText(m.ctx, m.Current(), m.width, height)
	m.body = strings.TrimRight(m.body, "\n")
}
