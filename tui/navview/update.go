package navview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/navshell/internal/store"
)

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.prompt.Width = msg.Width - 2
		m.render()
		return m, nil

	case updateMsg:
		if !msg.ok {
			return m, nil
		}
		if msg.update.Type == store.UpdateConfigReload {
			m.nav.Refresh()
			m.render()
		}
		return m, m.waitForUpdate()

	case tea.KeyMsg:
		if m.prompt.Focused() {
			return m.updatePrompt(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.render()

		case key.Matches(msg, m.keys.Prompt):
			m.prompt.SetValue("")
			m.render()
			return m, tea.Batch(m.prompt.Focus(), textinput.Blink)

		case key.Matches(msg, m.keys.Refresh):
			m.render()

		case key.Matches(msg, m.keys.NextTab):
			m.cycle(1)

		case key.Matches(msg, m.keys.PrevTab):
			m.cycle(-1)

		case key.Matches(msg, m.keys.Jump):
			idx := int(msg.String()[0] - '1')
			if idx < m.shell.Table().Len() {
				m.navigate(m.shell.Table().At(idx).Path)
			}
		}
	}

	return m, nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		path := strings.TrimSpace(m.prompt.Value())
		m.prompt.Blur()
		if path != "" {
			m.navigate(path)
		} else {
			m.render()
		}
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.prompt.Blur()
		m.render()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// cycle moves to the next or previous declared route. From an undeclared
// path, forward lands on the first route and backward on the last.
func (m *Model) cycle(step int) {
	table := m.shell.Table()
	n := table.Len()
	if n == 0 {
		return
	}
	idx := table.IndexOf(m.Current().Path)
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = (idx + step + n) % n
	}
	m.navigate(table.At(idx).Path)
}

func (m *Model) navigate(path string) {
	m.nav.Navigate(path)
	m.render()
}
