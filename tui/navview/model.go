package navview

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/shell"
	"github.com/grovetools/navshell/tui/theme"
)

// Model is the terminal shell: one navigator, the last render and the
// prompt and help footer.
type Model struct {
	ctx     context.Context
	shell   *shell.Shell
	nav     *shell.Navigator
	updates <-chan store.Update

	keys   KeyMap
	help   help.Model
	prompt textinput.Model

	width  int
	height int

	result shell.Result
	body   string
}

// updateMsg carries a store update into the program.
type updateMsg struct {
	update store.Update
	ok     bool
}

// New creates the model and mounts start. updates may be nil; when set,
// config reloads re-render the current page.
func New(ctx context.Context, sh *shell.Shell, start string, updates <-chan store.Update) *Model {
	if start == "" {
		start = "/"
	}

	h := help.New()
	h.Styles.ShortKey = theme.DefaultTheme.Accent
	h.Styles.FullKey = theme.DefaultTheme.Accent
	h.Styles.ShortDesc = theme.DefaultTheme.Muted
	h.Styles.FullDesc = theme.DefaultTheme.Muted

	ti := textinput.New()
	ti.Prompt = ":"
	ti.Placeholder = "/path"
	ti.PromptStyle = theme.DefaultTheme.Accent
	ti.PlaceholderStyle = theme.DefaultTheme.Placeholder
	ti.CharLimit = 256

	m := &Model{
		ctx:     ctx,
		shell:   sh,
		nav:     sh.NewNavigator("tui"),
		updates: updates,
		keys:    DefaultKeyMap,
		help:    h,
		prompt:  ti,
	}
	m.nav.Navigate(start)
	return m
}

// Init starts listening for store updates.
func (m *Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m *Model) waitForUpdate() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		u, ok := <-ch
		return updateMsg{update: u, ok: ok}
	}
}

// Current returns the mounted resolution.
func (m *Model) Current() shell.Resolution {
	res, _ := m.nav.Current()
	return res
}

// Result returns the outcome of the last render.
func (m *Model) Result() shell.Result {
	return m.result
}
