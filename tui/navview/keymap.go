package navview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the terminal shell.
type KeyMap struct {
	Jump    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Prompt  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding

	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap is the default set of keybindings.
var DefaultKeyMap = KeyMap{
	Jump: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-5", "jump to page"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab", "l", "right"),
		key.WithHelp("tab", "next page"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab", "h", "left"),
		key.WithHelp("shift+tab", "previous page"),
	),
	Prompt: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "go to path"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r", "ctrl+r"),
		key.WithHelp("r", "reload page"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "navigate"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+g"),
		key.WithHelp("esc", "cancel"),
	),
}

// ShortHelp returns keybindings to be shown in the compact help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Prompt, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.NextTab, k.PrevTab},
		{k.Prompt, k.Submit, k.Cancel},
		{k.Refresh, k.Help, k.Quit},
	}
}
