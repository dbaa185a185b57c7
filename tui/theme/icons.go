package theme

import (
	"os"

	"github.com/grovetools/navshell/config"
)

// IconSet holds the glyphs used by the terminal layout.
type IconSet struct {
	Dashboard string
	Messages  string
	Services  string
	Knowledge string
	Settings  string
	NotFound  string

	Success string
	Error   string
	Warning string
	Info    string
	Arrow   string
	Bullet  string
}

var nerdIcons = IconSet{
	Dashboard: "󰕮", // md-view_dashboard (U+F056E)
	Messages:  "󰭹", // md-chat (U+F0B79)
	Services:  "󰒋", // md-server (U+F048B)
	Knowledge: "󰂺", // md-book_open_variant (U+F00BA)
	Settings:  "", // fa-gear (U+F013)
	NotFound:  "󰍉", // md-magnify (U+F0349)
	Success:   "󰄬", // md-check (U+F012C)
	Error:     "", // cod-error (U+EA87)
	Warning:   "", // fa-warning (U+F071)
	Info:      "󰋼", // md-information (U+F02FC)
	Arrow:     "󰁔", // md-arrow_right (U+F0054)
	Bullet:    "", // oct-dot_fill (U+F444)
}

var asciiIcons = IconSet{
	Dashboard: "#",
	Messages:  "@",
	Services:  "%",
	Knowledge: "&",
	Settings:  "*",
	NotFound:  "?",
	Success:   "✓",
	Error:     "✗",
	Warning:   "!",
	Info:      "i",
	Arrow:     "→",
	Bullet:    "•",
}

// Icons is the active icon set: NAVSHELL_ICONS, then tui.icons, then nerd.
var Icons = IconsFor(iconSetName())

// IconsFor returns the named icon set. Anything but "ascii" yields nerd font glyphs.
func IconsFor(name string) IconSet {
	if name == "ascii" {
		return asciiIcons
	}
	return nerdIcons
}

// ForPage returns the nav glyph for a page name.
func (s IconSet) ForPage(page string) string {
	switch page {
	case "dashboard":
		return s.Dashboard
	case "messages":
		return s.Messages
	case "services":
		return s.Services
	case "knowledge":
		return s.Knowledge
	case "settings":
		return s.Settings
	default:
		return s.NotFound
	}
}

func iconSetName() string {
	if name := os.Getenv("NAVSHELL_ICONS"); name != "" {
		return name
	}
	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil {
		return "nerd"
	}
	return cfg.TUI.Icons
}
