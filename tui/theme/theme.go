package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/navshell/config"
)

const defaultThemeName = "kanagawa"

// palette lists one variant of a color scheme in Colors field order:
// green, yellow, red, orange, cyan, blue, violet, pink, light text,
// muted text, dark text, border, selected bg, subtle bg, very subtle bg.
type palette [15]string

var (
	kanagawaDragon = palette{
		"#98BB6C", "#FF9E3B", "#FF5D62", "#FFA066", "#7E9CD8", "#7FB4CA", "#957FB8", "#D27E99",
		"#DCD7BA", "#727169", "#1D1C19", "#363646", "#223249", "#1F1F28", "#181820",
	}
	kanagawaLotus = palette{
		"#4E7C5A", "#A68A64", "#C34043", "#CC6B4E", "#5B8BBE", "#4F7CAC", "#674D7A", "#B35C74",
		"#2B2F42", "#6C7086", "#E6E9EF", "#B5BDC5", "#E2E6F3", "#F7F7FB", "#EFF1F8",
	}
	gruvboxDark = palette{
		"#B8BB26", "#FABD2F", "#FB4934", "#FE8019", "#83A598", "#458588", "#B16286", "#D3869B",
		"#EBDBB2", "#BDAE93", "#1D2021", "#504945", "#32302F", "#282828", "#1D2021",
	}
	gruvboxLight = palette{
		"#98971A", "#D79921", "#CC241D", "#D65D0E", "#458588", "#076678", "#8F3F71", "#B57679",
		"#3C3836", "#928374", "#F9F5D7", "#D5C4A1", "#F2E5BC", "#FBF1C7", "#F9F5D7",
	}
	// ANSI indexes, so the terminal's own scheme decides the colors.
	ansi = palette{
		"2", "3", "1", "208", "6", "4", "5", "13",
		"7", "8", "0", "8", "8", "0", "0",
	}
)

// Colors is the palette behind a theme.
type Colors struct {
	Green                lipgloss.TerminalColor
	Yellow               lipgloss.TerminalColor
	Red                  lipgloss.TerminalColor
	Orange               lipgloss.TerminalColor
	Cyan                 lipgloss.TerminalColor
	Blue                 lipgloss.TerminalColor
	Violet               lipgloss.TerminalColor
	Pink                 lipgloss.TerminalColor
	LightText            lipgloss.TerminalColor
	MutedText            lipgloss.TerminalColor
	DarkText             lipgloss.TerminalColor
	Border               lipgloss.TerminalColor
	SelectedBackground   lipgloss.TerminalColor
	SubtleBackground     lipgloss.TerminalColor
	VerySubtleBackground lipgloss.TerminalColor
}

// Theme holds the styles used by the terminal layout and CLI output.
type Theme struct {
	Name   string
	Colors Colors

	// Layout chrome
	HeaderBar  lipgloss.Style
	Sidebar    lipgloss.Style
	NavItem    lipgloss.Style
	NavActive  lipgloss.Style
	Content    lipgloss.Style
	StatusLine lipgloss.Style
	ErrorPanel lipgloss.Style

	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold   lipgloss.Style
	Normal lipgloss.Style
	Muted  lipgloss.Style

	TableHeader lipgloss.Style
	Code        lipgloss.Style
	Input       lipgloss.Style
	Placeholder lipgloss.Style
	Highlight   lipgloss.Style
	Accent      lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": newKanagawaColors,
	"gruvbox":  newGruvboxColors,
	"terminal": newTerminalColors,
}

var themeAliases = map[string]string{
	"kanagawa-dark":   "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"kanagawa-wave":   "kanagawa",
	"gruvbox-dark":    "gruvbox",
	"gruvbox-light":   "gruvbox",
}

// DefaultTheme is resolved once from NAVSHELL_THEME or tui.theme.
var DefaultTheme = NewThemeWithName(themeName())

// NewThemeWithName builds a theme from a palette name. Unknown names fall
// back to kanagawa.
func NewThemeWithName(name string) *Theme {
	key := resolveName(name)
	return newTheme(key, themeRegistry[key]())
}

// Names lists the registered palettes.
func Names() []string {
	return []string{"kanagawa", "gruvbox", "terminal"}
}

func newTheme(name string, colors Colors) *Theme {
	return &Theme{
		Name:   name,
		Colors: colors,

		HeaderBar: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.LightText).
			Background(colors.SubtleBackground).
			Padding(0, 1),

		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colors.Border).
			PaddingRight(1),

		NavItem: lipgloss.NewStyle().
			Foreground(colors.MutedText).
			PaddingLeft(1),

		NavActive: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Background(colors.SelectedBackground).
			Bold(true).
			PaddingLeft(1),

		Content: lipgloss.NewStyle().
			Padding(0, 2),

		StatusLine: lipgloss.NewStyle().
			Foreground(colors.MutedText).
			Background(colors.VerySubtleBackground).
			Padding(0, 1),

		ErrorPanel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colors.Red).
			Foreground(colors.Red).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginBottom(1),

		Success: lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),

		Bold:   lipgloss.NewStyle().Bold(true),
		Normal: lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Faint(true),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colors.Border),

		Code: lipgloss.NewStyle().
			Background(colors.SubtleBackground).
			Foreground(colors.LightText).
			Padding(0, 1),

		Input:       lipgloss.NewStyle().Foreground(colors.LightText),
		Placeholder: lipgloss.NewStyle().Foreground(colors.MutedText).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(colors.Orange).Bold(true),
		Accent:      lipgloss.NewStyle().Foreground(colors.Violet).Bold(true),
	}
}

func resolveName(name string) string {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	if _, ok := themeRegistry[key]; ok {
		return key
	}
	return defaultThemeName
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	return strings.ReplaceAll(normalized, "_", "-")
}

func themeName() string {
	if name := os.Getenv("NAVSHELL_THEME"); name != "" {
		return name
	}
	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil {
		return defaultThemeName
	}
	return cfg.TUI.Theme
}

func newKanagawaColors() Colors { return adaptive(kanagawaLotus, kanagawaDragon) }
func newGruvboxColors() Colors  { return adaptive(gruvboxLight, gruvboxDark) }

func newTerminalColors() Colors {
	return colorsFrom(func(i int) lipgloss.TerminalColor { return lipgloss.Color(ansi[i]) })
}

// adaptive picks the light or dark variant from the terminal background.
func adaptive(light, dark palette) Colors {
	return colorsFrom(func(i int) lipgloss.TerminalColor {
		return lipgloss.AdaptiveColor{Light: light[i], Dark: dark[i]}
	})
}

func colorsFrom(c func(i int) lipgloss.TerminalColor) Colors {
	return Colors{
		Green:                c(0),
		Yellow:               c(1),
		Red:                  c(2),
		Orange:               c(3),
		Cyan:                 c(4),
		Blue:                 c(5),
		Violet:               c(6),
		Pink:                 c(7),
		LightText:            c(8),
		MutedText:            c(9),
		DarkText:             c(10),
		Border:               c(11),
		SelectedBackground:   c(12),
		SubtleBackground:     c(13),
		VerySubtleBackground: c(14),
	}
}
