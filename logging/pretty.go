package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grovetools/navshell/tui/theme"
)

// PrettyLogger writes styled, human-facing CLI messages. It is separate from
// the structured component loggers.
type PrettyLogger struct {
	writer io.Writer
	theme  *theme.Theme
	icons  theme.IconSet
}

// NewPrettyLogger writes to stdout with the active theme.
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{
		writer: os.Stdout,
		theme:  theme.DefaultTheme,
		icons:  theme.Icons,
	}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

func (p *PrettyLogger) Success(message string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.theme.Success.Render(p.icons.Success), p.theme.Success.Render(message))
}

func (p *PrettyLogger) Info(message string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.theme.Info.Render(p.icons.Info), message)
}

func (p *PrettyLogger) Warn(message string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.theme.Warning.Render(p.icons.Warning), p.theme.Warning.Render(message))
}

// Error prints message and, when non-nil, the error text after a colon.
func (p *PrettyLogger) Error(message string, err error) {
	line := message
	if err != nil {
		line = fmt.Sprintf("%s: %v", message, err)
	}
	fmt.Fprintf(p.writer, "%s %s\n", p.theme.Error.Render(p.icons.Error), p.theme.Error.Render(line))
}

// Field prints an aligned key/value pair.
func (p *PrettyLogger) Field(key string, value interface{}) {
	fmt.Fprintf(p.writer, "%s %s\n", p.theme.Muted.Render(fmt.Sprintf("%-14s", key+":")), p.theme.Bold.Render(fmt.Sprint(value)))
}

func (p *PrettyLogger) Path(label, path string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.theme.Muted.Render(fmt.Sprintf("%-14s", label+":")), p.theme.Accent.Render(path))
}

// Code prints each line of content indented.
func (p *PrettyLogger) Code(content string) {
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.writer, "  %s\n", p.theme.Code.Render(line))
	}
}

func (p *PrettyLogger) Divider() {
	fmt.Fprintln(p.writer, p.theme.Muted.Render(strings.Repeat("─", 60)))
}

func (p *PrettyLogger) Blank() {
	fmt.Fprintln(p.writer)
}
