package layout

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/grovetools/navshell/routes"
	"github.com/grovetools/navshell/tui/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func view(path string, matched bool) View {
	return View{
		Title:     "navshell",
		Version:   "v0.1.0",
		Path:      path,
		Matched:   matched,
		PageTitle: "Messages",
		Nav:       Nav(routes.Default(), path),
		Content:   `<section class="page page-messages">hello</section>`,
		Text:      "hello from messages",
	}
}

func TestNavMarksOnlyExactMatch(t *testing.T) {
	items := Nav(routes.Default(), "/messages")
	require.Len(t, items, 5)

	active := 0
	for _, it := range items {
		if it.Active {
			active++
			assert.Equal(t, "/messages", it.Path)
			assert.Equal(t, 2, it.Index)
		}
	}
	assert.Equal(t, 1, active)

	for _, it := range Nav(routes.Default(), "/messages/") {
		assert.False(t, it.Active)
	}
}

func TestHTMLRenderIncludesChrome(t *testing.T) {
	h, err := NewHTML()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, h.Render(&buf, view("/messages", true)))
	out := buf.String()

	assert.Contains(t, out, `data-shell="layout"`)
	assert.Contains(t, out, `data-shell="nav"`)
	assert.Contains(t, out, `<section class="page page-messages">hello</section>`)
	assert.Contains(t, out, `aria-current="page">Messages</a>`)
	assert.Equal(t, 1, strings.Count(out, `class="active"`))
	assert.Contains(t, out, "<title>Messages · navshell</title>")
}

func TestHTMLRenderUnmatchedKeepsChrome(t *testing.T) {
	h, err := NewHTML()
	require.NoError(t, err)

	v := View{Title: "navshell", Path: "/nonexistent", Nav: Nav(routes.Default(), "/nonexistent")}
	var buf bytes.Buffer
	require.NoError(t, h.Render(&buf, v))
	out := buf.String()

	assert.Contains(t, out, `data-shell="nav"`)
	assert.Contains(t, out, "no route")
	assert.NotContains(t, out, `class="active"`)
	assert.Contains(t, out, `data-matched="false"></main>`)
}

func TestFragmentRendersErrorPanel(t *testing.T) {
	h, err := NewHTML()
	require.NoError(t, err)

	v := view("/services", true)
	v.Error = &Panel{Page: "services", Code: "PAGE_LOAD_FAILED", Message: "backend unreachable"}
	frag, err := h.Fragment(v)
	require.NoError(t, err)

	assert.Contains(t, string(frag), `role="alert"`)
	assert.Contains(t, string(frag), "backend unreachable")
	assert.NotContains(t, string(frag), "page-messages")
}

func TestStaticAssets(t *testing.T) {
	for _, name := range []string{"shell.css", "shell.js"} {
		data, err := fs.ReadFile(Static(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data)
	}
}

func TestTerminalRender(t *testing.T) {
	term := &Terminal{Theme: theme.NewThemeWithName("terminal"), Icons: theme.IconsFor("ascii")}

	out := term.Render(view("/messages", true), 100, 20)
	assert.Contains(t, out, "navshell · Messages")
	assert.Contains(t, out, "hello from messages")
	for _, label := range []string{"Dashboard", "Messages", "Services", "Knowledge", "Settings"} {
		assert.Contains(t, out, label)
	}
	assert.Len(t, strings.Split(out, "\n"), 20)
}

func TestTerminalRenderUnmatched(t *testing.T) {
	term := &Terminal{Theme: theme.NewThemeWithName("terminal"), Icons: theme.IconsFor("ascii")}

	out := term.Render(View{Title: "navshell", Path: "/nope", Nav: Nav(routes.Default(), "/nope")}, 80, 0)
	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, "/nope")
	assert.Contains(t, out, "no route")
}

func TestTerminalRenderErrorPanel(t *testing.T) {
	term := &Terminal{Theme: theme.NewThemeWithName("terminal"), Icons: theme.IconsFor("ascii")}
	v := view("/services", true)
	v.Error = &Panel{Page: "services", Code: "PAGE_RENDER_FAILED", Message: "boom"}

	out := term.Render(v, 100, 0)
	assert.Contains(t, out, "services failed to render")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "hello from messages")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "a\nb", clip("a\nb\nc", 2))
	assert.Equal(t, "a\n\n", clip("a", 3))
	assert.Equal(t, "", clip("a", 0))
}
