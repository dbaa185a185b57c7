package layout

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// HTML renders the web chrome.
type HTML struct {
	tmpl *template.Template
}

// NewHTML parses the embedded layout templates.
func NewHTML() (*HTML, error) {
	tmpl, err := template.New("layout").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &HTML{tmpl: tmpl}, nil
}

// Render writes a complete document for v.
func (h *HTML) Render(w io.Writer, v View) error {
	return h.tmpl.ExecuteTemplate(w, "document", v)
}

// Fragment renders only the content slot, for clients that keep the chrome
// mounted and swap the page in place.
func (h *HTML) Fragment(v View) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "content", v); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Static returns the embedded stylesheet and script, rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
