package page

import (
	"context"
	"html/template"

	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/routes"
)

// DefaultMessageLimit is how many events the Messages page shows.
const DefaultMessageLimit = 50

// Messages lists recent shell events.
type Messages struct {
	Events EventSource
	Limit  int
}

// MessagesData is the loaded state of the Messages page.
type MessagesData struct {
	Events []store.Event
}

func (m *Messages) Name() routes.PageID { return routes.Messages }
func (m *Messages) Title() string       { return "Messages" }

func (m *Messages) Load(ctx context.Context) (any, error) {
	if m.Events == nil {
		return MessagesData{}, nil
	}
	return MessagesData{Events: m.Events.Recent(m.Limit)}, nil
}

func (m *Messages) HTML(data any) (template.HTML, error) {
	md, ok := data.(MessagesData)
	if !ok {
		return "", wrongData(m.Name(), data)
	}
	return execute("messages", md)
}

func (m *Messages) Text(data any, width int) (string, error) {
	md, ok := data.(MessagesData)
	if !ok {
		return "", wrongData(m.Name(), data)
	}
	if len(md.Events) == 0 {
		return heading(m.Title(), empty("No events recorded.")), nil
	}

	rows := make([][]string, 0, len(md.Events))
	for _, e := range md.Events {
		rows = append(rows, []string{e.Time.Format("15:04:05"), string(e.Kind), e.Source, describe(e)})
	}
	return heading(m.Title(), textTable([]string{"Time", "Kind", "Source", "Detail"}, rows, width)), nil
}

// describe summarises an event in one line.
func describe(e store.Event) string {
	switch e.Kind {
	case store.EventNavigation:
		if !e.Matched {
			return e.Path + " (unmatched)"
		}
		return e.Path + " → " + string(e.Page)
	default:
		if e.Path != "" && e.Message != "" {
			return e.Path + ": " + e.Message
		}
		return e.Message
	}
}
