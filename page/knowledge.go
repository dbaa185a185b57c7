package page

import (
	"context"
	"html/template"

	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/routes"
)

// Knowledge lists configured knowledge sources.
type Knowledge struct {
	Config ConfigSource
}

// KnowledgeData is the loaded state of the Knowledge page.
type KnowledgeData struct {
	Sources []config.KnowledgeSource
}

func (k *Knowledge) Name() routes.PageID { return routes.Knowledge }
func (k *Knowledge) Title() string       { return "Knowledge" }

func (k *Knowledge) Load(ctx context.Context) (any, error) {
	if k.Config == nil || k.Config.Config() == nil {
		return KnowledgeData{}, nil
	}
	src := k.Config.Config().Knowledge.Sources
	out := make([]config.KnowledgeSource, len(src))
	copy(out, src)
	return KnowledgeData{Sources: out}, nil
}

func (k *Knowledge) HTML(data any) (template.HTML, error) {
	kd, ok := data.(KnowledgeData)
	if !ok {
		return "", wrongData(k.Name(), data)
	}
	return execute("knowledge", kd)
}

func (k *Knowledge) Text(data any, width int) (string, error) {
	kd, ok := data.(KnowledgeData)
	if !ok {
		return "", wrongData(k.Name(), data)
	}
	if len(kd.Sources) == 0 {
		return heading(k.Title(), empty("No knowledge sources configured.")), nil
	}
	rows := make([][]string, 0, len(kd.Sources))
	for _, src := range kd.Sources {
		rows = append(rows, []string{src.Name, src.Kind, src.Path})
	}
	return heading(k.Title(), textTable([]string{"Name", "Kind", "Path"}, rows, width)), nil
}
