package page

import (
	"context"
	"fmt"
	"html/template"
	"strconv"

	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/routes"
)

// Dashboard summarises navigation activity per route.
type Dashboard struct {
	Table *routes.Table
	Stats StatsSource
}

// DashboardData is the loaded state of the Dashboard page.
type DashboardData struct {
	Rows      []VisitRow
	Total     int
	Unmatched int
	Failures  int
	Reloads   int
	Last      *store.Event
}

// VisitRow is one route with its visit count.
type VisitRow struct {
	Path   string
	Label  string
	Visits int
}

func (d *Dashboard) Name() routes.PageID { return routes.Dashboard }
func (d *Dashboard) Title() string       { return "Dashboard" }

func (d *Dashboard) Load(ctx context.Context) (any, error) {
	var stats store.Stats
	if d.Stats != nil {
		stats = d.Stats.Stats()
	}
	data := DashboardData{
		Total:     stats.Total,
		Unmatched: stats.Unmatched,
		Failures:  stats.Failures,
		Reloads:   stats.Reloads,
		Last:      stats.Last,
	}
	if d.Table != nil {
		for _, r := range d.Table.Routes() {
			data.Rows = append(data.Rows, VisitRow{Path: r.Path, Label: r.Label, Visits: stats.Visits[r.Page]})
		}
	}
	return data, nil
}

func (d *Dashboard) HTML(data any) (template.HTML, error) {
	dd, ok := data.(DashboardData)
	if !ok {
		return "", wrongData(d.Name(), data)
	}
	return execute("dashboard", dd)
}

func (d *Dashboard) Text(data any, width int) (string, error) {
	dd, ok := data.(DashboardData)
	if !ok {
		return "", wrongData(d.Name(), data)
	}

	rows := make([][]string, 0, len(dd.Rows))
	for _, r := range dd.Rows {
		rows = append(rows, []string{r.Label, r.Path, strconv.Itoa(r.Visits)})
	}

	summary := fmt.Sprintf("%d navigations, %d unmatched, %d page failures, %d config reloads",
		dd.Total, dd.Unmatched, dd.Failures, dd.Reloads)
	last := "No navigation yet."
	if dd.Last != nil {
		last = fmt.Sprintf("Last: %s at %s", dd.Last.Path, dd.Last.Time.Format("15:04:05"))
	}
	return heading(d.Title(), wrap(summary, width), empty(last), "", textTable([]string{"Page", "Path", "Visits"}, rows, width)), nil
}
