package routes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	want := []Route{
		{Path: "/", Page: Dashboard, Label: "Dashboard"},
		{Path: "/messages", Page: Messages, Label: "Messages"},
		{Path: "/services", Page: Services, Label: "Services"},
		{Path: "/knowledge", Page: Knowledge, Label: "Knowledge"},
		{Path: "/settings", Page: Settings, Label: "Settings"},
	}
	if diff := cmp.Diff(want, Default().Routes()); diff != "" {
		t.Errorf("default table mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchIsExact(t *testing.T) {
	table := Default()

	tests := []struct {
		path    string
		want    PageID
		matched bool
	}{
		{"/", Dashboard, true},
		{"/messages", Messages, true},
		{"/services", Services, true},
		{"/knowledge", Knowledge, true},
		{"/settings", Settings, true},
		{"/nonexistent", "", false},
		{"", "", false},
		{"/messages/", "", false},
		{"/Messages", "", false},
		{"/messages/42", "", false},
		{"//", "", false},
		{"/settings?tab=1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, ok := table.Match(tt.path)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, route.Page)
		})
	}
}

func TestNewTableRejectsBadRoutes(t *testing.T) {
	tests := []struct {
		name   string
		routes []Route
	}{
		{"empty path", []Route{{Path: "", Page: Dashboard}}},
		{"relative path", []Route{{Path: "messages", Page: Messages}}},
		{"parameter", []Route{{Path: "/messages/:id", Page: Messages}}},
		{"wildcard", []Route{{Path: "/*", Page: Dashboard}}},
		{"missing page", []Route{{Path: "/x"}}},
		{"not-found page", []Route{{Path: "/x", Page: NotFound}}},
		{"duplicate", []Route{{Path: "/", Page: Dashboard}, {Path: "/", Page: Settings}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.routes...)
			assert.Error(t, err)
		})
	}
}

func TestIndexAndAt(t *testing.T) {
	table := Default()
	require.Equal(t, 5, table.Len())
	assert.Equal(t, 0, table.IndexOf("/"))
	assert.Equal(t, 4, table.IndexOf("/settings"))
	assert.Equal(t, -1, table.IndexOf("/nope"))
	assert.Equal(t, Knowledge, table.At(3).Page)
}

func TestRoutesReturnsCopy(t *testing.T) {
	table := Default()
	rs := table.Routes()
	rs[0].Page = Settings

	route, ok := table.Match("/")
	require.True(t, ok)
	assert.Equal(t, Dashboard, route.Page)
}

func TestFilter(t *testing.T) {
	table := Default()

	got, err := table.Filter([]string{"/s*"})
	require.NoError(t, err)
	assert.Equal(t, []PageID{Services, Settings}, pages(got))

	got, err = table.Filter([]string{"/messages"})
	require.NoError(t, err)
	assert.Equal(t, []PageID{Messages}, pages(got))

	got, err = table.Filter(nil)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestNotFoundPolicy(t *testing.T) {
	assert.Equal(t, NotFoundEmpty, NotFoundPolicy("").Normalize())
	assert.Equal(t, NotFoundEmpty, NotFoundPolicy("bogus").Normalize())
	assert.Equal(t, NotFoundPage, NotFoundPage.Normalize())
	assert.True(t, NotFoundPolicy("").Valid())
	assert.False(t, NotFoundPolicy("bogus").Valid())
	assert.Equal(t, "empty", NotFoundPolicy("").String())
}

func pages(rs []Route) []PageID {
	out := make([]PageID, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Page)
	}
	return out
}
