package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/navshell/pkg/paths"
	"github.com/grovetools/navshell/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHierarchicalMerging exercises global -> project -> override precedence.
func TestHierarchicalMerging(t *testing.T) {
	tmpDir := t.TempDir()
	home := filepath.Join(tmpDir, "home")
	t.Setenv(paths.HomeEnv, home)
	require.NoError(t, os.MkdirAll(paths.ConfigDir(), 0755))

	global := `
shell:
  title: Global
tui:
  theme: gruvbox
logging:
  level: info
  report_caller: true
`
	require.NoError(t, os.WriteFile(paths.GlobalConfigPath(), []byte(global), 0644))

	projectDir := filepath.Join(tmpDir, "project")
	workDir := filepath.Join(projectDir, "sub")
	require.NoError(t, os.MkdirAll(workDir, 0755))

	project := `
shell:
  title: Project
  not_found: page
services:
  - name: rag
    kind: rag
    url: http://localhost:9100
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "navshell.yml"), []byte(project), 0644))

	override := `
server:
  addr: 127.0.0.1:9999
`
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "navshell.override.yml"), []byte(override), 0644))

	cfg, err := LoadFrom(workDir)
	require.NoError(t, err)

	assert.Equal(t, "Project", cfg.Shell.Title)
	assert.Equal(t, routes.NotFoundPage, cfg.Shell.NotFound)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	require.Len(t, cfg.Services, 1)
	assert.Equal(t, "rag", cfg.Services[0].Name)

	var logCfg struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level, "project extension values win")
	assert.True(t, logCfg.ReportCaller, "global extension values survive the merge")

	assert.Equal(t, []string{
		paths.GlobalConfigPath(),
		filepath.Join(projectDir, "navshell.yml"),
		filepath.Join(projectDir, "navshell.override.yml"),
	}, cfg.Sources())
}

func TestLoadFromWithoutAnyConfig(t *testing.T) {
	t.Setenv(paths.HomeEnv, filepath.Join(t.TempDir(), "home"))

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, cfg.Shell.Title)
	assert.Empty(t, cfg.Sources())
}

func TestMergeConfigsLists(t *testing.T) {
	enabled := false
	base := &Config{
		Services: []ServiceEntry{{Name: "a", URL: "http://a"}},
		Knowledge: KnowledgeConfig{Sources: []KnowledgeSource{
			{Name: "docs", Path: "/docs"},
		}},
	}
	override := &Config{
		Services: []ServiceEntry{{Name: "b", URL: "http://b"}},
		Watch:    WatchConfig{Enabled: &enabled, DebounceMs: 250},
	}

	merged := mergeConfigs(base, override)
	require.Len(t, merged.Services, 1)
	assert.Equal(t, "b", merged.Services[0].Name)
	assert.Len(t, merged.Knowledge.Sources, 1, "empty override list keeps the base list")
	assert.False(t, merged.WatchEnabled())
	assert.Equal(t, 250, merged.Watch.DebounceMs)
}
