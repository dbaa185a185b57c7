package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/pkg/paths"
	"github.com/grovetools/navshell/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workspace isolates navshell's directories and writes a project config
// pointing at an address nothing listens on.
func workspace(t *testing.T, extra string) string {
	t.Helper()
	t.Setenv(paths.HomeEnv, t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	cfg := "server:\n  addr: " + addr + "\nwatch:\n  enabled: false\n" + extra
	require.NoError(t, os.WriteFile(filepath.Join(dir, "navshell.yml"), []byte(cfg), 0644))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoutesCmd(t *testing.T) {
	workspace(t, "")

	out, err := execute(t, "routes")
	require.NoError(t, err)
	for _, r := range routes.Default().Routes() {
		assert.Contains(t, out, r.Label)
	}

	out, err = execute(t, "routes", "--json", "--filter", "/s*")
	require.NoError(t, err)
	var got []routes.Route
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "/services", got[0].Path)
	assert.Equal(t, "/settings", got[1].Path)
}

func TestResolveCmd(t *testing.T) {
	workspace(t, "")

	out, err := execute(t, "resolve", "/knowledge")
	require.NoError(t, err)
	assert.Contains(t, out, "Knowledge")

	out, err = execute(t, "resolve", "/knowledge/")
	require.NoError(t, err)
	assert.Contains(t, out, "(no route)")

	_, err = execute(t, "resolve", "/nonexistent", "--strict")
	assert.True(t, errors.Is(err, errors.ErrCodeRouteNotFound))
}

func TestRenderCmdHTML(t *testing.T) {
	workspace(t, "")

	for _, r := range routes.Default().Routes() {
		out, err := execute(t, "render", r.Path, "--format", "html")
		require.NoError(t, err, r.Path)
		assert.Contains(t, out, `data-shell="layout"`)
		assert.Contains(t, out, `page-`+string(r.Page)+`"`)
		assert.Equal(t, 1, strings.Count(out, `<section class="page `), "exactly one page for %s", r.Path)
	}

	out, err := execute(t, "render", "/nonexistent", "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, `data-shell="layout"`)
	assert.NotContains(t, out, `<section class="page `)

	_, err = execute(t, "render", "/nonexistent", "--format", "html", "--strict")
	assert.True(t, errors.Is(err, errors.ErrCodeRouteNotFound))
}

func TestRenderCmdNotFoundPage(t *testing.T) {
	workspace(t, "shell:\n  not_found: page\n")

	out, err := execute(t, "render", "/nonexistent", "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "page-not-found")
}

func TestRenderCmdText(t *testing.T) {
	workspace(t, "shell:\n  title: Ops Console\n")

	out, err := execute(t, "render", "/settings", "--format", "text", "--width", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Ops Console")
	assert.Contains(t, out, "/settings")

	_, err = execute(t, "render", "/", "--format", "pdf")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestConfigCmds(t *testing.T) {
	dir := workspace(t, "services:\n  - name: llm\n    url: http://localhost:11434\n")

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# Source: "+filepath.Join(dir, "navshell.yml"))
	assert.Contains(t, out, "llm")

	out, err = execute(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("shell:\n  not_found: maybe\n"), 0644))
	_, err = execute(t, "config", "validate", bad)
	assert.Error(t, err)

	out, err = execute(t, "config", "schema")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "properties")
}

func TestServerOnlyCmdsWithoutServer(t *testing.T) {
	workspace(t, "")

	_, err := execute(t, "events")
	assert.True(t, errors.Is(err, errors.ErrCodeDaemonNotRunning))

	_, err = execute(t, "status")
	assert.True(t, errors.Is(err, errors.ErrCodeDaemonNotRunning))

	out, err := execute(t, "stop")
	require.NoError(t, err)
	assert.Contains(t, out, "not running")
}

func TestLogsCmd(t *testing.T) {
	dir := workspace(t, "")
	file := filepath.Join(dir, "navshell.log")
	require.NoError(t, os.WriteFile(file, []byte("one\ntwo\nthree\n"), 0644))

	out, err := execute(t, "logs", "--file", file, "--tail", "2")
	require.NoError(t, err)
	assert.Equal(t, "two\nthree\n", out)

	out, err = execute(t, "logs", "--file", file)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree\n", out)

	_, err = execute(t, "logs", "--file", filepath.Join(dir, "missing.log"))
	assert.Error(t, err)
}

func TestPrintLastLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printLastLines(&buf, strings.NewReader("a\nb\nc\n"), 0))
	assert.Empty(t, buf.String())
}

func TestPathsCmd(t *testing.T) {
	workspace(t, "")
	home := os.Getenv(paths.HomeEnv)

	out, err := execute(t, "paths", "--json")
	require.NoError(t, err)
	var got PathsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, filepath.Join(home, "config"), got.ConfigDir)
	assert.Equal(t, paths.PidFilePath(), got.PidFile)
}

func TestTimingFlag(t *testing.T) {
	workspace(t, "")

	out, err := execute(t, "render", "/messages", "--format", "text", "--width", "80", "--timing")
	require.NoError(t, err)
	assert.Contains(t, out, "navshell timing")
	assert.Contains(t, out, "render /messages [text]")
	assert.Contains(t, out, "setup")
	for _, phase := range []string{"  load ", "  render ", "  layout "} {
		assert.Contains(t, out, phase)
	}
}

func TestListenConfigLeavesHeldConfig(t *testing.T) {
	held := &config.Config{Server: config.ServerConfig{Addr: "127.0.0.1:7878", ShutdownTimeout: "3s"}}
	holder := config.NewHolder(held)

	cmd := NewServeCmd()
	require.NoError(t, cmd.Flags().Set("addr", "0.0.0.0:9000"))
	listen, err := listenConfig(cmd, holder.Config().Server)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", listen.Addr)
	assert.Equal(t, "3s", listen.ShutdownTimeout)
	assert.Equal(t, "127.0.0.1:7878", holder.Config().Server.Addr)

	sock := filepath.Join(t.TempDir(), "navshell.sock")
	cmd = NewServeCmd()
	require.NoError(t, cmd.Flags().Set("socket", sock))
	listen, err = listenConfig(cmd, holder.Config().Server)
	require.NoError(t, err)
	assert.Equal(t, sock, listen.Socket)
	assert.Empty(t, holder.Config().Server.Socket)
	assert.Same(t, held, holder.Config())
}
