package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type collector struct {
	mu    sync.Mutex
	calls [][]string
}

func (c *collector) record(files []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, files)
}

func (c *collector) snapshot() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]string(nil), c.calls...)
}

func start(t *testing.T, dir string, c *collector) {
	t.Helper()
	w, err := New([]string{dir}, 50*time.Millisecond, quietLogger(), c.record)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestBurstOfWritesIsDebounced(t *testing.T) {
	dir := t.TempDir()
	c := &collector{}
	start(t, dir, c)

	path := filepath.Join(dir, "navshell.yml")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n"), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return len(c.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	calls := c.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{path}, calls[0])
}

func TestIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	c := &collector{}
	start(t, dir, c)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".navshell.yml.swp"), []byte("x"), 0644))
	time.Sleep(200 * time.Millisecond)

	assert.Empty(t, c.snapshot())
}

func TestSymlinkTargetIsMappedToLink(t *testing.T) {
	dir := t.TempDir()
	targetDir := t.TempDir()
	target := filepath.Join(targetDir, "shared.yml")
	require.NoError(t, os.WriteFile(target, []byte("version: \"1.0\"\n"), 0644))
	link := filepath.Join(dir, "navshell.yml")
	require.NoError(t, os.Symlink(target, link))

	c := &collector{}
	start(t, dir, c)

	require.NoError(t, os.WriteFile(target, []byte("version: \"1.0\"\nshell:\n  title: x\n"), 0644))

	require.Eventually(t, func() bool { return len(c.snapshot()) > 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, c.snapshot()[0], link)
}

func TestMissingDirectoryIsSkipped(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "missing")}, 0, quietLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)
	require.NoError(t, w.Close())
}
