package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/grovetools/navshell/pkg/paths"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config lookup and the log file sink at a temp dir and
// clears the logger cache.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(paths.HomeEnv, home)
	t.Chdir(t.TempDir())
	t.Cleanup(func() {
		loggersMu.Lock()
		loggers = make(map[string]*logrus.Entry)
		for path, f := range fileSinks {
			f.Close()
			delete(fileSinks, path)
		}
		loggersMu.Unlock()
	})
	return home
}

func TestNewLogger(t *testing.T) {
	isolate(t)

	logger := NewLogger("test-component")
	require.NotNil(t, logger)
	assert.Equal(t, "test-component", logger.Data["component"])
	assert.Same(t, logger, NewLogger("test-component"), "loggers are cached per component")
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&TextFormatter{Config: FormatConfig{}})

	logger.WithField("component", "test").Info("Test message")

	output := buf.String()
	assert.Contains(t, output, "[INFO]")
	assert.Contains(t, output, "[test]")
	assert.Contains(t, output, "Test message")
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "route matched",
				Data: logrus.Fields{
					"component": "shell",
					"path":      "/messages",
				},
			},
			want: []string{"[INFO]", "[shell]", "route matched", "path=/messages"},
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "unmatched path",
				Data:    logrus.Fields{"component": "shell"},
			},
			want:    []string{"[WARN]", "unmatched path"},
			notWant: []string{"[shell]"},
		},
		{
			name:   "caller information with function name",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Logger:  func() *logrus.Logger { l := logrus.New(); l.SetReportCaller(true); return l }(),
				Level:   logrus.InfoLevel,
				Message: "with caller",
				Data:    logrus.Fields{"component": "server"},
				Caller: &runtime.Frame{
					File:     "/path/to/file.go",
					Line:     42,
					Function: "github.com/example/package.TestFunction",
				},
			},
			want: []string{"[INFO]", "[server]", "with caller", "[file.go:42 package.TestFunction]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TextFormatter{Config: tt.config}
			output, err := formatter.Format(tt.entry)
			require.NoError(t, err)

			for _, want := range tt.want {
				assert.Contains(t, string(output), want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, string(output), notWant)
			}
		})
	}
}

func TestTextFormatterSortsFields(t *testing.T) {
	formatter := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}
	out, err := formatter.Format(&logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "m",
		Data:    logrus.Fields{"zeta": 1, "alpha": 2, "mid": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "[INFO] m alpha=2 mid=3 zeta=1\n", string(out))
}

func TestEnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("NAVSHELL_LOG_LEVEL", "debug")
	t.Setenv("NAVSHELL_LOG_CALLER", "true")

	logger := NewLogger("env-test")

	assert.Equal(t, logrus.DebugLevel, logger.Logger.Level)
	assert.True(t, logger.Logger.ReportCaller)
}

func TestLevelFromConfigExtension(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("navshell.yml", []byte("version: \"1.0\"\nlogging:\n  level: warn\n"), 0644))

	logger := NewLogger("cfg-test")
	assert.Equal(t, logrus.WarnLevel, logger.Logger.Level)
}

func TestFileSink(t *testing.T) {
	isolate(t)
	t.Setenv("NAVSHELL_LOG_LEVEL", "info")

	NewLogger("file-test").Info("written to disk")

	data, err := os.ReadFile(DefaultLogFile(time.Now()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to disk")
	assert.Contains(t, string(data), "[file-test]")
}

func TestFileSinkDisabled(t *testing.T) {
	isolate(t)
	off := false
	logger := build("off", Config{
		File:   FileSinkConfig{Enabled: &off},
		Format: FormatConfig{StructuredToStderr: "never"},
	})
	assert.Equal(t, io.Discard, logger.Out)
}

func TestExplicitFilePath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "shell.log")
	logger := build("explicit", Config{
		File:   FileSinkConfig{Path: path},
		Format: FormatConfig{StructuredToStderr: "never"},
	})
	logger.Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestShouldLogToStderr(t *testing.T) {
	assert.True(t, shouldLogToStderr(Config{Format: FormatConfig{StructuredToStderr: "always"}}, logrus.InfoLevel))
	assert.False(t, shouldLogToStderr(Config{Format: FormatConfig{StructuredToStderr: "never"}}, logrus.DebugLevel))
	assert.True(t, shouldLogToStderr(Config{}, logrus.DebugLevel))
}

func TestSetGlobalOutput(t *testing.T) {
	var buf bytes.Buffer
	prev := SetGlobalOutput(&buf)
	defer SetGlobalOutput(prev)

	_, err := GetGlobalOutput().Write([]byte("redirected"))
	require.NoError(t, err)
	assert.Equal(t, "redirected", buf.String())
}
