package cmd

import (
	"os"
	"path/filepath"

	"github.com/grovetools/navshell/cli"
	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/internal/metrics"
	"github.com/grovetools/navshell/internal/store"
	"github.com/grovetools/navshell/logging"
	"github.com/grovetools/navshell/page"
	"github.com/grovetools/navshell/routes"
	"github.com/grovetools/navshell/shell"
	"github.com/grovetools/navshell/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is the in-process shell shared by serve, render and tui.
type app struct {
	cmd     *cobra.Command
	holder  *config.Holder
	store   *store.Store
	metrics *metrics.Metrics
	shell   *shell.Shell
	version string
}

type appOption func(*app)

func withMetrics() appOption {
	return func(a *app) { a.metrics = metrics.New() }
}

func newApp(cmd *cobra.Command, opts ...appOption) (*app, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	a := &app{
		cmd:     cmd,
		holder:  config.NewHolder(cfg),
		store:   store.New(0),
		version: version.GetInfo().Short(),
	}
	for _, o := range opts {
		o(a)
	}
	if !cfg.MetricsEnabled() {
		a.metrics = nil
	}

	table := routes.Default()
	pages := page.Builtin(page.Deps{Table: table, Stats: a.store, Events: a.store, Config: a.holder})

	shellOpts := []shell.Option{
		shell.WithRecorder(a.store),
		shell.WithLogger(logging.NewLogger("shell")),
	}
	if a.metrics != nil {
		shellOpts = append(shellOpts, shell.WithObserver(a.metrics))
	}

	a.shell, err = shell.New(table, pages, shell.OptionsFromConfig(cfg, a.version), shellOpts...)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) config() *config.Config {
	return a.holder.Config()
}

// watchDirs lists the directories whose config files feed this app.
func (a *app) watchDirs() []string {
	if path := cli.GetOptions(a.cmd).ConfigFile; path != "" {
		abs, err := filepath.Abs(path)
		if err == nil {
			path = abs
		}
		return []string{filepath.Dir(path)}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	return config.WatchDirs(cwd)
}

// reload re-reads configuration after a change. A broken file keeps the
// previous configuration in place.
func (a *app) reload(logger *logrus.Entry) func(files []string) {
	return func(files []string) {
		cfg, err := cli.LoadConfig(a.cmd)
		if err != nil {
			logger.WithError(err).Warn("Config reload failed, keeping previous configuration")
			return
		}
		a.holder.Set(cfg)
		a.shell.SetOptions(shell.OptionsFromConfig(cfg, a.version))
		a.store.BroadcastConfigReload(files...)
		logger.WithField("files", files).Info("Configuration reloaded")
	}
}
