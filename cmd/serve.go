package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grovetools/navshell/cli"
	"github.com/grovetools/navshell/config"
	"github.com/grovetools/navshell/errors"
	"github.com/grovetools/navshell/internal/pidfile"
	"github.com/grovetools/navshell/internal/server"
	"github.com/grovetools/navshell/internal/watcher"
	"github.com/grovetools/navshell/logging"
	"github.com/grovetools/navshell/pkg/client"
	"github.com/grovetools/navshell/pkg/paths"
	"github.com/grovetools/navshell/util/pathutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewServeCmd returns the command that runs the HTTP shell in the foreground.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the navigation shell over HTTP",
		Long: `Serve the layout and the five pages over HTTP, with a websocket location
channel, an SSE event stream and Prometheus metrics. Runs in the foreground
until interrupted; only one server may run per user.

Examples:
  navshell serve
  navshell serve --addr 0.0.0.0:8080
  navshell serve --socket ~/.local/state/navshell/navshell.sock`,
		Args: cobra.NoArgs,
		RunE: runServeE,
	}
	cmd.Flags().String("addr", "", "TCP listen address (overrides server.addr)")
	cmd.Flags().String("socket", "", "Unix socket path (overrides server.socket)")
	return cmd
}

func runServeE(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd, "serve")

	a, err := newApp(cmd, withMetrics())
	if err != nil {
		return err
	}
	cfg := a.config()
	listen, err := listenConfig(cmd, cfg.Server)
	if err != nil {
		return err
	}

	pidPath := paths.PidFilePath()
	if err := pidfile.Acquire(pidPath); err != nil {
		return err
	}
	defer func() {
		if err := pidfile.Release(pidPath); err != nil {
			logger.WithError(err).Error("Failed to release pidfile")
		}
	}()

	listenAddr := listen.Addr
	if listen.Socket != "" {
		listenAddr = listen.Socket
	}
	listener, err := server.Listen(listen.Addr, listen.Socket)
	if err != nil {
		return errors.ServerStartFailed(listenAddr, err)
	}

	opts := []server.Option{server.WithVersion(a.version)}
	if a.metrics != nil {
		opts = append(opts, server.WithMetrics(a.metrics))
	}
	srv := server.New(a.shell, a.store, a.holder, logging.NewLogger("server"), opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Serve(listener)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received stop signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := startWatcher(gctx, g, a, cfg.WatchEnabled(), time.Duration(cfg.Watch.DebounceMs)*time.Millisecond); err != nil {
		logger.WithError(err).Warn("Config hot reload disabled")
	}

	logger.WithFields(logrus.Fields{"pid": os.Getpid(), "addr": listenAddr}).Info("Starting navshell server")
	if !cli.GetOptions(cmd).JSONOutput {
		logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout()).Success(fmt.Sprintf("Serving navshell on %s", displayAddr(listen.Addr, listen.Socket)))
	}
	return g.Wait()
}

// listenConfig applies --addr and --socket to a copy of the configured
// server settings. The held config stays as loaded.
func listenConfig(cmd *cobra.Command, base config.ServerConfig) (config.ServerConfig, error) {
	out := base
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		out.Addr = addr
		out.Socket = ""
	}
	if socket, _ := cmd.Flags().GetString("socket"); socket != "" {
		path, err := pathutil.Expand(socket)
		if err != nil {
			return base, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid --socket path")
		}
		out.Socket = path
	}
	return out, nil
}

// startWatcher adds the config watcher to g when hot reload is enabled.
func startWatcher(ctx context.Context, g *errgroup.Group, a *app, enabled bool, debounce time.Duration) error {
	if !enabled {
		return nil
	}
	logger := logging.NewLogger("watcher")
	w, err := watcher.New(a.watchDirs(), debounce, logger, a.reload(logger))
	if err != nil {
		return err
	}
	g.Go(func() error { return w.Start(ctx) })
	return nil
}

func displayAddr(addr, socket string) string {
	if socket != "" {
		return "unix:" + socket
	}
	return "http://" + addr
}

// NewStopCmd returns the command that stops a running server.
func NewStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pid, err := pidfile.Signal(paths.PidFilePath(), syscall.SIGTERM)
			if errors.Is(err, errors.ErrCodeDaemonNotRunning) {
				pretty.Info("navshell server is not running")
				return nil
			}
			if err != nil {
				return err
			}
			pretty.Success(fmt.Sprintf("Sent SIGTERM to process %d", pid))
			return nil
		},
	}
}

// statusReport is the --json form of `navshell status`.
type statusReport struct {
	Running bool   `json:"running"`
	PID     int    `json:"pid,omitempty"`
	Address string `json:"address,omitempty"`
	Total   int    `json:"navigations"`
	Failed  int    `json:"failures"`
}

// NewStatusCmd returns the command that reports server status.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check server status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			running, pid, err := pidfile.IsRunning(paths.PidFilePath())
			if err != nil {
				return fmt.Errorf("error checking status: %w", err)
			}
			if !running {
				return errors.New(errors.ErrCodeDaemonNotRunning, "navshell server is not running")
			}

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			report := statusReport{Running: true, PID: pid, Address: displayAddr(cfg.Server.Addr, cfg.Server.Socket)}

			c := client.New(cfg.Server)
			defer c.Close()
			if stats, err := c.Stats(cmd.Context()); err == nil {
				report.Total = stats.Total
				report.Failed = stats.Failures
			}

			if cli.GetOptions(cmd).JSONOutput {
				return writeJSON(cmd, report)
			}
			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Success("Running")
			pretty.Field("PID", report.PID)
			pretty.Field("Address", report.Address)
			pretty.Field("Navigations", report.Total)
			pretty.Field("Page failures", report.Failed)
			return nil
		},
	}
}
