package cmd

import (
	"github.com/grovetools/navshell/cli"
	"github.com/grovetools/navshell/logging"
	"github.com/grovetools/navshell/pkg/paths"
	"github.com/spf13/cobra"
)

// PathsOutput lists the directories and files navshell uses.
type PathsOutput struct {
	ConfigDir    string `json:"config_dir"`
	GlobalConfig string `json:"global_config"`
	StateDir     string `json:"state_dir"`
	LogsDir      string `json:"logs_dir"`
	CacheDir     string `json:"cache_dir"`
	RuntimeDir   string `json:"runtime_dir"`
	Socket       string `json:"socket"`
	PidFile      string `json:"pid_file"`
}

// NewPathsCmd returns the command that prints navshell's paths.
func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the paths navshell reads and writes",
		Long: `Print the XDG directories navshell uses. Setting NAVSHELL_HOME moves
all of them under one root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				ConfigDir:    paths.ConfigDir(),
				GlobalConfig: paths.GlobalConfigPath(),
				StateDir:     paths.StateDir(),
				LogsDir:      paths.LogsDir(),
				CacheDir:     paths.CacheDir(),
				RuntimeDir:   paths.RuntimeDir(),
				Socket:       paths.SocketPath(),
				PidFile:      paths.PidFilePath(),
			}
			if cli.GetOptions(cmd).JSONOutput {
				return writeJSON(cmd, output)
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Path("Config", output.ConfigDir)
			pretty.Path("Global config", output.GlobalConfig)
			pretty.Path("State", output.StateDir)
			pretty.Path("Logs", output.LogsDir)
			pretty.Path("Cache", output.CacheDir)
			pretty.Path("Runtime", output.RuntimeDir)
			pretty.Path("Socket", output.Socket)
			pretty.Path("PID file", output.PidFile)
			return nil
		},
	}
}
