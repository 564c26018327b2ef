package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msto63/vmel/internal/tui/repl"
	"github.com/msto63/vmel/pkg/core/logging"
)

var replTimings bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive mode",
	Long: `Starts an interactive session. Each line runs against symbols declared
by earlier lines.

Commands inside the session:
  :symbols  list declared variables and groups
  :errors   list the diagnostics of this session
  :reset    clear symbols and diagnostics
  :help     show the commands
  :quit     leave (also Ctrl+D)`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&replTimings, "timings", false, "show the duration of every line")
}

func runREPL(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the REPL, log lines go to a file instead
	logOut := io.Discard
	logPath := filepath.Join(appConfig.General.DataDir, "vmel.log")
	if err := os.MkdirAll(appConfig.General.DataDir, 0755); err == nil {
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			defer f.Close()
			logOut = f
		}
	}
	logging.Install(logging.LoggerConfig{
		ServiceName: "vmel-repl",
		Level:       appConfig.General.LogLevel,
		Format:      appConfig.General.LogFormat,
		Output:      logOut,
	})

	engine, err := newEngine()
	if err != nil {
		return err
	}

	return repl.Run(engine.NewSession(), repl.Config{
		Prompt:      appConfig.REPL.Prompt,
		HistorySize: appConfig.REPL.HistorySize,
		HistoryFile: appConfig.REPL.HistoryFile,
		ShowTimings: replTimings || appConfig.REPL.ShowTimings,
	})
}
