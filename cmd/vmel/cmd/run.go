package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/vmel/internal/evalsvc"
	"github.com/msto63/vmel/internal/journal"
)

var (
	runJSON    bool
	runTimings bool
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a vmel source file",
	Long: `Runs a vmel program in source mode.

Program output goes to stdout, diagnostics to stderr. The exit status is 1
when the program reported diagnostics.

Examples:
  vmel run examples/hello.vml
  echo 'println 6 * 7' | vmel run -
  vmel run --locale de --journal script.vml`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the result as JSON")
	runCmd.Flags().BoolVar(&runTimings, "timings", false, "print the run duration")
}

func runRun(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	store, err := openJournal()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	svc, err := evalsvc.NewService(engine, store, evalsvc.Config{})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resp, err := svc.Run(ctx, journal.OriginCLI, src)
	if err != nil {
		return err
	}

	if runJSON {
		if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
		if len(resp.Diagnostics) > 0 || resp.Dropped > 0 || resp.Canceled {
			return errDiagnostics
		}
		return nil
	}
	return printResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, runTimings)
}
