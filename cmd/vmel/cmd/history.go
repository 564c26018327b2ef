package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	mdwstringx "github.com/msto63/vmel/foundation/utils/stringx"
	"github.com/msto63/vmel/internal/journal"
	"github.com/msto63/vmel/internal/tui/theme"
)

var (
	historyOrigin     string
	historyErrorsOnly bool
	historyLimit      int
	historySince      time.Duration
	historyOlderThan  time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the run journal",
	Long: `Reads and maintains the journal written by "vmel run --journal" and
"vmel serve --journal".`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than a duration",
	Long: `Deletes journal entries older than --older-than. Without the flag the
configured retention is used.

Example:
  vmel history prune --older-than 720h`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyPruneCmd)

	historyListCmd.Flags().StringVar(&historyOrigin, "origin", "", "only runs from cli, http, ws or grpc")
	historyListCmd.Flags().BoolVar(&historyErrorsOnly, "errors", false, "only runs with diagnostics")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs")
	historyListCmd.Flags().DurationVar(&historySince, "since", 0, "only runs newer than this duration")

	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 0, "age of the runs to delete (default: journal retention)")
}

func openHistory() (*journal.SQLiteStore, error) {
	return journal.Open(appConfig.Journal.Path)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	filter := journal.Filter{
		Origin:     journal.Origin(historyOrigin),
		OnlyErrors: historyErrorsOnly,
		Limit:      historyLimit,
	}
	switch filter.Origin {
	case "", journal.OriginCLI, journal.OriginHTTP, journal.OriginWS, journal.OriginGRPC:
	default:
		return fmt.Errorf("unknown origin %q", historyOrigin)
	}
	if historySince > 0 {
		filter.Since = time.Now().Add(-historySince)
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}
	for _, e := range entries {
		status := "[+]"
		if e.ErrorCount > 0 || e.Dropped > 0 {
			status = "[-]"
		}
		fmt.Fprintf(out, "%s %s  %s  %-4s  %3d errors  %-10s  %s\n",
			status,
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Origin,
			e.ErrorCount,
			e.Duration.Round(time.Microsecond),
			mdwstringx.Truncate(mdwstringx.FirstLine(strings.TrimSpace(e.Source)), 40, "..."))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s\n", e.ID)
	fmt.Fprintf(out, "  Time:     %s\n", e.Timestamp.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "  Origin:   %s\n", e.Origin)
	fmt.Fprintf(out, "  Duration: %s\n", e.Duration)
	fmt.Fprintf(out, "  SHA-256:  %s\n", e.SourceHash)
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.TitleStyle.Render("source"))
	fmt.Fprintln(out, strings.TrimRight(e.Source, "\n"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.TitleStyle.Render("output"))
	fmt.Fprint(out, e.Output)

	if len(e.Diagnostics) > 0 || e.Dropped > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.TitleStyle.Render("diagnostics"))
		for _, d := range e.Diagnostics {
			fmt.Fprintln(out, theme.RenderDiagnostic(d, engine.Render(d)))
		}
		if e.Dropped > 0 {
			fmt.Fprintln(out, theme.MutedStyle.Render(fmt.Sprintf("%d dropped", e.Dropped)))
		}
	}
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	olderThan := historyOlderThan
	if olderThan <= 0 {
		olderThan = appConfig.Journal.Retention.Duration
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Prune(context.Background(), olderThan)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d runs older than %s\n", removed, olderThan)
	return nil
}
