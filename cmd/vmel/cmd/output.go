package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/msto63/vmel/internal/evalsvc"
	"github.com/msto63/vmel/internal/tui/theme"
)

// printResponse writes program output to out and diagnostics to errOut.
// It returns errDiagnostics when the run reported any.
func printResponse(out, errOut io.Writer, resp *evalsvc.Response, timings bool) error {
	fmt.Fprint(out, resp.Text)
	printDiagnostics(errOut, resp.Diagnostics, resp.Dropped)

	if resp.Canceled {
		fmt.Fprintln(errOut, theme.ErrorStyle.Render("run canceled before completion"))
	}
	if timings {
		d := time.Duration(resp.DurationMS * float64(time.Millisecond))
		fmt.Fprintln(errOut, theme.MutedStyle.Render(fmt.Sprintf("run %s took %s", resp.RunID, d.Round(time.Microsecond))))
	}

	if len(resp.Diagnostics) > 0 || resp.Dropped > 0 || resp.Canceled {
		return errDiagnostics
	}
	return nil
}

func printDiagnostics(w io.Writer, diagnostics []evalsvc.Diagnostic, dropped int) {
	for _, d := range diagnostics {
		fmt.Fprintln(w, theme.RenderDiagnostic(d.Diagnostic, d.Message))
	}
	if dropped > 0 {
		fmt.Fprintln(w, theme.MutedStyle.Render(fmt.Sprintf("%d more diagnostics dropped, error list is full", dropped)))
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
