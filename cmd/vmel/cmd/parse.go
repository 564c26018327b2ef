package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/vmel/foundation/vmel/ast"
	"github.com/msto63/vmel/internal/tui/theme"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Print the syntax tree and symbols of a source file",
	Long: `Lexes and parses a file without evaluating it. Prints the syntax tree,
then the symbol table. Diagnostics go to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}

	result, err := engine.Parse(src)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, ast.NewPrinter().Print(result.Roots...))

	fmt.Fprintln(out, theme.TitleStyle.Render("symbols"))
	if len(result.Symbols) == 0 {
		fmt.Fprintln(out, theme.MutedStyle.Render("  none"))
	}
	for _, sym := range result.Symbols {
		fmt.Fprintln(out, "  "+theme.RenderSymbol(sym))
	}

	errOut := cmd.ErrOrStderr()
	for _, d := range result.Diagnostics {
		fmt.Fprintln(errOut, theme.RenderDiagnostic(d, engine.Render(d)))
	}
	if result.Dropped > 0 {
		fmt.Fprintln(errOut, theme.MutedStyle.Render(fmt.Sprintf("%d more diagnostics dropped, error list is full", result.Dropped)))
	}
	if len(result.Diagnostics) > 0 || result.Dropped > 0 {
		return errDiagnostics
	}
	return nil
}
