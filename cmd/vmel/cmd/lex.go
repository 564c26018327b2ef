package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/vmel/foundation/vmel/parser"
	"github.com/msto63/vmel/internal/tui/theme"
)

var lexCmd = &cobra.Command{
	Use:   "lex FILE",
	Short: "Print the tokens of a source file",
	Long: `Prints one token per line as TYPE, value and line.

Tokenization stops at the first lexical error, which is printed to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}

	tokens, err := engine.Tokenize(src)
	var lexErr *parser.LexError
	if err != nil && !errors.As(err, &lexErr) {
		return err
	}

	out := cmd.OutOrStdout()
	for _, tok := range tokens {
		fmt.Fprintf(out, "%-12s %-24q %d\n", tok.Type, tok.Value, tok.Line)
	}

	if lexErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), theme.RenderDiagnostic(lexErr.Diagnostic, engine.Render(lexErr.Diagnostic)))
		return errDiagnostics
	}
	return nil
}
