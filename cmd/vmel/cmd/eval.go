package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/vmel/internal/evalsvc"
	coregrpc "github.com/msto63/vmel/pkg/core/grpc"
)

var (
	evalAddr    string
	evalTimeout time.Duration
	evalTokens  bool
	evalJSON    bool
)

var evalCmd = &cobra.Command{
	Use:   "eval FILE",
	Short: "Run a source file on a remote evaluator",
	Long: `Sends a source file to the gRPC evaluator started by "vmel serve" and
prints the result like "vmel run".

Examples:
  vmel eval examples/hello.vml
  vmel eval --addr 10.0.0.5:9480 script.vml
  vmel eval --tokens script.vml`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&evalAddr, "addr", "", "evaluator address (default from config)")
	evalCmd.Flags().DurationVar(&evalTimeout, "timeout", 30*time.Second, "request timeout")
	evalCmd.Flags().BoolVar(&evalTokens, "tokens", false, "tokenize instead of run")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "print the response as JSON")
}

func runEval(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	addr := evalAddr
	if addr == "" {
		addr = appConfig.GRPCAddress()
	}

	cfg := coregrpc.DefaultClientConfig(addr)
	cfg.Timeout = evalTimeout
	conn, err := coregrpc.Dial(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	client := evalsvc.NewClient(conn)

	if evalTokens {
		resp, err := client.Tokenize(ctx, src)
		if err != nil {
			return coregrpc.FromStatus(err)
		}
		return printTokenResponse(cmd, resp)
	}

	resp, err := client.Run(ctx, src)
	if err != nil {
		return coregrpc.FromStatus(err)
	}
	if evalJSON {
		return printJSON(cmd.OutOrStdout(), resp)
	}
	return printResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, false)
}

func printTokenResponse(cmd *cobra.Command, resp *evalsvc.TokenResponse) error {
	if evalJSON {
		return printJSON(cmd.OutOrStdout(), resp)
	}
	out := cmd.OutOrStdout()
	for _, tok := range resp.Tokens {
		fmt.Fprintf(out, "%-12s %-24q %d\n", tok.Type, tok.Value, tok.Line)
	}
	if resp.Diagnostic != nil {
		printDiagnostics(cmd.ErrOrStderr(), []evalsvc.Diagnostic{*resp.Diagnostic}, 0)
		return errDiagnostics
	}
	return nil
}
