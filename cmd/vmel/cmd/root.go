package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/vmel/foundation/core/log"
	"github.com/msto63/vmel/foundation/vmel"
	"github.com/msto63/vmel/internal/journal"
	"github.com/msto63/vmel/pkg/core/config"
	"github.com/msto63/vmel/pkg/core/logging"
)

var (
	cfgFile    string
	locale     string
	logLevel   string
	useJournal bool
	strict     bool

	appConfig *config.Config
)

// errDiagnostics signals a run that reported diagnostics. They are already
// printed, so Execute only sets the exit status.
var errDiagnostics = errors.New("program reported diagnostics")

var rootCmd = &cobra.Command{
	Use:   "vmel",
	Short: "vmel - a small scripting language",
	Long: `vmel runs scripts written in the vmel language.

Programs declare $variables, {groups} of command strings and call the
keywords print, println and echo. Source files use the .vml extension,
"-" reads from stdin.

Commands:
  run      - run a source file
  repl     - interactive mode
  lex      - print the tokens of a file
  parse    - print the syntax tree and symbols of a file
  serve    - HTTP gateway and gRPC evaluator
  eval     - run a file on a remote evaluator
  history  - inspect the run journal`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errDiagnostics) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $VMEL_CONFIG or ./configs/vmel.toml)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "diagnostic message locale (en, de)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&useJournal, "journal", false, "record runs in the journal")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "report non-numeric text in arithmetic")
}

// setup loads the configuration, applies flag overrides and installs the
// process logger
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if locale != "" {
		appConfig.Engine.Locale = locale
	}
	if logLevel != "" {
		appConfig.General.LogLevel = logLevel
	}
	if useJournal {
		appConfig.Journal.Enabled = true
	}
	if strict {
		appConfig.Engine.StrictCoercion = true
	}
	if err := appConfig.Validate(); err != nil {
		return err
	}

	logging.Install(logging.LoggerConfig{
		ServiceName: "vmel",
		Level:       appConfig.General.LogLevel,
		Format:      appConfig.General.LogFormat,
		Output:      cmd.ErrOrStderr(),
	})
	return nil
}

// newEngine creates an engine from the loaded configuration
func newEngine() (*vmel.Engine, error) {
	return vmel.NewEngine(vmel.Options{
		Logger:          mdwlog.GetDefault(),
		ErrorCapacity:   appConfig.Engine.ErrorCapacity,
		MaxSourceLength: appConfig.Engine.MaxSourceLength,
		MaxDepth:        appConfig.Engine.MaxDepth,
		StrictCoercion:  appConfig.Engine.StrictCoercion,
		Locale:          appConfig.Engine.Locale,
		LocalesDir:      appConfig.Engine.LocalesDir,
	})
}

// openJournal opens the configured journal, or returns nil when it is
// disabled
func openJournal() (journal.Store, error) {
	if !appConfig.Journal.Enabled {
		return nil, nil
	}
	return journal.Open(appConfig.Journal.Path)
}

// readSource reads a source file, "-" reads stdin
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if ext := filepath.Ext(path); ext != ".vml" {
		mdwlog.GetDefault().Debug("source file without .vml extension", mdwlog.Fields{"path": path, "ext": ext})
	}
	return string(data), nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
