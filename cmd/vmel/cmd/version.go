package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/vmel/pkg/core/version"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		if versionJSON {
			_ = printJSON(cmd.OutOrStdout(), info)
			return
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "vmel v%s\n", info.Version)
		fmt.Fprintf(out, "  Language:   %s\n", info.Language)
		fmt.Fprintf(out, "  Git Commit: %s\n", info.Commit)
		fmt.Fprintf(out, "  Build Date: %s\n", info.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print as JSON")
}
