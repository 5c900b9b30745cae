package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/sync"
	"github.com/jepemo/mystuff/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the sync commands from config.yaml",
}

var (
	syncDryRun          bool
	syncVerbose         bool
	syncContinueOnError bool
)

var syncRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured sync commands",
	Long: `Runs the commands under sync.commands in config.yaml in a single bash
session from the data directory, with MYSTUFF_HOME exported. By default the
session stops at the first failure; --continue-on-error runs everything and
reports failure at the end.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commands := getDataConfig().Sync.Commands
		return sync.Run(getDataDir(), commands, sync.Options{
			DryRun:          syncDryRun,
			Verbose:         syncVerbose,
			ContinueOnError: syncContinueOnError,
			Stdout:          os.Stdout,
			Stderr:          os.Stderr,
		})
	},
}

var syncListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the configured sync commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commands := getDataConfig().Sync.Commands
		if len(commands) == 0 {
			fmt.Println(ui.Info("No sync commands configured"))
			return nil
		}
		for i, c := range commands {
			fmt.Printf("%d. %s\n", i+1, c)
		}
		return nil
	},
}

func init() {
	syncRunCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print the commands without running them")
	syncRunCmd.Flags().BoolVarP(&syncVerbose, "verbose", "v", false, "Stream command output")
	syncRunCmd.Flags().BoolVar(&syncContinueOnError, "continue-on-error", false, "Run all commands even if one fails")

	syncCmd.AddCommand(syncRunCmd, syncListCmd)
	rootCmd.AddCommand(syncCmd)
}
