// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/config"
	"github.com/jepemo/mystuff/internal/editor"
	"github.com/jepemo/mystuff/internal/ui"
)

var (
	// Global flags
	dirFlag        string
	configPathFlag string

	// Resolved values
	resolvedDataDir string
	globalCfg       *config.Config
	dataCfg         *config.DataConfig
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "mystuff",
	Short: "mystuff - personal knowledge management as flat files",
	Long: `mystuff keeps links, journal entries, meeting notes, wiki pages,
self-evaluations, lists, and learning progress as plain files in a single
data directory. Every command is a small operation over those files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that work without an existing data directory.
		switch cmd.Name() {
		case "init", "version", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		globalCfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(globalCfg.UI.Accent)

		resolvedDataDir, err = config.ResolveDataDir(dirFlag, globalCfg)
		if err != nil {
			return err
		}
		if _, err := os.Stat(resolvedDataDir); os.IsNotExist(err) {
			return fmt.Errorf("data directory not found: %s\n\nRun 'mystuff init' to create it", resolvedDataDir)
		}

		dataCfg, err = config.LoadDataConfig(resolvedDataDir)
		if err != nil {
			return err
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Path to the data directory")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to the global config file")
}

func loadGlobalConfig() (*config.Config, error) {
	if configPathFlag != "" {
		return config.LoadFrom(configPathFlag)
	}
	return config.Load()
}

// getDataDir returns the resolved data directory.
func getDataDir() string {
	return resolvedDataDir
}

// getDataConfig returns the per-data-directory config.
func getDataConfig() *config.DataConfig {
	if dataCfg == nil {
		return config.DefaultDataConfig(resolvedDataDir)
	}
	return dataCfg
}

// getEditor returns the editor command, preferring the data directory config
// over the global config.
func getEditor() string {
	if dataCfg != nil && dataCfg.Editor != "" {
		return dataCfg.Editor
	}
	if globalCfg != nil {
		return globalCfg.GetEditor()
	}
	return (&config.Config{}).GetEditor()
}

// editorOpen launches the configured editor on path.
func editorOpen(path string) error {
	return editor.Open(getEditor(), path)
}
