package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/config"
	"github.com/jepemo/mystuff/internal/evals"
	"github.com/jepemo/mystuff/internal/journal"
	"github.com/jepemo/mystuff/internal/learn"
	"github.com/jepemo/mystuff/internal/links"
	"github.com/jepemo/mystuff/internal/lists"
	"github.com/jepemo/mystuff/internal/meetings"
	"github.com/jepemo/mystuff/internal/ui"
	"github.com/jepemo/mystuff/internal/wiki"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create and scaffold the data directory",
	Long: `Creates the data directory with the layout every other command expects:
an empty links file, the journal, meetings, wiki, eval, lists, and learning
directories, and a default config.yaml.

Without an argument the directory is resolved the usual way: --dir flag,
MYSTUFF_HOME, the global config, then ~/.mystuff.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		target := dirFlag
		if len(args) == 1 {
			target = args[0]
		}
		dataDir, err := config.ResolveDataDir(target, cfg)
		if err != nil {
			return err
		}

		if _, err := os.Stat(dataDir); err == nil && !initForce {
			return fmt.Errorf("directory already exists: %s\n\nUse --force to scaffold it anyway", dataDir)
		}

		if err := scaffold(dataDir); err != nil {
			return err
		}

		fmt.Println(ui.Successf("Initialized data directory at %s", ui.FilePath(dataDir)))
		fmt.Println(ui.Hint("Set MYSTUFF_HOME or data_dir in the global config to use it by default."))
		return nil
	},
}

func scaffold(dataDir string) error {
	subdirs := []string{
		journal.DirName,
		meetings.DirName,
		wiki.DirName,
		evals.DirName,
		lists.DirName,
		filepath.Join(learn.DirName, learn.LessonsDirName),
	}
	for _, sub := range subdirs {
		dir := filepath.Join(dataDir, sub)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		keep := filepath.Join(dir, ".gitkeep")
		if _, err := os.Stat(keep); os.IsNotExist(err) {
			if err := os.WriteFile(keep, nil, 0o644); err != nil {
				return fmt.Errorf("create %s: %w", keep, err)
			}
		}
	}

	linksPath := filepath.Join(dataDir, links.FileName)
	if _, err := os.Stat(linksPath); os.IsNotExist(err) {
		if err := os.WriteFile(linksPath, nil, 0o644); err != nil {
			return fmt.Errorf("create %s: %w", linksPath, err)
		}
	}

	cfgPath := filepath.Join(dataDir, config.DataConfigName)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := config.SaveDataConfig(dataDir, config.DefaultDataConfig(dataDir)); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Scaffold even if the directory exists")
	rootCmd.AddCommand(initCmd)
}
