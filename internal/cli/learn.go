package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/learn"
	"github.com/jepemo/mystuff/internal/ui"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Track progress through markdown lessons",
}

var learnCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Open the current lesson in the editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := learn.NewStore(getDataDir())
		meta, err := store.LoadMetadata()
		if err != nil {
			return err
		}

		if meta.CurrentLesson == "" {
			next, err := store.NextUncompleted("", meta)
			if err != nil {
				return err
			}
			if next == "" {
				fmt.Println(ui.Info("All lessons completed"))
				return nil
			}
			if err := store.Start(next); err != nil {
				return err
			}
			meta.CurrentLesson = next
			fmt.Println(ui.Infof("Starting %s", next))
		}

		path, err := store.LessonPath(meta.CurrentLesson)
		if err != nil {
			return err
		}
		if err := store.MarkOpened(); err != nil {
			return err
		}
		return openInEditor(path)
	},
}

var (
	learnListCompleted bool
	learnListPending   bool
	learnListFlat      bool
)

var learnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lessons with their status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := learn.NewStore(getDataDir())
		lessons, err := store.Lessons(!learnListFlat)
		if err != nil {
			return err
		}
		meta, err := store.LoadMetadata()
		if err != nil {
			return err
		}

		shown := 0
		for _, lesson := range lessons {
			status := meta.Status(lesson.Name)
			if learnListCompleted && status != learn.StatusCompleted {
				continue
			}
			if learnListPending && status == learn.StatusCompleted {
				continue
			}
			fmt.Printf("%s %s\n", statusGlyph(status), lesson.Name)
			shown++
		}
		if shown == 0 {
			fmt.Println(ui.Info("No lessons found"))
		}
		return nil
	},
}

var learnStartDir string

var learnStartCmd = &cobra.Command{
	Use:   "start [lesson]",
	Short: "Set the current lesson",
	Long: `Sets the current lesson. Without an argument, picks one with fzf in an
interactive terminal, or falls back to the first uncompleted lesson.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := learn.NewStore(getDataDir())
		name, err := resolveLessonName(store, args)
		if err != nil || name == "" {
			return err
		}
		if err := store.Start(name); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Current lesson: %s", name))
		return nil
	},
}

var learnCompleteCmd = &cobra.Command{
	Use:   "complete [lesson]",
	Short: "Mark a lesson as completed (defaults to the current one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := learn.NewStore(getDataDir())

		name := ""
		if len(args) == 1 {
			name = args[0]
		} else {
			meta, err := store.LoadMetadata()
			if err != nil {
				return err
			}
			if meta.CurrentLesson == "" {
				return fmt.Errorf("no current lesson; run 'mystuff learn start' first")
			}
			name = meta.CurrentLesson
		}

		newCurrent, err := store.Complete(name)
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("Completed %s", name))
		if newCurrent != "" {
			fmt.Println(ui.Infof("Next up: %s", newCurrent))
		} else {
			fmt.Println(ui.Info("All lessons completed"))
		}
		return nil
	},
}

var learnNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next uncompleted lesson",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := learn.NewStore(getDataDir())
		meta, err := store.LoadMetadata()
		if err != nil {
			return err
		}
		next, err := store.NextUncompleted(meta.CurrentLesson, meta)
		if err != nil {
			return err
		}
		if next == "" {
			fmt.Println(ui.Info("All lessons completed"))
			return nil
		}
		fmt.Println(next)
		return nil
	},
}

var learnStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := learn.NewStore(getDataDir())
		stats, err := store.ComputeStats()
		if err != nil {
			return err
		}

		table := ui.NewTable(2)
		table.AddRow("Lessons", fmt.Sprintf("%d", stats.Total))
		table.AddRow("Completed", fmt.Sprintf("%d (%.1f%%)", stats.Completed, stats.Percent))
		table.AddRow("Pending", fmt.Sprintf("%d", stats.Pending))
		if stats.CurrentLesson != "" {
			table.AddRow("Current", stats.CurrentLesson)
		}
		if stats.FirstCompletion != "" {
			table.AddRow("First completion", stats.FirstCompletion)
			table.AddRow("Last completion", stats.LastCompletion)
			table.AddRow("Pace", fmt.Sprintf("%.2f lessons/day over %s",
				stats.PerDay, ui.Count(stats.Days, "day", "days")))
		}
		fmt.Print(table.String())
		return nil
	},
}

var learnResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all learning progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if shouldPromptForConfirm() && !promptForConfirm("Reset all learning progress?") {
			return nil
		}
		store := learn.NewStore(getDataDir())
		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Learning progress reset"))
		return nil
	},
}

func resolveLessonName(store *learn.Store, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	lessons, err := store.Lessons(true)
	if err != nil {
		return "", err
	}
	if learnStartDir != "" {
		prefix := strings.TrimSuffix(learnStartDir, "/") + "/"
		var filtered []learn.Lesson
		for _, l := range lessons {
			if strings.HasPrefix(l.Name, prefix) {
				filtered = append(filtered, l)
			}
		}
		lessons = filtered
	}
	if len(lessons) == 0 {
		return "", fmt.Errorf("no lessons found")
	}

	if canUseFZF() {
		names := make([]string, len(lessons))
		for i, l := range lessons {
			names[i] = l.Name
		}
		name, ok, err := runFZF(names, fzfOptions{Prompt: "lesson> "})
		if err != nil || !ok {
			return "", err
		}
		return name, nil
	}

	// Fall back to the first uncompleted lesson.
	meta, err := store.LoadMetadata()
	if err != nil {
		return "", err
	}
	for _, l := range lessons {
		if !meta.IsCompleted(l.Name) {
			return l.Name, nil
		}
	}
	return "", fmt.Errorf("all lessons completed")
}

func statusGlyph(status string) string {
	switch status {
	case learn.StatusCompleted:
		return ui.SymbolSuccess
	case learn.StatusCurrent:
		return "▶"
	default:
		return "·"
	}
}

func init() {
	learnListCmd.Flags().BoolVar(&learnListCompleted, "completed", false, "Show only completed lessons")
	learnListCmd.Flags().BoolVar(&learnListPending, "pending", false, "Show only pending lessons")
	learnListCmd.Flags().BoolVar(&learnListFlat, "flat", false, "Only top-level lessons")

	learnStartCmd.Flags().StringVar(&learnStartDir, "folder", "", "Limit selection to a lesson subdirectory")

	learnCmd.AddCommand(learnCurrentCmd, learnListCmd, learnStartCmd, learnCompleteCmd,
		learnNextCmd, learnStatsCmd, learnResetCmd)
	rootCmd.AddCommand(learnCmd)
}
