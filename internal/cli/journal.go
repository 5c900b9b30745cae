package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/journal"
	"github.com/jepemo/mystuff/internal/ui"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage daily journal entries",
}

var journalAddTags []string

var journalAddCmd = &cobra.Command{
	Use:   "add [date]",
	Short: "Create a journal entry and open it in the editor",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := journal.NewStore(getDataDir())
		date := time.Now().Format(journal.DateLayout)
		if len(args) == 1 {
			date = args[0]
		}
		if err := journal.ValidateDate(date); err != nil {
			return err
		}

		if !store.Exists(date) {
			entry := &journal.Entry{Date: date, Tags: journalAddTags, Body: journal.DefaultBody}
			if err := store.Save(entry); err != nil {
				return err
			}
			fmt.Println(ui.Successf("Created journal entry for %s", date))
		} else {
			fmt.Println(ui.Infof("Journal entry for %s already exists", date))
		}

		return openInEditor(store.EntryPath(date))
	},
}

var (
	journalListRange string
	journalListLimit int
)

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := journal.NewStore(getDataDir())
		entries, err := store.List()
		if err != nil {
			return err
		}
		if journalListRange != "" {
			start, end, err := journal.ParseRange(journalListRange)
			if err != nil {
				return err
			}
			entries = journal.FilterRange(entries, start, end)
		}
		if journalListLimit > 0 && len(entries) > journalListLimit {
			entries = entries[:journalListLimit]
		}
		if len(entries) == 0 {
			fmt.Println(ui.Info("No journal entries found"))
			return nil
		}

		if canUseFZF() {
			dates := make([]string, len(entries))
			for i, e := range entries {
				dates[i] = e.Date
			}
			date, ok, err := runFZF(dates, fzfOptions{Prompt: "journal> "})
			if err != nil || !ok {
				return err
			}
			return viewJournalEntry(store, date)
		}

		for _, e := range entries {
			fmt.Println(e.Date)
		}
		fmt.Println(ui.Hint(ui.Count(len(entries), "entry", "entries")))
		return nil
	},
}

var journalViewCmd = &cobra.Command{
	Use:   "view [date]",
	Short: "Render a journal entry in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := journal.NewStore(getDataDir())
		date := time.Now().Format(journal.DateLayout)
		if len(args) == 1 {
			date = args[0]
		}
		return viewJournalEntry(store, date)
	},
}

var journalEditCmd = &cobra.Command{
	Use:   "edit [date]",
	Short: "Open a journal entry in the editor",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := journal.NewStore(getDataDir())
		date := time.Now().Format(journal.DateLayout)
		if len(args) == 1 {
			date = args[0]
		}
		if err := journal.ValidateDate(date); err != nil {
			return err
		}

		if !store.Exists(date) {
			if !promptForConfirm(fmt.Sprintf("No entry for %s. Create it?", date)) {
				return nil
			}
			entry := &journal.Entry{Date: date, Body: journal.DefaultBody}
			if err := store.Save(entry); err != nil {
				return err
			}
		}
		return openInEditor(store.EntryPath(date))
	},
}

var journalSearchRange string

var journalSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search journal entries by body or tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := journal.NewStore(getDataDir())
		entries, err := store.List()
		if err != nil {
			return err
		}
		if journalSearchRange != "" {
			start, end, err := journal.ParseRange(journalSearchRange)
			if err != nil {
				return err
			}
			entries = journal.FilterRange(entries, start, end)
		}
		matches := journal.SearchText(entries, args[0])
		if len(matches) == 0 {
			fmt.Println(ui.Infof("No entries matching %q", args[0]))
			return nil
		}
		for _, e := range matches {
			fmt.Println(e.Date)
		}
		return nil
	},
}

func viewJournalEntry(store *journal.Store, date string) error {
	entry, err := store.Load(date)
	if err != nil {
		return fmt.Errorf("no journal entry for %s", date)
	}
	display := ui.NewDisplayContext()
	rendered, err := ui.RenderMarkdown("# "+entry.Date+"\n\n"+entry.Body, display.Width)
	if err != nil {
		fmt.Println(entry.Body)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

func openInEditor(path string) error {
	if err := editorOpen(path); err != nil {
		fmt.Fprintln(os.Stderr, ui.Warningf("%v", err))
	}
	return nil
}

func init() {
	journalAddCmd.Flags().StringSliceVar(&journalAddTags, "tags", nil, "Comma-separated tags")
	journalListCmd.Flags().StringVarP(&journalListRange, "range", "r", "", "Date range DATE or START:END")
	journalListCmd.Flags().IntVarP(&journalListLimit, "limit", "n", 0, "Show at most N entries")
	journalSearchCmd.Flags().StringVarP(&journalSearchRange, "range", "r", "", "Date range DATE or START:END")

	journalCmd.AddCommand(journalAddCmd, journalListCmd, journalViewCmd, journalEditCmd, journalSearchCmd)
	rootCmd.AddCommand(journalCmd)
}
