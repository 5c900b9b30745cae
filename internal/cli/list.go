package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/lists"
	"github.com/jepemo/mystuff/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage checklists",
}

var listCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := lists.NewStore(getDataDir())
		l, err := store.Create(args[0])
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("Created list %s (%s)", l.Name, ui.FilePath(l.Path)))
		return nil
	},
}

var listAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Show every list with completion counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := lists.NewStore(getDataDir())
		all, err := store.All()
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println(ui.Info("No lists found"))
			return nil
		}
		table := ui.NewTable(2)
		for _, l := range all {
			table.AddRow(l.Name, fmt.Sprintf("%d/%d done", l.CheckedCount(), len(l.Items)))
		}
		fmt.Print(table.String())
		return nil
	},
}

var listViewCmd = &cobra.Command{
	Use:   "view <name>",
	Short: "Show a list's items",
	Long: `Shows a list. In an interactive terminal with fzf installed, picking an
item toggles its checked state.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := lists.NewStore(getDataDir())
		l, err := store.Load(args[0])
		if err != nil {
			return err
		}
		if l == nil {
			return fmt.Errorf("no list named %q", args[0])
		}

		if canUseFZF() && len(l.Items) > 0 {
			return toggleListItem(store, l)
		}

		printList(l)
		return nil
	},
}

var listAddCmd = &cobra.Command{
	Use:   "add <name> <text>",
	Short: "Add an item to a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := lists.NewStore(getDataDir())
		if err := store.AddItem(args[0], args[1]); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Added %q to %s", args[1], args[0]))
		return nil
	},
}

var listRemoveCmd = &cobra.Command{
	Use:   "remove <name> <text>",
	Short: "Remove an item from a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := lists.NewStore(getDataDir())
		if err := store.RemoveItem(args[0], args[1]); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Removed %q from %s", args[1], args[0]))
		return nil
	},
}

var listCheckCmd = &cobra.Command{
	Use:   "check <name> <text>",
	Short: "Mark an item as done",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := lists.NewStore(getDataDir())
		if err := store.SetChecked(args[0], args[1], true); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Checked %q", args[1]))
		return nil
	},
}

var listUncheckCmd = &cobra.Command{
	Use:   "uncheck <name> <text>",
	Short: "Mark an item as pending",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := lists.NewStore(getDataDir())
		if err := store.SetChecked(args[0], args[1], false); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Unchecked %q", args[1]))
		return nil
	},
}

var listDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := lists.NewStore(getDataDir())
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Deleted list %s", args[0]))
		return nil
	},
}

var listSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search lists by name or item text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := lists.NewStore(getDataDir())
		all, err := store.All()
		if err != nil {
			return err
		}
		matches := lists.Search(all, args[0])
		if len(matches) == 0 {
			fmt.Println(ui.Infof("No lists matching %q", args[0]))
			return nil
		}
		for _, l := range matches {
			printList(l)
		}
		return nil
	},
}

var listExportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Export a list to CSV or YAML (by file extension)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := lists.NewStore(getDataDir())
		l, err := store.Load(args[0])
		if err != nil {
			return err
		}
		if l == nil {
			return fmt.Errorf("no list named %q", args[0])
		}

		out := args[1]
		switch strings.ToLower(filepath.Ext(out)) {
		case ".csv":
			err = lists.ExportCSV(l, out)
		case ".yaml", ".yml":
			err = lists.ExportYAML(l, out)
		default:
			return fmt.Errorf("unsupported export format %q, expected .csv or .yaml", filepath.Ext(out))
		}
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("Exported %s to %s", l.Name, ui.FilePath(out)))
		return nil
	},
}

var listImportCmd = &cobra.Command{
	Use:   "import <name> <file>",
	Short: "Import list items from CSV or YAML (by file extension)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := lists.NewStore(getDataDir())

		var l *lists.List
		var err error
		switch strings.ToLower(filepath.Ext(args[1])) {
		case ".csv":
			l, err = store.ImportCSV(args[0], args[1])
		case ".yaml", ".yml":
			l, err = store.ImportYAML(args[0], args[1])
		default:
			return fmt.Errorf("unsupported import format %q, expected .csv or .yaml", filepath.Ext(args[1]))
		}
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("Imported %s into %s", ui.Count(len(l.Items), "item", "items"), l.Name))
		return nil
	},
}

func toggleListItem(store *lists.Store, l *lists.List) error {
	lines := make([]string, len(l.Items))
	for i, item := range l.Items {
		mark := "[ ]"
		if item.Checked {
			mark = "[x]"
		}
		lines[i] = fmt.Sprintf("%s %s", mark, item.Text)
	}
	line, ok, err := runFZF(lines, fzfOptions{
		Prompt: l.Name + "> ",
		Header: "Select an item to toggle",
	})
	if err != nil || !ok {
		return err
	}

	checked := strings.HasPrefix(line, "[ ]")
	text := strings.TrimSpace(line[3:])
	if err := store.SetChecked(l.Name, text, checked); err != nil {
		return err
	}
	if checked {
		fmt.Println(ui.Successf("Checked %q", text))
	} else {
		fmt.Println(ui.Successf("Unchecked %q", text))
	}
	return nil
}

func printList(l *lists.List) {
	fmt.Printf("%s (%d/%d done)\n", ui.Header(l.Name), l.CheckedCount(), len(l.Items))
	for _, item := range l.Items {
		mark := "[ ]"
		if item.Checked {
			mark = "[x]"
		}
		fmt.Printf("  %s %s\n", mark, item.Text)
	}
}

func init() {
	listCmd.AddCommand(listCreateCmd, listAllCmd, listViewCmd, listAddCmd, listRemoveCmd,
		listCheckCmd, listUncheckCmd, listDeleteCmd, listSearchCmd, listExportCmd, listImportCmd)
	rootCmd.AddCommand(listCmd)
}
