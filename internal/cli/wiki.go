package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/ui"
	"github.com/jepemo/mystuff/internal/wiki"
)

var wikiCmd = &cobra.Command{
	Use:   "wiki",
	Short: "Manage wiki notes with backlinks",
}

func wikiStore() *wiki.Store {
	return wiki.NewStore(filepath.Join(getDataDir(), wiki.DirName))
}

var (
	wikiAddTags    []string
	wikiAddAliases []string
)

var wikiAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a wiki note and open it in the editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := wikiStore()
		note, err := store.Create(args[0], wikiAddTags, wikiAddAliases, "")
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("Created %s", ui.FilePath(note.Path)))
		if err := openInEditor(note.Path); err != nil {
			return err
		}
		return reindexWiki(store)
	},
}

var wikiListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wiki notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := wikiStore()
		notes, err := store.List()
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println(ui.Info("No wiki notes found"))
			return nil
		}

		if canUseFZF() {
			note, ok, err := pickNote(notes, "wiki> ")
			if err != nil || !ok {
				return err
			}
			return viewNote(note)
		}

		table := ui.NewTable(3)
		for _, n := range notes {
			table.AddRow(n.Title, strings.Join(n.Tags, ","), ui.Count(len(n.Backlinks), "backlink", "backlinks"))
		}
		fmt.Print(table.String())
		fmt.Println(ui.Hint(ui.Count(len(notes), "note", "notes")))
		return nil
	},
}

var wikiViewGraph bool

var wikiViewCmd = &cobra.Command{
	Use:   "view [title]",
	Short: "Render a wiki note in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := wikiStore()
		note, err := findNoteFromArgsOrPicker(store, args, "view")
		if err != nil || note == nil {
			return err
		}
		if wikiViewGraph {
			fmt.Print(store.BacklinkGraph(note))
			return nil
		}
		return viewNote(note)
	},
}

var wikiEditCmd = &cobra.Command{
	Use:   "edit [title]",
	Short: "Open a wiki note in the editor",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := wikiStore()
		note, err := findNoteFromArgsOrPicker(store, args, "edit")
		if err != nil || note == nil {
			return err
		}
		if err := openInEditor(note.Path); err != nil {
			return err
		}
		return reindexWiki(store)
	},
}

var wikiDeleteCmd = &cobra.Command{
	Use:   "delete [title]",
	Short: "Delete a wiki note",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := wikiStore()
		note, err := findNoteFromArgsOrPicker(store, args, "delete")
		if err != nil || note == nil {
			return err
		}
		if err := store.Delete(note); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Deleted %s", note.Title))
		return reindexWiki(store)
	},
}

var wikiBacklinksCmd = &cobra.Command{
	Use:   "backlinks <title>",
	Short: "Show the notes linking to a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := wikiStore()
		note, err := store.Find(args[0])
		if err != nil {
			return err
		}
		if note == nil {
			return fmt.Errorf("no wiki note matching %q", args[0])
		}
		if len(note.Backlinks) == 0 {
			fmt.Println(ui.Infof("No backlinks to %s", note.Title))
			return nil
		}
		fmt.Println(ui.Header(note.Title))
		for _, slug := range note.Backlinks {
			fmt.Printf("  %s\n", slug)
		}
		return nil
	},
}

var wikiSearchGraph bool

var wikiSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search wiki notes by title, tags, aliases, or content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := wikiStore()
		notes, err := store.List()
		if err != nil {
			return err
		}
		matches := wiki.SearchText(notes, args[0])
		if len(matches) == 0 {
			fmt.Println(ui.Infof("No wiki notes matching %q", args[0]))
			return nil
		}

		if canUseFZF() {
			note, ok, err := pickNote(matches, "search> ")
			if err != nil || !ok {
				return err
			}
			if wikiSearchGraph {
				fmt.Print(store.BacklinkGraph(note))
				return nil
			}
			if err := openInEditor(note.Path); err != nil {
				return err
			}
			return reindexWiki(store)
		}

		for _, n := range matches {
			if wikiSearchGraph {
				fmt.Print(store.BacklinkGraph(n))
				continue
			}
			line := n.Title
			if len(n.Tags) > 0 {
				line += " [" + strings.Join(n.Tags, ", ") + "]"
			}
			if len(n.Aliases) > 0 {
				line += " (" + strings.Join(n.Aliases, ", ") + ")"
			}
			fmt.Println(line)
		}
		fmt.Println(ui.Hint(ui.Count(len(matches), "note", "notes")))
		return nil
	},
}

var wikiReindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Recompute backlinks for every wiki note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reindexWiki(wikiStore())
	},
}

// reindexWiki recomputes backlinks and reports the result. Per-note write
// failures do not stop the pass but make the command fail.
func reindexWiki(store *wiki.Store) error {
	result, err := store.Reindex()
	if err != nil {
		return err
	}
	fmt.Println(ui.Successf("Scanned %s, updated %d",
		ui.Count(result.Scanned, "note", "notes"), result.Updated))
	if len(result.Failures) > 0 {
		for _, failure := range result.Failures {
			fmt.Fprintln(os.Stderr, ui.Errorf("%v", failure))
		}
		return fmt.Errorf("%d notes could not be updated", len(result.Failures))
	}
	return nil
}

func findNoteFromArgsOrPicker(store *wiki.Store, args []string, commandName string) (*wiki.Note, error) {
	if len(args) == 1 {
		note, err := store.Find(args[0])
		if err != nil {
			return nil, err
		}
		if note == nil {
			return nil, fmt.Errorf("no wiki note matching %q", args[0])
		}
		return note, nil
	}
	if !canUseFZF() {
		return nil, fmt.Errorf("no title given\n\n%s",
			missingArgSuggestion("wiki "+commandName, fmt.Sprintf("mystuff wiki %s <title>", commandName)))
	}
	notes, err := store.List()
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("no wiki notes stored")
	}
	note, ok, err := pickNote(notes, commandName+"> ")
	if err != nil || !ok {
		return nil, err
	}
	return note, nil
}

func pickNote(notes []*wiki.Note, prompt string) (*wiki.Note, bool, error) {
	lines := make([]string, len(notes))
	for i, n := range notes {
		lines[i] = fmt.Sprintf("%s\t%s", n.Slug(), n.Title)
	}
	line, ok, err := runFZF(lines, fzfOptions{Prompt: prompt})
	if err != nil || !ok {
		return nil, ok, err
	}
	slug := strings.SplitN(line, "\t", 2)[0]
	for _, n := range notes {
		if n.Slug() == slug {
			return n, true, nil
		}
	}
	return nil, false, nil
}

func viewNote(note *wiki.Note) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", note.Title)
	if len(note.Tags) > 0 {
		fmt.Fprintf(&sb, "**Tags:** %s\n\n", strings.Join(note.Tags, ", "))
	}
	sb.WriteString(note.Body)
	if len(note.Backlinks) > 0 {
		sb.WriteString("\n\n---\n\n**Backlinks:** " + strings.Join(note.Backlinks, ", ") + "\n")
	}

	display := ui.NewDisplayContext()
	rendered, err := ui.RenderMarkdown(sb.String(), display.Width)
	if err != nil {
		fmt.Println(sb.String())
		return nil
	}
	fmt.Print(rendered)
	return nil
}

func init() {
	wikiAddCmd.Flags().StringSliceVar(&wikiAddTags, "tags", nil, "Comma-separated tags")
	wikiAddCmd.Flags().StringSliceVar(&wikiAddAliases, "aliases", nil, "Comma-separated aliases")
	wikiViewCmd.Flags().BoolVar(&wikiViewGraph, "graph", false, "Show an ASCII graph of backlinks instead of the note")
	wikiSearchCmd.Flags().BoolVar(&wikiSearchGraph, "graph", false, "Show backlink graphs for the matches")

	wikiCmd.AddCommand(wikiAddCmd, wikiListCmd, wikiViewCmd, wikiEditCmd, wikiDeleteCmd,
		wikiBacklinksCmd, wikiSearchCmd, wikiReindexCmd)
	rootCmd.AddCommand(wikiCmd)
}
