package cli

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/links"
	"github.com/jepemo/mystuff/internal/ui"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage bookmarked links",
}

var (
	linkAddTitle       string
	linkAddDescription string
	linkAddTags        []string
)

var linkAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := links.NewStore(getDataDir())
		link, added, err := store.Add(args[0], linkAddTitle, linkAddDescription, linkAddTags)
		if err != nil {
			return err
		}
		if !added {
			fmt.Println(ui.Infof("Link already exists: %s", link.URL))
			return nil
		}
		fmt.Println(ui.Successf("Added %s (%s)", link.Title, link.URL))
		return nil
	},
}

var (
	linkListSearch string
	linkListTag    string
)

var linkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := links.NewStore(getDataDir())
		all, err := store.Load()
		if err != nil {
			return err
		}
		if linkListSearch != "" {
			all = links.Search(all, linkListSearch)
		}
		if linkListTag != "" {
			all = links.FilterByTag(all, linkListTag)
		}
		if len(all) == 0 {
			fmt.Println(ui.Info("No links found"))
			return nil
		}

		if canUseFZF() {
			selected, ok, err := pickLink(all, "link> ")
			if err != nil || !ok {
				return err
			}
			printLink(*selected)
			return nil
		}

		table := ui.NewTable(3)
		for _, l := range all {
			table.AddRow(l.Title, l.URL, strings.Join(l.Tags, ","))
		}
		fmt.Print(table.String())
		fmt.Println(ui.Hint(ui.Count(len(all), "link", "links")))
		return nil
	},
}

var (
	linkEditTitle       string
	linkEditDescription string
	linkEditTags        []string
)

var linkEditCmd = &cobra.Command{
	Use:   "edit [url]",
	Short: "Edit a link's title, description, or tags",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := links.NewStore(getDataDir())
		url, err := linkURLFromArgsOrPicker(store, args, "edit", "mystuff link edit <url>")
		if err != nil {
			return err
		}
		if url == "" {
			return nil
		}

		var desc *string
		if cmd.Flags().Changed("description") {
			desc = &linkEditDescription
		}
		var tags []string
		if cmd.Flags().Changed("tags") {
			tags = linkEditTags
		}
		link, err := store.Edit(url, linkEditTitle, desc, tags)
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("Updated %s", link.URL))
		return nil
	},
}

var linkDeleteCmd = &cobra.Command{
	Use:   "delete [url]",
	Short: "Delete a link",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := links.NewStore(getDataDir())
		url, err := linkURLFromArgsOrPicker(store, args, "delete", "mystuff link delete <url>")
		if err != nil {
			return err
		}
		if url == "" {
			return nil
		}
		if err := store.Delete(url); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Deleted %s", url))
		return nil
	},
}

var linkSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search links by title, description, or tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := links.NewStore(getDataDir())
		all, err := store.Load()
		if err != nil {
			return err
		}
		matches := links.Search(all, args[0])
		if len(matches) == 0 {
			fmt.Println(ui.Infof("No links matching %q", args[0]))
			return nil
		}
		for _, l := range matches {
			printLink(l)
		}
		return nil
	},
}

var linkImportStarsCmd = &cobra.Command{
	Use:   "import-stars <github-username>",
	Short: "Import starred GitHub repositories as links",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]
		fmt.Println(ui.Infof("Fetching stars for %s...", username))

		client := &http.Client{Timeout: 30 * time.Second}
		stars, err := links.FetchGithubStars(client, username)
		if err != nil {
			return err
		}

		store := links.NewStore(getDataDir())
		imported, err := store.ImportStars(stars)
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("Imported %s (%d already present)",
			ui.Count(imported, "star", "stars"), len(stars)-imported))
		return nil
	},
}

func linkURLFromArgsOrPicker(store *links.Store, args []string, commandName, usage string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !canUseFZF() {
		return "", fmt.Errorf("no url given\n\n%s", missingArgSuggestion("link "+commandName, usage))
	}
	all, err := store.Load()
	if err != nil {
		return "", err
	}
	if len(all) == 0 {
		return "", fmt.Errorf("no links stored")
	}
	selected, ok, err := pickLink(all, commandName+"> ")
	if err != nil || !ok {
		return "", err
	}
	return selected.URL, nil
}

func pickLink(all []links.Link, prompt string) (*links.Link, bool, error) {
	lines := make([]string, len(all))
	for i, l := range all {
		lines[i] = fmt.Sprintf("%s\t%s", l.URL, l.Title)
	}
	line, ok, err := runFZF(lines, fzfOptions{Prompt: prompt})
	if err != nil || !ok {
		return nil, ok, err
	}
	url := strings.SplitN(line, "\t", 2)[0]
	for i := range all {
		if all[i].URL == url {
			return &all[i], true, nil
		}
	}
	return nil, false, nil
}

func printLink(l links.Link) {
	fmt.Printf("%s\n  %s\n", ui.Header(l.Title), ui.FilePath(l.URL))
	if l.Description != "" {
		fmt.Printf("  %s\n", l.Description)
	}
	if len(l.Tags) > 0 {
		fmt.Printf("  %s\n", ui.Hint(strings.Join(l.Tags, ", ")))
	}
}

func init() {
	linkAddCmd.Flags().StringVarP(&linkAddTitle, "title", "t", "", "Link title (defaults to the URL host)")
	linkAddCmd.Flags().StringVar(&linkAddDescription, "description", "", "Link description")
	linkAddCmd.Flags().StringSliceVar(&linkAddTags, "tags", nil, "Comma-separated tags")

	linkListCmd.Flags().StringVarP(&linkListSearch, "search", "s", "", "Filter by substring")
	linkListCmd.Flags().StringVar(&linkListTag, "tag", "", "Filter by exact tag")

	linkEditCmd.Flags().StringVarP(&linkEditTitle, "title", "t", "", "New title")
	linkEditCmd.Flags().StringVar(&linkEditDescription, "description", "", "New description")
	linkEditCmd.Flags().StringSliceVar(&linkEditTags, "tags", nil, "New comma-separated tags")

	linkCmd.AddCommand(linkAddCmd, linkListCmd, linkEditCmd, linkDeleteCmd, linkSearchCmd, linkImportStarsCmd)
	rootCmd.AddCommand(linkCmd)
}
