package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/index"
	"github.com/jepemo/mystuff/internal/ui"
)

var (
	searchStore string
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search across wiki, journal, meetings, and lists",
	Long: `Searches the full-text index. Run 'mystuff reindex' first (and after bulk
edits); individual commands do not keep the index up to date.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(getDataDir())
		if err != nil {
			return err
		}
		defer db.Close()

		var results []index.SearchResult
		if searchStore != "" {
			results, err = db.SearchStore(args[0], searchStore, searchLimit)
		} else {
			results, err = db.Search(args[0], searchLimit)
		}
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println(ui.Infof("No results for %q", args[0]))
			return nil
		}

		for _, r := range results {
			fmt.Printf("%s %s\n", ui.Header(r.Title), ui.Hint("("+r.Store+")"))
			snippet := strings.TrimSpace(strings.ReplaceAll(r.Snippet, "\n", " "))
			if snippet != "" {
				fmt.Printf("  %s\n", snippet)
			}
			fmt.Printf("  %s\n", ui.FilePath(r.Path))
		}
		fmt.Println(ui.Hint(ui.Count(len(results), "result", "results")))
		return nil
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the full-text search index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(getDataDir())
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.Rebuild(getDataDir())
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("Indexed %s", ui.Count(n, "document", "documents")))
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchStore, "store", "s", "", "Limit to one store (wiki, journal, meeting, list)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum number of results")

	rootCmd.AddCommand(searchCmd, reindexCmd)
}
