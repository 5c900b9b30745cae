package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/evals"
	"github.com/jepemo/mystuff/internal/journal"
	"github.com/jepemo/mystuff/internal/ui"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Manage self-evaluations",
}

var (
	evalAddDate     string
	evalAddComments string
)

var evalAddCmd = &cobra.Command{
	Use:   "add <category> <score>",
	Short: "Record a self-evaluation score (1-10)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid score %q, expected a number", args[1])
		}
		date := evalAddDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		store := evals.NewStore(getDataDir())
		updated, err := store.Add(evals.Evaluation{
			Date:     date,
			Category: args[0],
			Score:    score,
			Comments: evalAddComments,
		})
		if err != nil {
			return err
		}
		if updated {
			fmt.Println(ui.Successf("Updated %s on %s: %d/10", args[0], date, score))
		} else {
			fmt.Println(ui.Successf("Recorded %s on %s: %d/10", args[0], date, score))
		}
		return nil
	},
}

var (
	evalListRange    string
	evalListCategory string
)

var evalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List evaluations, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := evals.NewStore(getDataDir())
		all, err := store.All()
		if err != nil {
			return err
		}
		if evalListRange != "" {
			start, end, err := journal.ParseRange(evalListRange)
			if err != nil {
				return err
			}
			all = evals.FilterRange(all, start, end)
		}
		if evalListCategory != "" {
			all = evals.FilterCategory(all, evalListCategory)
		}
		if len(all) == 0 {
			fmt.Println(ui.Info("No evaluations found"))
			return nil
		}

		table := ui.NewTable(4)
		for _, e := range all {
			table.AddRow(e.Date, e.Category, fmt.Sprintf("%d/10", e.Score), e.Comments)
		}
		fmt.Print(table.String())
		return nil
	},
}

var evalDeleteCmd = &cobra.Command{
	Use:   "delete <date> <category>",
	Short: "Delete an evaluation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := evals.NewStore(getDataDir())
		removed, err := store.Delete(args[0], args[1])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no evaluation for %s on %s", args[1], args[0])
		}
		fmt.Println(ui.Successf("Deleted %s on %s", args[1], args[0]))
		return nil
	},
}

var evalReportRange string

var evalReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a markdown evaluation report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := evals.NewStore(getDataDir())
		all, err := store.All()
		if err != nil {
			return err
		}

		var start, end string
		if evalReportRange != "" {
			start, end, err = journal.ParseRange(evalReportRange)
			if err != nil {
				return err
			}
		} else {
			// Default to the trailing year.
			now := time.Now()
			end = now.Format("2006-01-02")
			start = now.AddDate(-1, 0, 0).Format("2006-01-02")
		}
		all = evals.FilterRange(all, start, end)

		report := evals.Report(all)
		display := ui.NewDisplayContext()
		rendered, err := ui.RenderMarkdown(report, display.Width)
		if err != nil {
			fmt.Println(report)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

var evalSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search evaluations by category or comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := evals.NewStore(getDataDir())
		all, err := store.All()
		if err != nil {
			return err
		}
		matches := evals.SearchText(all, args[0])
		if len(matches) == 0 {
			fmt.Println(ui.Infof("No evaluations matching %q", args[0]))
			return nil
		}
		table := ui.NewTable(4)
		for _, e := range matches {
			table.AddRow(e.Date, e.Category, fmt.Sprintf("%d/10", e.Score), e.Comments)
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	evalAddCmd.Flags().StringVar(&evalAddDate, "date", "", "Evaluation date YYYY-MM-DD (defaults to today)")
	evalAddCmd.Flags().StringVarP(&evalAddComments, "comments", "c", "", "Optional comments")

	evalListCmd.Flags().StringVarP(&evalListRange, "range", "r", "", "Date range DATE or START:END")
	evalListCmd.Flags().StringVar(&evalListCategory, "category", "", "Filter by category")

	evalReportCmd.Flags().StringVarP(&evalReportRange, "range", "r", "", "Date range DATE or START:END (defaults to the trailing year)")

	evalCmd.AddCommand(evalAddCmd, evalListCmd, evalDeleteCmd, evalReportCmd, evalSearchCmd)
	rootCmd.AddCommand(evalCmd)
}
