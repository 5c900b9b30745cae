package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jepemo/mystuff/internal/meetings"
	"github.com/jepemo/mystuff/internal/ui"
)

var meetingCmd = &cobra.Command{
	Use:   "meeting",
	Short: "Manage meeting notes",
}

var (
	meetingAddDate         string
	meetingAddParticipants string
	meetingAddTags         []string
	meetingAddTemplate     string
)

var meetingAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a meeting note and open it in the editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := meetings.NewStore(getDataDir())
		title := args[0]
		date := meetingAddDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}
		if store.Exists(date, title) {
			return fmt.Errorf("meeting %q on %s already exists", title, date)
		}

		body := meetings.DefaultBody
		if meetingAddTemplate != "" {
			data, err := os.ReadFile(meetingAddTemplate)
			if err != nil {
				return fmt.Errorf("read template: %w", err)
			}
			body = string(data)
		}

		m := &meetings.Meeting{
			Title:        title,
			Date:         date,
			Participants: meetings.ParseParticipants(meetingAddParticipants),
			Tags:         meetingAddTags,
			Body:         body,
		}
		if err := store.Save(m); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Created meeting %s", ui.FilePath(m.Path)))
		return openInEditor(m.Path)
	},
}

var (
	meetingListSearch string
	meetingListTag    string
	meetingListDate   string
)

var meetingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meetings, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := meetings.NewStore(getDataDir())
		all, err := store.List()
		if err != nil {
			return err
		}
		if meetingListSearch != "" {
			all = meetings.Search(all, meetingListSearch)
		}
		if meetingListTag != "" {
			all = meetings.FilterByTag(all, meetingListTag)
		}
		if meetingListDate != "" {
			var filtered []*meetings.Meeting
			for _, m := range all {
				if m.Date == meetingListDate {
					filtered = append(filtered, m)
				}
			}
			all = filtered
		}
		if len(all) == 0 {
			fmt.Println(ui.Info("No meetings found"))
			return nil
		}

		if canUseFZF() {
			m, ok, err := pickMeeting(all, "meeting> ")
			if err != nil || !ok {
				return err
			}
			return viewMeeting(m)
		}

		table := ui.NewTable(3)
		for _, m := range all {
			table.AddRow(m.Date, m.Title, strings.Join(m.Participants, ", "))
		}
		fmt.Print(table.String())
		fmt.Println(ui.Hint(ui.Count(len(all), "meeting", "meetings")))
		return nil
	},
}

var meetingEditDate string

var meetingEditCmd = &cobra.Command{
	Use:   "edit [title]",
	Short: "Open a meeting note in the editor",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := meetings.NewStore(getDataDir())
		m, err := findMeetingFromArgsOrPicker(store, args, meetingEditDate, "edit")
		if err != nil || m == nil {
			return err
		}
		return openInEditor(m.Path)
	},
}

var meetingDeleteDate string

var meetingDeleteCmd = &cobra.Command{
	Use:   "delete [title]",
	Short: "Delete a meeting note",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := meetings.NewStore(getDataDir())
		m, err := findMeetingFromArgsOrPicker(store, args, meetingDeleteDate, "delete")
		if err != nil || m == nil {
			return err
		}
		if err := store.Delete(m); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Deleted %s (%s)", m.Title, m.Date))
		return nil
	},
}

var meetingSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search meetings by title, date, participants, or body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := meetings.NewStore(getDataDir())
		all, err := store.List()
		if err != nil {
			return err
		}
		matches := meetings.Search(all, args[0])
		if len(matches) == 0 {
			fmt.Println(ui.Infof("No meetings matching %q", args[0]))
			return nil
		}
		for _, m := range matches {
			fmt.Printf("%s  %s\n", m.Date, m.Title)
		}
		return nil
	},
}

func findMeetingFromArgsOrPicker(store *meetings.Store, args []string, date, commandName string) (*meetings.Meeting, error) {
	if len(args) == 1 {
		return store.Find(args[0], date)
	}
	if !canUseFZF() {
		return nil, fmt.Errorf("no title given\n\n%s",
			missingArgSuggestion("meeting "+commandName, fmt.Sprintf("mystuff meeting %s <title>", commandName)))
	}
	all, err := store.List()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no meetings stored")
	}
	m, ok, err := pickMeeting(all, commandName+"> ")
	if err != nil || !ok {
		return nil, err
	}
	return m, nil
}

func pickMeeting(all []*meetings.Meeting, prompt string) (*meetings.Meeting, bool, error) {
	lines := make([]string, len(all))
	for i, m := range all {
		lines[i] = fmt.Sprintf("%s\t%s", m.Date, m.Title)
	}
	line, ok, err := runFZF(lines, fzfOptions{Prompt: prompt})
	if err != nil || !ok {
		return nil, ok, err
	}
	for i, l := range lines {
		if l == line {
			return all[i], true, nil
		}
	}
	return nil, false, nil
}

func viewMeeting(m *meetings.Meeting) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", m.Title)
	fmt.Fprintf(&sb, "**Date:** %s\n\n", m.Date)
	if len(m.Participants) > 0 {
		fmt.Fprintf(&sb, "**Participants:** %s\n\n", strings.Join(m.Participants, ", "))
	}
	sb.WriteString(m.Body)

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
	meetingAddCmd.Flags().StringVar(&meetingAddDate, "date", "", "Meeting date YYYY-MM-DD (defaults to today)")
	meetingAddCmd.Flags().StringVarP(&meetingAddParticipants, "participants", "p", "", "Comma-separated participants")
	meetingAddCmd.Flags().StringSliceVar(&meetingAddTags, "tags", nil, "Comma-separated tags")
	meetingAddCmd.Flags().StringVar(&meetingAddTemplate, "template", "", "Path to a body template file")

	meetingListCmd.Flags().StringVarP(&meetingListSearch, "search", "s", "", "Filter by substring")
	meetingListCmd.Flags().StringVar(&meetingListTag, "tag", "", "Filter by exact tag")
	meetingListCmd.Flags().StringVar(&meetingListDate, "date", "", "Filter by date YYYY-MM-DD")

	meetingEditCmd.Flags().StringVar(&meetingEditDate, "date", "", "Disambiguate by date YYYY-MM-DD")
	meetingDeleteCmd.Flags().StringVar(&meetingDeleteDate, "date", "", "Disambiguate by date YYYY-MM-DD")

	meetingCmd.AddCommand(meetingAddCmd, meetingListCmd, meetingEditCmd, meetingDeleteCmd, meetingSearchCmd)
	rootCmd.AddCommand(meetingCmd)
}
