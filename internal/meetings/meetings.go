// Package meetings manages meeting notes stored as
// meetings/YYYY-MM-DD_{slug}.md files with YAML front-matter.
package meetings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jepemo/mystuff/internal/atomicfile"
	"github.com/jepemo/mystuff/internal/frontmatter"
	"github.com/jepemo/mystuff/internal/slugs"
)

// DirName is the meetings directory inside the data directory.
const DirName = "meetings"

// DefaultBody seeds new meeting notes created without explicit content.
const DefaultBody = `## Agenda

-

## Notes

-

## Action Items

- [ ]
`

// ErrAmbiguous is returned when a title matches several meetings and no date
// was given to disambiguate.
var ErrAmbiguous = errors.New("multiple meetings match, specify a date")

// Meeting is one meeting note.
type Meeting struct {
	Title        string
	Date         string
	Participants []string
	Tags         []string
	Body         string
	Path         string
}

type meetingMeta struct {
	Title        string   `yaml:"title"`
	Date         string   `yaml:"date"`
	Participants []string `yaml:"participants"`
	Tags         []string `yaml:"tags"`
}

// Store manages the meetings directory.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dataDir/meetings.
func NewStore(dataDir string) *Store {
	return &Store{Dir: filepath.Join(dataDir, DirName)}
}

// FileName builds the canonical filename for a meeting.
func FileName(date, title string) string {
	return fmt.Sprintf("%s_%s.md", date, slugs.Title(title))
}

// ParseParticipants splits a comma-separated participant list.
func ParseParticipants(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Save writes the meeting under its canonical filename.
func (s *Store) Save(m *Meeting) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	meta := meetingMeta{
		Title:        m.Title,
		Date:         m.Date,
		Participants: orEmpty(m.Participants),
		Tags:         orEmpty(m.Tags),
	}
	data, err := frontmatter.Compose(meta, m.Body)
	if err != nil {
		return err
	}
	path := filepath.Join(s.Dir, FileName(m.Date, m.Title))
	if err := atomicfile.WriteFile(path, data, 0); err != nil {
		return err
	}
	m.Path = path
	return nil
}

// Exists reports whether a note for (date, title) already exists.
func (s *Store) Exists(date, title string) bool {
	_, err := os.Stat(filepath.Join(s.Dir, FileName(date, title)))
	return err == nil
}

// List loads every meeting, newest first. Unreadable files are skipped.
func (s *Store) List() ([]*Meeting, error) {
	files, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var meetings []*Meeting
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
			continue
		}
		m, err := loadMeeting(filepath.Join(s.Dir, f.Name()))
		if err != nil {
			continue
		}
		meetings = append(meetings, m)
	}
	sort.Slice(meetings, func(i, j int) bool {
		if meetings[i].Date != meetings[j].Date {
			return meetings[i].Date > meetings[j].Date
		}
		return meetings[i].Title < meetings[j].Title
	})
	return meetings, nil
}

func loadMeeting(path string) (*Meeting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), ".md")
	var meta meetingMeta
	body, ok, err := frontmatter.Unmarshal(string(data), &meta)
	if err != nil || !ok {
		// Recover title and date from the YYYY-MM-DD_{slug} filename.
		date, slug := stem, stem
		if i := strings.Index(stem, "_"); i > 0 {
			date, slug = stem[:i], stem[i+1:]
		}
		return &Meeting{
			Title:        slugs.TitleFromStem(slug),
			Date:         date,
			Participants: []string{},
			Tags:         []string{},
			Body:         strings.TrimSpace(string(data)),
			Path:         path,
		}, nil
	}

	return &Meeting{
		Title:        meta.Title,
		Date:         meta.Date,
		Participants: orEmpty(meta.Participants),
		Tags:         orEmpty(meta.Tags),
		Body:         body,
		Path:         path,
	}, nil
}

// Find resolves (title, date) to a single meeting, matching the title
// case-insensitively. date may be empty when the title is unique. It returns
// ErrAmbiguous wrapped with the candidates when several meetings match.
func (s *Store) Find(title, date string) (*Meeting, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	var matches []*Meeting
	for _, m := range all {
		if !strings.EqualFold(m.Title, title) {
			continue
		}
		if date != "" && m.Date != date {
			continue
		}
		matches = append(matches, m)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("meeting not found: %s", title)
	case 1:
		return matches[0], nil
	default:
		var lines []string
		for _, m := range matches {
			lines = append(lines, fmt.Sprintf("%s - %s", m.Date, m.Title))
		}
		return nil, fmt.Errorf("%w:\n  %s", ErrAmbiguous, strings.Join(lines, "\n  "))
	}
}

// Delete removes a meeting's file.
func (s *Store) Delete(m *Meeting) error {
	return os.Remove(m.Path)
}

// Search keeps meetings whose title, date, participants, or body contain
// query, case-insensitively.
func Search(meetings []*Meeting, query string) []*Meeting {
	q := strings.ToLower(query)
	var out []*Meeting
	for _, m := range meetings {
		if strings.Contains(strings.ToLower(m.Title), q) ||
			strings.Contains(m.Date, q) ||
			strings.Contains(strings.ToLower(m.Body), q) {
			out = append(out, m)
			continue
		}
		for _, p := range m.Participants {
			if strings.Contains(strings.ToLower(p), q) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// FilterByTag keeps meetings carrying the exact tag.
func FilterByTag(meetings []*Meeting, tag string) []*Meeting {
	var out []*Meeting
	for _, m := range meetings {
		for _, t := range m.Tags {
			if t == tag {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
