// Package journal manages daily entries stored as journal/YYYY-MM-DD.md
// files with YAML front-matter.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jepemo/mystuff/internal/atomicfile"
	"github.com/jepemo/mystuff/internal/frontmatter"
)

// DirName is the journal directory inside the data directory.
const DirName = "journal"

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

// DefaultBody seeds new entries created without explicit content.
const DefaultBody = `## Journal Entry

Today I...

## Reflections

-

## Tomorrow's Goals

-
`

// Entry is one day's journal page.
type Entry struct {
	Date string
	Tags []string
	Body string
	Path string
}

type entryMeta struct {
	Date string   `yaml:"date"`
	Tags []string `yaml:"tags"`
}

// Store manages the journal directory.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dataDir/journal.
func NewStore(dataDir string) *Store {
	return &Store{Dir: filepath.Join(dataDir, DirName)}
}

// ValidateDate checks the YYYY-MM-DD format.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format: %q", date)
	}
	return nil
}

// EntryPath returns the file path for a date.
func (s *Store) EntryPath(date string) string {
	return filepath.Join(s.Dir, date+".md")
}

// Exists reports whether an entry exists for date.
func (s *Store) Exists(date string) bool {
	_, err := os.Stat(s.EntryPath(date))
	return err == nil
}

// Load reads the entry for date. Files without front-matter yield an entry
// with the date taken from the filename and the whole content as body.
func (s *Store) Load(date string) (*Entry, error) {
	return loadEntry(s.EntryPath(date))
}

func loadEntry(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), ".md")
	var meta entryMeta
	body, ok, err := frontmatter.Unmarshal(string(data), &meta)
	if err != nil || !ok {
		return &Entry{
			Date: stem,
			Tags: []string{},
			Body: strings.TrimSpace(string(data)),
			Path: path,
		}, nil
	}
	if meta.Date == "" {
		meta.Date = stem
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	return &Entry{Date: meta.Date, Tags: meta.Tags, Body: body, Path: path}, nil
}

// Save writes the entry for its date.
func (s *Store) Save(e *Entry) error {
	if err := ValidateDate(e.Date); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	data, err := frontmatter.Compose(entryMeta{Date: e.Date, Tags: tags}, e.Body)
	if err != nil {
		return err
	}
	path := s.EntryPath(e.Date)
	if err := atomicfile.WriteFile(path, data, 0); err != nil {
		return err
	}
	e.Path = path
	return nil
}

// Delete removes the entry for date.
func (s *Store) Delete(date string) error {
	return os.Remove(s.EntryPath(date))
}

// List loads all entries, newest first. Unreadable files are skipped.
func (s *Store) List() ([]*Entry, error) {
	files, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []*Entry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
			continue
		}
		entry, err := loadEntry(filepath.Join(s.Dir, f.Name()))
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries, nil
}

// ParseRange parses "YYYY-MM-DD:YYYY-MM-DD" or a single date, which is
// treated as a one-day range.
func ParseRange(rangeStr string) (start, end string, err error) {
	if !strings.Contains(rangeStr, ":") {
		if err := ValidateDate(rangeStr); err != nil {
			return "", "", err
		}
		return rangeStr, rangeStr, nil
	}
	parts := strings.SplitN(rangeStr, ":", 2)
	start = strings.TrimSpace(parts[0])
	end = strings.TrimSpace(parts[1])
	if err := ValidateDate(start); err != nil {
		return "", "", fmt.Errorf("date range must be in YYYY-MM-DD:YYYY-MM-DD format")
	}
	if err := ValidateDate(end); err != nil {
		return "", "", fmt.Errorf("date range must be in YYYY-MM-DD:YYYY-MM-DD format")
	}
	return start, end, nil
}

// FilterRange keeps entries whose date falls inside [start, end]. Dates in
// YYYY-MM-DD order compare correctly as strings.
func FilterRange(entries []*Entry, start, end string) []*Entry {
	var out []*Entry
	for _, e := range entries {
		if start <= e.Date && e.Date <= end {
			out = append(out, e)
		}
	}
	return out
}

// SearchText keeps entries whose body or tags contain text, case-insensitively.
func SearchText(entries []*Entry, text string) []*Entry {
	q := strings.ToLower(text)
	var out []*Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Body), q) {
			out = append(out, e)
			continue
		}
		for _, tag := range e.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
