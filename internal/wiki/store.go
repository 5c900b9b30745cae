package wiki

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jepemo/mystuff/internal/slugs"
)

// DirName is the wiki directory inside the data directory.
const DirName = "wiki"

// Store manages the wiki directory. The directory is the unit of identity:
// one note per {slug}.md file.
type Store struct {
	Dir string

	// Warnf reports non-fatal problems (unreadable files, shadowed titles).
	// Defaults to stderr when nil.
	Warnf func(format string, args ...interface{})
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) warnf(format string, args ...interface{}) {
	if s.Warnf != nil {
		s.Warnf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// NotePath returns the file path for a note title.
func (s *Store) NotePath(title string) string {
	return filepath.Join(s.Dir, slugs.Title(title)+".md")
}

// Exists reports whether a note file for title exists.
func (s *Store) Exists(title string) bool {
	_, err := os.Stat(s.NotePath(title))
	return err == nil
}

// List loads every note in the directory, sorted by filename. A note that
// fails to read is reported via Warnf and skipped; enumeration continues.
func (s *Store) List() ([]*Note, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading wiki directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	notes := make([]*Note, 0, len(names))
	for _, name := range names {
		path := filepath.Join(s.Dir, name)
		note, err := LoadNote(path)
		if err != nil {
			s.warnf("skipping %s: %v", path, err)
			continue
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// Find resolves query to a note, case-insensitively, by slug, title, or
// alias. Returns nil when nothing matches.
func (s *Store) Find(query string) (*Note, error) {
	// Fast path: direct slug lookup.
	path := filepath.Join(s.Dir, slugs.Title(query)+".md")
	if _, err := os.Stat(path); err == nil {
		return LoadNote(path)
	}

	// Slow path: scan titles and aliases.
	notes, err := s.List()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	for _, note := range notes {
		if strings.ToLower(note.Title) == q {
			return note, nil
		}
		for _, alias := range note.Aliases {
			if strings.ToLower(alias) == q {
				return note, nil
			}
		}
	}
	return nil, nil
}

// Create writes a new note with empty backlinks. It fails if a note with the
// same slug already exists.
func (s *Store) Create(title string, tags, aliases []string, body string) (*Note, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}

	path := s.NotePath(title)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("note already exists: %s", filepath.Base(path))
	}

	note := &Note{
		Title:     title,
		Tags:      emptyIfNil(tags),
		Aliases:   emptyIfNil(aliases),
		Backlinks: []string{},
		Body:      body,
	}
	if err := note.Save(path); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes a note's file. Dangling backlinks pointing at it are cleaned
// up by the next Reindex.
func (s *Store) Delete(note *Note) error {
	if note.Path == "" {
		return fmt.Errorf("note has no file: %s", note.Title)
	}
	return os.Remove(note.Path)
}

// SearchText filters notes whose title, body, tags, or aliases contain text,
// case-insensitively.
func SearchText(notes []*Note, text string) []*Note {
	lowered := strings.ToLower(text)
	var out []*Note
	for _, n := range notes {
		if noteMatches(n, lowered) {
			out = append(out, n)
		}
	}
	return out
}

func noteMatches(n *Note, lowered string) bool {
	if strings.Contains(strings.ToLower(n.Title), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Body), lowered) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), lowered) {
			return true
		}
	}
	for _, alias := range n.Aliases {
		if strings.Contains(strings.ToLower(alias), lowered) {
			return true
		}
	}
	return false
}

// BacklinkGraph renders a note's backlinks as a one-level ASCII tree,
// resolving each backlink slug to its note title where the file still exists.
func (s *Store) BacklinkGraph(n *Note) string {
	if len(n.Backlinks) == 0 {
		return n.Title + "\n  (no backlinks)\n"
	}

	var b strings.Builder
	b.WriteString(n.Title + "\n")
	for i, slug := range n.Backlinks {
		prefix := "├── "
		if i == len(n.Backlinks)-1 {
			prefix = "└── "
		}

		title := slugs.TitleFromStem(slug)
		if source, err := LoadNote(filepath.Join(s.Dir, slug+".md")); err == nil {
			title = source.Title
		}
		b.WriteString("  " + prefix + title + "\n")
	}
	return b.String()
}
