// Package lists manages checklists stored as lists/{slug}.yaml files.
package lists

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jepemo/mystuff/internal/atomicfile"
	"github.com/jepemo/mystuff/internal/slugs"
)

// DirName is the lists directory inside the data directory.
const DirName = "lists"

// Item is one checklist entry.
type Item struct {
	Text     string `yaml:"text"`
	Checked  bool   `yaml:"checked"`
	Added    string `yaml:"added"`
	Modified string `yaml:"modified,omitempty"`
}

// List is one named checklist.
type List struct {
	Name     string `yaml:"name"`
	Items    []Item `yaml:"items"`
	Created  string `yaml:"created"`
	Modified string `yaml:"modified"`

	// Path is where the list lives on disk, not serialized.
	Path string `yaml:"-"`
}

// CheckedCount counts completed items.
func (l *List) CheckedCount() int {
	n := 0
	for _, item := range l.Items {
		if item.Checked {
			n++
		}
	}
	return n
}

// Store manages the lists directory.
type Store struct {
	Dir string

	// Now supplies timestamps, overridable in tests.
	Now func() time.Time
}

// NewStore returns a store rooted at dataDir/lists.
func NewStore(dataDir string) *Store {
	return &Store{Dir: filepath.Join(dataDir, DirName), Now: time.Now}
}

func (s *Store) now() string {
	return s.Now().Format(time.RFC3339)
}

func (s *Store) listPath(name string) string {
	return filepath.Join(s.Dir, slugs.Title(name)+".yaml")
}

// Load reads the list identified by name. Returns nil when it does not exist.
func (s *Store) Load(name string) (*List, error) {
	return loadList(s.listPath(name))
}

func loadList(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var l List
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if l.Items == nil {
		l.Items = []Item{}
	}
	l.Path = path
	return &l, nil
}

func (s *Store) save(l *List) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	path := s.listPath(l.Name)
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	l.Path = path
	return nil
}

// Create makes a new empty list. It fails if the list already exists.
func (s *Store) Create(name string) (*List, error) {
	existing, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("list already exists: %s", name)
	}
	now := s.now()
	l := &List{Name: name, Items: []Item{}, Created: now, Modified: now}
	return l, s.save(l)
}

// Replace overwrites the items of name, creating the list when absent.
func (s *Store) Replace(name string, items []Item) (*List, error) {
	l, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if l == nil {
		l = &List{Name: name, Created: now}
	}
	if items == nil {
		items = []Item{}
	}
	l.Items = items
	l.Modified = now
	return l, s.save(l)
}

// AddItem appends an unchecked item to name.
func (s *Store) AddItem(name, text string) error {
	l, err := s.Load(name)
	if err != nil {
		return err
	}
	if l == nil {
		return fmt.Errorf("list not found: %s", name)
	}
	l.Items = append(l.Items, Item{Text: text, Checked: false, Added: s.now()})
	l.Modified = s.now()
	return s.save(l)
}

// RemoveItem deletes every item exactly matching text.
func (s *Store) RemoveItem(name, text string) error {
	l, err := s.Load(name)
	if err != nil {
		return err
	}
	if l == nil {
		return fmt.Errorf("list not found: %s", name)
	}
	kept := l.Items[:0]
	for _, item := range l.Items {
		if item.Text != text {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(l.Items) {
		return fmt.Errorf("item not found in %s: %s", name, text)
	}
	l.Items = kept
	l.Modified = s.now()
	return s.save(l)
}

// SetChecked checks or unchecks the first item exactly matching text.
func (s *Store) SetChecked(name, text string, checked bool) error {
	l, err := s.Load(name)
	if err != nil {
		return err
	}
	if l == nil {
		return fmt.Errorf("list not found: %s", name)
	}
	for i := range l.Items {
		if l.Items[i].Text == text {
			l.Items[i].Checked = checked
			l.Items[i].Modified = s.now()
			l.Modified = s.now()
			return s.save(l)
		}
	}
	return fmt.Errorf("item not found in %s: %s", name, text)
}

// Delete removes a list's file.
func (s *Store) Delete(name string) error {
	l, err := s.Load(name)
	if err != nil {
		return err
	}
	if l == nil {
		return fmt.Errorf("list not found: %s", name)
	}
	return os.Remove(l.Path)
}

// All loads every list, sorted by name. Unreadable files are skipped.
func (s *Store) All() ([]*List, error) {
	files, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var all []*List
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		l, err := loadList(filepath.Join(s.Dir, name))
		if err != nil || l == nil {
			continue
		}
		all = append(all, l)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all, nil
}

// Search keeps lists whose name or any item text contains query,
// case-insensitively.
func Search(all []*List, query string) []*List {
	q := strings.ToLower(query)
	var out []*List
	for _, l := range all {
		if strings.Contains(strings.ToLower(l.Name), q) {
			out = append(out, l)
			continue
		}
		for _, item := range l.Items {
			if strings.Contains(strings.ToLower(item.Text), q) {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
