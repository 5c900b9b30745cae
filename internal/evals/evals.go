// Package evals manages self-evaluation entries bucketed by month into
// eval/YYYY-MM.yaml files.
package evals

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jepemo/mystuff/internal/atomicfile"
)

// DirName is the evaluations directory inside the data directory.
const DirName = "eval"

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

// Evaluation is one scored entry.
type Evaluation struct {
	Date     string `yaml:"date"`
	Category string `yaml:"category"`
	Score    int    `yaml:"score"`
	Comments string `yaml:"comments"`
}

// Store manages the eval directory.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dataDir/eval.
func NewStore(dataDir string) *Store {
	return &Store{Dir: filepath.Join(dataDir, DirName)}
}

// ValidateScore enforces the 1 to 10 range.
func ValidateScore(score int) error {
	if score < 1 || score > 10 {
		return fmt.Errorf("score must be between 1 and 10, got %d", score)
	}
	return nil
}

// ValidateDate checks the YYYY-MM-DD format.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format: %q", date)
	}
	return nil
}

// monthFile returns the YYYY-MM.yaml path holding entries for date.
func (s *Store) monthFile(date string) string {
	month := date
	if len(date) >= 7 {
		month = date[:7]
	}
	return filepath.Join(s.Dir, month+".yaml")
}

func loadFile(path string) ([]Evaluation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var evals []Evaluation
	if err := yaml.Unmarshal(data, &evals); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return evals, nil
}

func saveFile(path string, evals []Evaluation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(evals)
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, data, 0o644)
}

// Add inserts or replaces the entry for (date, category) in its month file,
// keeping the file sorted by date. It reports whether an existing entry was
// replaced.
func (s *Store) Add(e Evaluation) (updated bool, err error) {
	if err := ValidateDate(e.Date); err != nil {
		return false, err
	}
	if err := ValidateScore(e.Score); err != nil {
		return false, err
	}

	path := s.monthFile(e.Date)
	evals, err := loadFile(path)
	if err != nil {
		return false, err
	}

	replaced := false
	for i := range evals {
		if evals[i].Date == e.Date && evals[i].Category == e.Category {
			evals[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		evals = append(evals, e)
	}
	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].Date < evals[j].Date
	})
	return replaced, saveFile(path, evals)
}

// Delete removes the entry for (date, category). The month file is deleted
// when it becomes empty. It reports whether an entry was removed.
func (s *Store) Delete(date, category string) (bool, error) {
	path := s.monthFile(date)
	evals, err := loadFile(path)
	if err != nil {
		return false, err
	}

	kept := evals[:0]
	removed := false
	for _, e := range evals {
		if e.Date == date && e.Category == category {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return false, nil
	}
	if len(kept) == 0 {
		return true, os.Remove(path)
	}
	return true, saveFile(path, kept)
}

// All loads every evaluation across all month files, newest first.
func (s *Store) All() ([]Evaluation, error) {
	files, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var all []Evaluation
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}
		evals, err := loadFile(filepath.Join(s.Dir, f.Name()))
		if err != nil {
			continue
		}
		all = append(all, evals...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date > all[j].Date
	})
	return all, nil
}

// FilterRange keeps evaluations whose date falls inside [start, end].
func FilterRange(evals []Evaluation, start, end string) []Evaluation {
	var out []Evaluation
	for _, e := range evals {
		if start <= e.Date && e.Date <= end {
			out = append(out, e)
		}
	}
	return out
}

// FilterCategory keeps evaluations in the exact category.
func FilterCategory(evals []Evaluation, category string) []Evaluation {
	var out []Evaluation
	for _, e := range evals {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// SearchText keeps evaluations whose category or comments contain text,
// case-insensitively.
func SearchText(evals []Evaluation, text string) []Evaluation {
	q := strings.ToLower(text)
	var out []Evaluation
	for _, e := range evals {
		if strings.Contains(strings.ToLower(e.Category), q) ||
			strings.Contains(strings.ToLower(e.Comments), q) {
			out = append(out, e)
		}
	}
	return out
}
