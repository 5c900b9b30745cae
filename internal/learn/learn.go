// Package learn tracks progress through markdown lessons under
// learning/lessons, with state in learning/metadata.yaml.
package learn

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jepemo/mystuff/internal/atomicfile"
)

// Directory layout inside the data directory.
const (
	DirName        = "learning"
	LessonsDirName = "lessons"
	MetadataFile   = "metadata.yaml"
)

// Lesson statuses.
const (
	StatusCompleted = "completed"
	StatusCurrent   = "current"
	StatusPending   = "pending"
)

// CompletedLesson records one finished lesson.
type CompletedLesson struct {
	Name        string `yaml:"name"`
	CompletedAt string `yaml:"completed_at"`
}

// Metadata is the persistent learning state.
type Metadata struct {
	CurrentLesson    string            `yaml:"current_lesson"`
	LastOpened       string            `yaml:"last_opened"`
	CompletedLessons []CompletedLesson `yaml:"completed_lessons"`
}

// IsCompleted reports whether name is recorded as completed.
func (m *Metadata) IsCompleted(name string) bool {
	for _, c := range m.CompletedLessons {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Status classifies a lesson as completed, current, or pending.
func (m *Metadata) Status(name string) string {
	switch {
	case m.IsCompleted(name):
		return StatusCompleted
	case name == m.CurrentLesson:
		return StatusCurrent
	default:
		return StatusPending
	}
}

// Lesson is one markdown file under the lessons directory. Name is the
// slash-separated path relative to the lessons directory.
type Lesson struct {
	Name string
	Path string
}

// Store manages the learning directory.
type Store struct {
	Dir string

	// Now supplies timestamps, overridable in tests.
	Now func() time.Time
}

// NewStore returns a store rooted at dataDir/learning.
func NewStore(dataDir string) *Store {
	return &Store{Dir: filepath.Join(dataDir, DirName), Now: time.Now}
}

// LessonsDir is the directory holding lesson files.
func (s *Store) LessonsDir() string {
	return filepath.Join(s.Dir, LessonsDirName)
}

func (s *Store) metadataPath() string {
	return filepath.Join(s.Dir, MetadataFile)
}

// LoadMetadata reads the metadata file, creating it with defaults when
// absent. Malformed metadata falls back to defaults.
func (s *Store) LoadMetadata() (*Metadata, error) {
	data, err := os.ReadFile(s.metadataPath())
	if err != nil {
		if os.IsNotExist(err) {
			meta := &Metadata{CompletedLessons: []CompletedLesson{}}
			return meta, s.SaveMetadata(meta)
		}
		return nil, err
	}

	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return &Metadata{CompletedLessons: []CompletedLesson{}}, nil
	}
	if meta.CompletedLessons == nil {
		meta.CompletedLessons = []CompletedLesson{}
	}
	return &meta, nil
}

// SaveMetadata writes the metadata file.
func (s *Store) SaveMetadata(meta *Metadata) error {
	if err := os.MkdirAll(s.LessonsDir(), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(s.metadataPath(), data, 0o644)
}

// Lessons enumerates lesson files sorted by name. With recursive false only
// top-level files are returned.
func (s *Store) Lessons(recursive bool) ([]Lesson, error) {
	root := s.LessonsDir()
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var lessons []Lesson
	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			lessons = append(lessons, Lesson{Name: filepath.ToSlash(rel), Path: path})
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			lessons = append(lessons, Lesson{Name: e.Name(), Path: filepath.Join(root, e.Name())})
		}
	}

	sort.Slice(lessons, func(i, j int) bool {
		return lessons[i].Name < lessons[j].Name
	})
	return lessons, nil
}

// LessonPath resolves a lesson name to its file and verifies it exists.
func (s *Store) LessonPath(name string) (string, error) {
	path := filepath.Join(s.LessonsDir(), filepath.FromSlash(name))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("lesson not found: %s", name)
	}
	return path, nil
}

// Start sets name as the current lesson.
func (s *Store) Start(name string) error {
	if _, err := s.LessonPath(name); err != nil {
		return err
	}
	meta, err := s.LoadMetadata()
	if err != nil {
		return err
	}
	meta.CurrentLesson = name
	return s.SaveMetadata(meta)
}

// MarkOpened stamps last_opened with the current time.
func (s *Store) MarkOpened() error {
	meta, err := s.LoadMetadata()
	if err != nil {
		return err
	}
	meta.LastOpened = s.Now().Format(time.RFC3339)
	return s.SaveMetadata(meta)
}

// NextUncompleted finds the next lesson after current that is not completed,
// wrapping to the beginning. Returns empty when everything is done.
func (s *Store) NextUncompleted(current string, meta *Metadata) (string, error) {
	lessons, err := s.Lessons(true)
	if err != nil {
		return "", err
	}

	currentIndex := -1
	for i, l := range lessons {
		if l.Name == current {
			currentIndex = i
			break
		}
	}
	if currentIndex == -1 {
		return "", nil
	}

	for i := currentIndex + 1; i < len(lessons); i++ {
		if !meta.IsCompleted(lessons[i].Name) {
			return lessons[i].Name, nil
		}
	}
	for i := 0; i < currentIndex; i++ {
		if !meta.IsCompleted(lessons[i].Name) {
			return lessons[i].Name, nil
		}
	}
	return "", nil
}

// Complete marks name as completed. When name was the current lesson the
// current pointer advances to the next uncompleted lesson, or clears when
// everything is done. It returns the new current lesson.
func (s *Store) Complete(name string) (newCurrent string, err error) {
	if _, err := s.LessonPath(name); err != nil {
		return "", err
	}
	meta, err := s.LoadMetadata()
	if err != nil {
		return "", err
	}
	if meta.IsCompleted(name) {
		return meta.CurrentLesson, nil
	}

	meta.CompletedLessons = append(meta.CompletedLessons, CompletedLesson{
		Name:        name,
		CompletedAt: s.Now().Format(time.RFC3339),
	})

	if name == meta.CurrentLesson {
		next, err := s.NextUncompleted(name, meta)
		if err != nil {
			return "", err
		}
		meta.CurrentLesson = next
	}
	return meta.CurrentLesson, s.SaveMetadata(meta)
}

// Reset clears all progress, keeping the lesson files.
func (s *Store) Reset() error {
	return s.SaveMetadata(&Metadata{CompletedLessons: []CompletedLesson{}})
}

// Stats summarizes learning progress.
type Stats struct {
	Total           int
	Completed       int
	Pending         int
	Percent         float64
	FirstCompletion string
	LastCompletion  string
	Days            int
	PerDay          float64
	CurrentLesson   string
	LastOpened      string
}

// ComputeStats derives statistics from the lesson files and metadata.
func (s *Store) ComputeStats() (*Stats, error) {
	lessons, err := s.Lessons(true)
	if err != nil {
		return nil, err
	}
	meta, err := s.LoadMetadata()
	if err != nil {
		return nil, err
	}

	st := &Stats{
		Total:         len(lessons),
		Completed:     len(meta.CompletedLessons),
		CurrentLesson: meta.CurrentLesson,
		LastOpened:    meta.LastOpened,
	}
	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		st.Percent = float64(st.Completed) / float64(st.Total) * 100
	}

	var first, last time.Time
	for _, c := range meta.CompletedLessons {
		ts, err := time.Parse(time.RFC3339, c.CompletedAt)
		if err != nil {
			continue
		}
		if first.IsZero() || ts.Before(first) {
			first = ts
		}
		if last.IsZero() || ts.After(last) {
			last = ts
		}
	}
	if !first.IsZero() {
		st.FirstCompletion = first.Format("2006-01-02")
		st.LastCompletion = last.Format("2006-01-02")
		st.Days = int(last.Truncate(24*time.Hour).Sub(first.Truncate(24*time.Hour)).Hours()/24) + 1
		st.PerDay = float64(st.Completed) / float64(st.Days)
	}
	return st, nil
}
