package learn

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir())
	s.Now = func() time.Time {
		return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	}
	return s
}

func addLesson(t *testing.T, s *Store, name string) {
	t.Helper()
	path := filepath.Join(s.LessonsDir(), filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("# "+name), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMetadataCreatesDefaults(t *testing.T) {
	s := testStore(t)
	meta, err := s.LoadMetadata()
	if err != nil {
		t.Fatalf("LoadMetadata: %v", err)
	}
	if meta.CurrentLesson != "" || meta.LastOpened != "" || len(meta.CompletedLessons) != 0 {
		t.Errorf("meta = %+v, want zero values", meta)
	}
	if _, err := os.Stat(filepath.Join(s.Dir, MetadataFile)); err != nil {
		t.Errorf("metadata file should be created: %v", err)
	}
}

func TestLessonsEnumeration(t *testing.T) {
	s := testStore(t)
	addLesson(t, s, "01-intro.md")
	addLesson(t, s, "week1/02-basics.md")
	addLesson(t, s, "week1/03-slices.md")

	all, err := s.Lessons(true)
	if err != nil {
		t.Fatalf("Lessons: %v", err)
	}
	var names []string
	for _, l := range all {
		names = append(names, l.Name)
	}
	want := []string{"01-intro.md", "week1/02-basics.md", "week1/03-slices.md"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}

	top, err := s.Lessons(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Name != "01-intro.md" {
		t.Errorf("top-level = %+v", top)
	}
}

func TestStartAndStatus(t *testing.T) {
	s := testStore(t)
	addLesson(t, s, "a.md")
	addLesson(t, s, "b.md")

	if err := s.Start("a.md"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start("missing.md"); err == nil {
		t.Error("starting a missing lesson should fail")
	}

	meta, err := s.LoadMetadata()
	if err != nil {
		t.Fatal(err)
	}
	if meta.CurrentLesson != "a.md" {
		t.Errorf("CurrentLesson = %q", meta.CurrentLesson)
	}
	if got := meta.Status("a.md"); got != StatusCurrent {
		t.Errorf("Status(a.md) = %q", got)
	}
	if got := meta.Status("b.md"); got != StatusPending {
		t.Errorf("Status(b.md) = %q", got)
	}
}

func TestCompleteAdvancesCurrent(t *testing.T) {
	s := testStore(t)
	addLesson(t, s, "a.md")
	addLesson(t, s, "b.md")
	addLesson(t, s, "c.md")

	if err := s.Start("a.md"); err != nil {
		t.Fatal(err)
	}

	next, err := s.Complete("a.md")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if next != "b.md" {
		t.Errorf("next = %q, want b.md", next)
	}

	meta, _ := s.LoadMetadata()
	if !meta.IsCompleted("a.md") {
		t.Error("a.md should be completed")
	}
	if meta.CompletedLessons[0].CompletedAt != "2024-03-15T09:00:00Z" {
		t.Errorf("CompletedAt = %q", meta.CompletedLessons[0].CompletedAt)
	}

	// Completing again is a no-op.
	if _, err := s.Complete("a.md"); err != nil {
		t.Fatal(err)
	}
	meta, _ = s.LoadMetadata()
	if len(meta.CompletedLessons) != 1 {
		t.Errorf("duplicate completion recorded: %+v", meta.CompletedLessons)
	}
}

func TestCompleteWrapsAndClears(t *testing.T) {
	s := testStore(t)
	addLesson(t, s, "a.md")
	addLesson(t, s, "b.md")

	// Complete b first, then make it current; the next uncompleted wraps to a.
	if _, err := s.Complete("b.md"); err != nil {
		t.Fatal(err)
	}
	if err := s.Start("a.md"); err != nil {
		t.Fatal(err)
	}
	next, err := s.Complete("a.md")
	if err != nil {
		t.Fatal(err)
	}
	if next != "" {
		t.Errorf("next = %q, want empty when all lessons are done", next)
	}
}

func TestNextUncompletedWrapAround(t *testing.T) {
	s := testStore(t)
	addLesson(t, s, "a.md")
	addLesson(t, s, "b.md")
	addLesson(t, s, "c.md")

	meta := &Metadata{CompletedLessons: []CompletedLesson{{Name: "c.md"}}}
	next, err := s.NextUncompleted("b.md", meta)
	if err != nil {
		t.Fatal(err)
	}
	if next != "a.md" {
		t.Errorf("next = %q, want wrap-around to a.md", next)
	}
}

func TestReset(t *testing.T) {
	s := testStore(t)
	addLesson(t, s, "a.md")
	if err := s.Start("a.md"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Complete("a.md"); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	meta, _ := s.LoadMetadata()
	if meta.CurrentLesson != "" || len(meta.CompletedLessons) != 0 {
		t.Errorf("meta after reset = %+v", meta)
	}
}

func TestComputeStats(t *testing.T) {
	s := testStore(t)
	addLesson(t, s, "a.md")
	addLesson(t, s, "b.md")
	addLesson(t, s, "c.md")
	addLesson(t, s, "d.md")

	meta := &Metadata{
		CurrentLesson: "c.md",
		CompletedLessons: []CompletedLesson{
			{Name: "a.md", CompletedAt: "2024-03-10T08:00:00Z"},
			{Name: "b.md", CompletedAt: "2024-03-13T08:00:00Z"},
		},
	}
	if err := s.SaveMetadata(meta); err != nil {
		t.Fatal(err)
	}

	st, err := s.ComputeStats()
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}
	if st.Total != 4 || st.Completed != 2 || st.Pending != 2 {
		t.Errorf("stats = %+v", st)
	}
	if st.Percent != 50 {
		t.Errorf("Percent = %v, want 50", st.Percent)
	}
	if st.FirstCompletion != "2024-03-10" || st.LastCompletion != "2024-03-13" {
		t.Errorf("completion dates = %q..%q", st.FirstCompletion, st.LastCompletion)
	}
	if st.Days != 4 {
		t.Errorf("Days = %d, want 4", st.Days)
	}
	if st.PerDay != 0.5 {
		t.Errorf("PerDay = %v, want 0.5", st.PerDay)
	}
}

func TestMarkOpened(t *testing.T) {
	s := testStore(t)
	if err := s.MarkOpened(); err != nil {
		t.Fatalf("MarkOpened: %v", err)
	}
	meta, _ := s.LoadMetadata()
	if meta.LastOpened != "2024-03-15T09:00:00Z" {
		t.Errorf("LastOpened = %q", meta.LastOpened)
	}
}
