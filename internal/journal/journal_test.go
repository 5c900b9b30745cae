package journal

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	entry := &Entry{
		Date: "2024-03-15",
		Tags: []string{"work", "go"},
		Body: "Shipped the thing.",
	}
	if err := s.Save(entry); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load("2024-03-15")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Date != entry.Date {
		t.Errorf("Date = %q", loaded.Date)
	}
	if !reflect.DeepEqual(loaded.Tags, entry.Tags) {
		t.Errorf("Tags = %v", loaded.Tags)
	}
	if loaded.Body != entry.Body {
		t.Errorf("Body = %q", loaded.Body)
	}
}

func TestSaveRejectsBadDate(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, date := range []string{"15-03-2024", "2024/03/15", "yesterday", "2024-13-01"} {
		if err := s.Save(&Entry{Date: date}); err == nil {
			t.Errorf("Save(%q) should fail", date)
		}
	}
}

func TestLoadWithoutFrontMatter(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(s.Dir, "2024-01-02.md")
	if err := os.WriteFile(path, []byte("raw notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	entry, err := s.Load("2024-01-02")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if entry.Date != "2024-01-02" {
		t.Errorf("Date = %q, want filename-derived date", entry.Date)
	}
	if entry.Body != "raw notes" {
		t.Errorf("Body = %q", entry.Body)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, date := range []string{"2024-01-10", "2024-03-01", "2024-02-15"} {
		if err := s.Save(&Entry{Date: date, Body: "x"}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var dates []string
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	want := []string{"2024-03-01", "2024-02-15", "2024-01-10"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("dates = %v, want %v", dates, want)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		input      string
		start, end string
		wantErr    bool
	}{
		{"2024-01-01:2024-01-31", "2024-01-01", "2024-01-31", false},
		{"2024-01-01 : 2024-01-31", "2024-01-01", "2024-01-31", false},
		{"2024-05-10", "2024-05-10", "2024-05-10", false},
		{"2024-01:2024-02", "", "", true},
		{"nonsense", "", "", true},
	}
	for _, tt := range tests {
		start, end, err := ParseRange(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRange(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if start != tt.start || end != tt.end {
			t.Errorf("ParseRange(%q) = %q, %q", tt.input, start, end)
		}
	}
}

func TestFilterRangeAndSearch(t *testing.T) {
	entries := []*Entry{
		{Date: "2024-01-05", Body: "Started learning Go", Tags: []string{"go"}},
		{Date: "2024-02-10", Body: "Wrote some tests", Tags: []string{"testing"}},
		{Date: "2024-03-20", Body: "Refactoring day", Tags: []string{"go", "cleanup"}},
	}

	inRange := FilterRange(entries, "2024-01-01", "2024-02-28")
	if len(inRange) != 2 {
		t.Errorf("FilterRange = %d entries, want 2", len(inRange))
	}

	if got := SearchText(entries, "LEARNING"); len(got) != 1 || got[0].Date != "2024-01-05" {
		t.Errorf("SearchText(LEARNING) = %+v", got)
	}
	if got := SearchText(entries, "go"); len(got) != 2 {
		t.Errorf("SearchText(go) = %d entries, want 2", len(got))
	}
}

func TestDelete(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Save(&Entry{Date: "2024-06-01", Body: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("2024-06-01"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Exists("2024-06-01") {
		t.Error("entry should be gone")
	}
}
