package meetings

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileName(t *testing.T) {
	got := FileName("2023-11-02", "Team Meeting: Q4 Review & Planning (2023)")
	want := "2023-11-02_team-meeting-q4-review-planning-2023.md"
	if got != want {
		t.Errorf("FileName = %q, want %q", got, want)
	}
}

func TestParseParticipants(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"alice, bob,carol", []string{"alice", "bob", "carol"}},
		{"alice", []string{"alice"}},
		{" , ", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		if got := ParseParticipants(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseParticipants(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	m := &Meeting{
		Title:        "Sprint Planning",
		Date:         "2024-04-01",
		Participants: []string{"alice", "bob"},
		Tags:         []string{"sprint"},
		Body:         "Discussed the backlog.",
	}
	if err := s.Save(m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(m.Path) != "2024-04-01_sprint-planning.md" {
		t.Errorf("Path = %q", m.Path)
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("List = %d meetings, want 1", len(all))
	}
	loaded := all[0]
	if loaded.Title != m.Title || loaded.Date != m.Date || loaded.Body != m.Body {
		t.Errorf("loaded = %+v", loaded)
	}
	if !reflect.DeepEqual(loaded.Participants, m.Participants) {
		t.Errorf("Participants = %v", loaded.Participants)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, m := range []*Meeting{
		{Title: "Old", Date: "2024-01-01", Body: "x"},
		{Title: "New", Date: "2024-06-01", Body: "x"},
		{Title: "Mid", Date: "2024-03-01", Body: "x"},
	} {
		if err := s.Save(m); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	var titles []string
	for _, m := range all {
		titles = append(titles, m.Title)
	}
	if !reflect.DeepEqual(titles, []string{"New", "Mid", "Old"}) {
		t.Errorf("titles = %v", titles)
	}
}

func TestFindDisambiguation(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, date := range []string{"2024-01-08", "2024-01-15"} {
		if err := s.Save(&Meeting{Title: "Weekly Sync", Date: date, Body: "x"}); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := s.Find("Weekly Sync", ""); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("expected ErrAmbiguous, got %v", err)
	}

	m, err := s.Find("weekly sync", "2024-01-15")
	if err != nil {
		t.Fatalf("Find with date: %v", err)
	}
	if m.Date != "2024-01-15" {
		t.Errorf("Date = %q", m.Date)
	}

	if _, err := s.Find("No Such Meeting", ""); err == nil {
		t.Error("expected not-found error")
	}
}

func TestSearchAndFilter(t *testing.T) {
	meetings := []*Meeting{
		{Title: "Roadmap Review", Date: "2024-02-01", Participants: []string{"Alice"}, Tags: []string{"planning"}, Body: "H2 goals"},
		{Title: "Standup", Date: "2024-02-02", Participants: []string{"Bob"}, Tags: []string{"daily"}, Body: "quick updates"},
	}

	if got := Search(meetings, "alice"); len(got) != 1 || got[0].Title != "Roadmap Review" {
		t.Errorf("Search(alice) = %+v", got)
	}
	if got := Search(meetings, "2024-02"); len(got) != 2 {
		t.Errorf("Search(2024-02) = %d, want 2", len(got))
	}
	if got := Search(meetings, "goals"); len(got) != 1 {
		t.Errorf("Search(goals) = %d, want 1", len(got))
	}
	if got := FilterByTag(meetings, "daily"); len(got) != 1 || got[0].Title != "Standup" {
		t.Errorf("FilterByTag(daily) = %+v", got)
	}
}

func TestDelete(t *testing.T) {
	s := NewStore(t.TempDir())
	m := &Meeting{Title: "Kickoff", Date: "2024-05-01", Body: "x"}
	if err := s.Save(m); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(m); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Exists("2024-05-01", "Kickoff") {
		t.Error("meeting should be gone")
	}
}
