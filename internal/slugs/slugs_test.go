package slugs

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Team Meeting: Q4 Review & Planning (2023)", "team-meeting-q4-review-planning-2023"},
		{"My Note", "my-note"},
		{"already-sluggy", "already-sluggy"},
		{"  spaced   out  ", "spaced-out"},
		{"Trailing!", "trailing"},
		{"---", ""},
		{"", ""},
		{"C++ & Go!", "c-go"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Title(tt.in); got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitleFromStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"team-structure", "Team Structure"},
		{"q4-review", "Q4 Review"},
		{"single", "Single"},
	}

	for _, tt := range tests {
		if got := TitleFromStem(tt.in); got != tt.want {
			t.Errorf("TitleFromStem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComponent(t *testing.T) {
	if got := Component("My Lesson.md"); got != "my-lesson" {
		t.Errorf("Component = %q, want %q", got, "my-lesson")
	}
}

func TestPath(t *testing.T) {
	if got := Path("01/Intro Week/Day One.md"); got != "01/intro-week/day-one" {
		t.Errorf("Path = %q, want %q", got, "01/intro-week/day-one")
	}
}
