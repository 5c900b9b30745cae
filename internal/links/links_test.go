package links

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	return s
}

func TestAddAndLoad(t *testing.T) {
	s := testStore(t)

	link, added, err := s.Add("https://go.dev", "The Go Website", "the language", []string{"go"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added {
		t.Error("expected link to be added")
	}
	if link.Timestamp != "2024-03-15T10:30:00Z" {
		t.Errorf("Timestamp = %q", link.Timestamp)
	}

	links, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(links) != 1 || links[0].Title != "The Go Website" {
		t.Errorf("links = %+v", links)
	}
}

func TestAddDuplicateURL(t *testing.T) {
	s := testStore(t)
	if _, _, err := s.Add("https://go.dev", "first", "", nil); err != nil {
		t.Fatal(err)
	}
	existing, added, err := s.Add("https://go.dev", "second", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Error("duplicate URL must not be added twice")
	}
	if existing.Title != "first" {
		t.Errorf("returned %q, want the stored link", existing.Title)
	}
}

func TestTitleFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://go.dev/blog", "go.dev"},
		{"https://news.ycombinator.com", "news.ycombinator.com"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		if got := TitleFromURL(tt.url); got != tt.want {
			t.Errorf("TitleFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := `{"url":"https://a.example","title":"A","description":"","tags":[],"timestamp":"t"}
not json at all

{"url":"https://b.example","title":"B","description":"","tags":[],"timestamp":"t"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir)
	links, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(links) != 2 || links[0].Title != "A" || links[1].Title != "B" {
		t.Errorf("links = %+v, want A and B", links)
	}
}

func TestEditAndDelete(t *testing.T) {
	s := testStore(t)
	if _, _, err := s.Add("https://a.example", "A", "old", []string{"x"}); err != nil {
		t.Fatal(err)
	}

	desc := "new description"
	updated, err := s.Edit("https://a.example", "", &desc, []string{"y", "z"})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if updated.Title != "A" {
		t.Errorf("empty title must not overwrite, got %q", updated.Title)
	}
	if updated.Description != "new description" {
		t.Errorf("Description = %q", updated.Description)
	}
	if !reflect.DeepEqual(updated.Tags, []string{"y", "z"}) {
		t.Errorf("Tags = %v", updated.Tags)
	}

	if err := s.Delete("https://a.example"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("https://a.example"); err == nil {
		t.Error("deleting a missing link should fail")
	}
	links, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 0 {
		t.Errorf("links = %+v, want empty", links)
	}
}

func TestSearchAndFilter(t *testing.T) {
	all := []Link{
		{URL: "1", Title: "Go Concurrency Patterns", Tags: []string{"go"}},
		{URL: "2", Title: "Rust Book", Description: "learning rust", Tags: []string{"rust"}},
		{URL: "3", Title: "Unrelated", Tags: []string{"go", "talks"}},
	}

	if got := Search(all, "GO"); len(got) != 2 {
		t.Errorf("Search(GO) = %d results, want 2", len(got))
	}
	if got := Search(all, "learning"); len(got) != 1 || got[0].URL != "2" {
		t.Errorf("Search(learning) = %+v", got)
	}
	// URLs are identifiers, not search text.
	if got := Search(all, "1"); len(got) != 0 {
		t.Errorf("Search(1) matched on URL: %+v", got)
	}
	if got := FilterByTag(all, "go"); len(got) != 2 {
		t.Errorf("FilterByTag(go) = %d results, want 2", len(got))
	}
	if got := FilterByTag(all, "g"); len(got) != 0 {
		t.Error("tag filter must match exactly")
	}
}

func TestFetchGithubStars(t *testing.T) {
	page1 := make([]map[string]interface{}, 0)
	page1 = append(page1, map[string]interface{}{
		"full_name":   "golang/go",
		"html_url":    "https://github.com/golang/go",
		"description": "The Go programming language",
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat/starred" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("page") == "1" {
			json.NewEncoder(w).Encode(page1)
			return
		}
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	old := githubAPIBase
	githubAPIBase = srv.URL
	defer func() { githubAPIBase = old }()

	stars, err := FetchGithubStars(srv.Client(), "octocat")
	if err != nil {
		t.Fatalf("FetchGithubStars: %v", err)
	}
	if len(stars) != 1 {
		t.Fatalf("stars = %+v, want 1", stars)
	}
	if stars[0].Title != "golang/go" {
		t.Errorf("Title = %q", stars[0].Title)
	}
	if !reflect.DeepEqual(stars[0].Tags, []string{"octocat", "github"}) {
		t.Errorf("Tags = %v", stars[0].Tags)
	}

	if _, err := FetchGithubStars(srv.Client(), "no-such-user"); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestImportStarsSkipsExisting(t *testing.T) {
	s := testStore(t)
	if _, _, err := s.Add("https://github.com/golang/go", "golang/go", "", nil); err != nil {
		t.Fatal(err)
	}

	added, err := s.ImportStars([]Link{
		{URL: "https://github.com/golang/go", Title: "golang/go"},
		{URL: "https://github.com/spf13/cobra", Title: "spf13/cobra"},
	})
	if err != nil {
		t.Fatalf("ImportStars: %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}

	links, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 2 {
		t.Errorf("links = %+v, want 2", links)
	}
	if links[1].Timestamp == "" {
		t.Error("imported star should be timestamped")
	}
}
