package index

import (
	"path/filepath"
	"testing"

	"github.com/jepemo/mystuff/internal/journal"
	"github.com/jepemo/mystuff/internal/lists"
	"github.com/jepemo/mystuff/internal/wiki"
)

func TestBuildFTSQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `content:""`},
		{"   ", `content:""`},
		{"golang", "content: (golang)"},
		{"go testing", "content: (go testing)"},
		{"test-driven", `content: ("test-driven")`},
		{`"exact phrase"`, `content: ("exact phrase")`},
		{"a OR b", "content: (a OR b)"},
		{"(a AND b)", "content: ((a AND b))"},
	}
	for _, tt := range tests {
		if got := BuildFTSQuery(tt.input); got != tt.want {
			t.Errorf("BuildFTSQuery(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func seedData(t *testing.T, dataDir string) {
	t.Helper()

	ws := wiki.NewStore(filepath.Join(dataDir, wiki.DirName))
	if _, err := ws.Create("Distributed Systems", nil, nil, "Notes about consensus and replication."); err != nil {
		t.Fatal(err)
	}
	if _, err := ws.Create("Gardening", nil, nil, "Tomatoes need sun."); err != nil {
		t.Fatal(err)
	}

	js := journal.NewStore(dataDir)
	if err := js.Save(&journal.Entry{Date: "2024-03-01", Body: "Read the raft paper on consensus today."}); err != nil {
		t.Fatal(err)
	}

	ls := lists.NewStore(dataDir)
	if _, err := ls.Replace("reading", []lists.Item{{Text: "Designing Data-Intensive Applications", Added: "2024-01-01T00:00:00Z"}}); err != nil {
		t.Fatal(err)
	}
}

func TestRebuildAndSearch(t *testing.T) {
	dataDir := t.TempDir()
	seedData(t, dataDir)

	db, err := Open(dataDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	n, err := db.Rebuild(dataDir)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if n != 4 {
		t.Errorf("indexed %d documents, want 4", n)
	}

	results, err := db.Search("consensus", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v, want 2 hits", results)
	}
	stores := map[string]bool{}
	for _, r := range results {
		stores[r.Store] = true
	}
	if !stores[StoreWiki] || !stores[StoreJournal] {
		t.Errorf("expected hits in wiki and journal, got %+v", results)
	}

	wikiOnly, err := db.SearchStore("consensus", StoreWiki, 10)
	if err != nil {
		t.Fatalf("SearchStore: %v", err)
	}
	if len(wikiOnly) != 1 || wikiOnly[0].Title != "Distributed Systems" {
		t.Errorf("wiki results = %+v", wikiOnly)
	}

	none, err := db.Search("zeppelin", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("unexpected hits: %+v", none)
	}
}

func TestAcquireIndexLockIsExclusive(t *testing.T) {
	dbDir := filepath.Join(t.TempDir(), ".mystuff")

	held, err := acquireIndexLock(dbDir)
	if err != nil {
		t.Fatalf("acquireIndexLock: %v", err)
	}

	if _, err := acquireIndexLock(dbDir); err != ErrIndexLocked {
		t.Fatalf("second acquire error = %v, want ErrIndexLocked", err)
	}

	if err := held.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := acquireIndexLock(dbDir)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again.Release()
}

func TestRebuildReplacesStaleRows(t *testing.T) {
	dataDir := t.TempDir()
	seedData(t, dataDir)

	db, err := Open(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Rebuild(dataDir); err != nil {
		t.Fatal(err)
	}

	// Remove a note and rebuild; the stale row must disappear.
	ws := wiki.NewStore(filepath.Join(dataDir, wiki.DirName))
	note, err := ws.Find("Gardening")
	if err != nil || note == nil {
		t.Fatalf("Find: %v %v", note, err)
	}
	if err := ws.Delete(note); err != nil {
		t.Fatal(err)
	}

	n, err := db.Rebuild(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("indexed %d documents after delete, want 3", n)
	}
	results, err := db.Search("tomatoes", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("stale document still indexed: %+v", results)
	}
}
