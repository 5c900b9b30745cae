package evals

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAddBucketsByMonth(t *testing.T) {
	s := NewStore(t.TempDir())
	entries := []Evaluation{
		{Date: "2024-03-05", Category: "health", Score: 7},
		{Date: "2024-03-20", Category: "productivity", Score: 8},
		{Date: "2024-04-01", Category: "health", Score: 6},
	}
	for _, e := range entries {
		if _, err := s.Add(e); err != nil {
			t.Fatalf("Add(%+v): %v", e, err)
		}
	}

	for _, month := range []string{"2024-03", "2024-04"} {
		if _, err := os.Stat(filepath.Join(s.Dir, month+".yaml")); err != nil {
			t.Errorf("expected %s.yaml: %v", month, err)
		}
	}

	march, err := loadFile(filepath.Join(s.Dir, "2024-03.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(march) != 2 {
		t.Errorf("march has %d entries, want 2", len(march))
	}
	if march[0].Date != "2024-03-05" || march[1].Date != "2024-03-20" {
		t.Errorf("march not date-sorted: %+v", march)
	}
}

func TestAddUpsertsOnDateAndCategory(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.Add(Evaluation{Date: "2024-03-05", Category: "health", Score: 7}); err != nil {
		t.Fatal(err)
	}

	updated, err := s.Add(Evaluation{Date: "2024-03-05", Category: "health", Score: 9, Comments: "better"})
	if err != nil {
		t.Fatal(err)
	}
	if !updated {
		t.Error("expected upsert to report an update")
	}

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("all = %+v, want single entry", all)
	}
	if all[0].Score != 9 || all[0].Comments != "better" {
		t.Errorf("entry = %+v", all[0])
	}
}

func TestValidation(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.Add(Evaluation{Date: "2024-03-05", Category: "x", Score: 0}); err == nil {
		t.Error("score 0 should be rejected")
	}
	if _, err := s.Add(Evaluation{Date: "2024-03-05", Category: "x", Score: 11}); err == nil {
		t.Error("score 11 should be rejected")
	}
	if _, err := s.Add(Evaluation{Date: "March 5", Category: "x", Score: 5}); err == nil {
		t.Error("bad date should be rejected")
	}
}

func TestDeleteRemovesEmptyFile(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.Add(Evaluation{Date: "2024-05-01", Category: "focus", Score: 5}); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Delete("2024-05-01", "focus")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !removed {
		t.Error("expected removal")
	}
	if _, err := os.Stat(filepath.Join(s.Dir, "2024-05.yaml")); !os.IsNotExist(err) {
		t.Error("empty month file should be deleted")
	}

	removed, err = s.Delete("2024-05-01", "focus")
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Error("second delete should find nothing")
	}
}

func TestAllNewestFirstAndFilters(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, e := range []Evaluation{
		{Date: "2024-01-10", Category: "health", Score: 5},
		{Date: "2024-02-10", Category: "health", Score: 7, Comments: "gym streak"},
		{Date: "2024-02-15", Category: "productivity", Score: 8},
	} {
		if _, err := s.Add(e); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Date != "2024-02-15" || all[2].Date != "2024-01-10" {
		t.Errorf("all = %+v, want newest first", all)
	}

	if got := FilterRange(all, "2024-02-01", "2024-02-28"); len(got) != 2 {
		t.Errorf("FilterRange = %d, want 2", len(got))
	}
	if got := FilterCategory(all, "health"); len(got) != 2 {
		t.Errorf("FilterCategory = %d, want 2", len(got))
	}
	if got := SearchText(all, "GYM"); len(got) != 1 || got[0].Date != "2024-02-10" {
		t.Errorf("SearchText = %+v", got)
	}
}

func TestReport(t *testing.T) {
	evals := []Evaluation{
		{Date: "2024-01-01", Category: "health", Score: 4},
		{Date: "2024-01-02", Category: "health", Score: 8, Comments: "good run"},
		{Date: "2024-01-03", Category: "productivity", Score: 6},
	}

	report := Report(evals)
	for _, want := range []string{
		"# Self-Evaluation Report",
		"**Total evaluations:** 3",
		"**Overall average:** 6.00",
		"**Overall median:** 6.00",
		"### health",
		"- **Average:** 6.00",
		"- **Min:** 4",
		"- **Max:** 8",
		"- **Date range:** 2024-01-01 to 2024-01-02",
		"### productivity",
		"**2024-01-03** | productivity | 6/10",
		"*good run*",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}

	if got := Report(nil); got != "No evaluations found." {
		t.Errorf("empty report = %q", got)
	}
}

func TestReportMedianEven(t *testing.T) {
	evals := []Evaluation{
		{Date: "2024-01-01", Category: "a", Score: 3},
		{Date: "2024-01-02", Category: "a", Score: 6},
	}
	if report := Report(evals); !strings.Contains(report, "**Overall median:** 4.50") {
		t.Errorf("median of 3 and 6 should be 4.50:\n%s", report)
	}
}
