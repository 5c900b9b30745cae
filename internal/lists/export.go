package lists

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var csvHeader = []string{"text", "checked", "added", "modified"}

// ExportCSV writes the list's items as CSV with a fixed header row.
func ExportCSV(l *List, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, item := range l.Items {
		record := []string{item.Text, strconv.FormatBool(item.Checked), item.Added, item.Modified}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportYAML writes the whole list as YAML.
func ExportYAML(l *List, path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ImportCSV reads items from a CSV file and replaces the named list with
// them, creating the list when absent.
func (s *Store) ImportCSV(name, path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return s.Replace(name, nil)
	}

	// Map header columns so column order does not matter.
	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[strings.TrimSpace(strings.ToLower(h))] = i
	}
	field := func(record []string, key string) string {
		i, ok := cols[key]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	items := make([]Item, 0, len(records)-1)
	for _, record := range records[1:] {
		added := field(record, "added")
		if added == "" {
			added = s.now()
		}
		items = append(items, Item{
			Text:     field(record, "text"),
			Checked:  parseBool(field(record, "checked")),
			Added:    added,
			Modified: field(record, "modified"),
		})
	}
	return s.Replace(name, items)
}

// ImportYAML reads a list document from a YAML file and replaces the named
// list with its items.
func (s *Store) ImportYAML(name, path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Items []Item `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Items == nil {
		return nil, fmt.Errorf("invalid list file %s: missing items", path)
	}
	return s.Replace(name, doc.Items)
}

func parseBool(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
