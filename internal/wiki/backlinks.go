package wiki

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jepemo/mystuff/internal/wikilink"
)

// ReindexResult summarizes a backlink recomputation pass.
type ReindexResult struct {
	Scanned  int
	Updated  int
	Failures []error
}

// Reindex recomputes backlinks for every note in the store and rewrites the
// files whose backlink set changed. Backlinks are never updated
// incrementally: each pass derives them from scratch out of the current body
// text of all notes, so deleted notes and removed references fall out
// naturally.
//
// A write failure for one note is recorded in the result and does not stop
// the remaining rewrites.
func (s *Store) Reindex() (*ReindexResult, error) {
	notes, err := s.List()
	if err != nil {
		return nil, err
	}

	// Resolution map: lowercased title or alias to the owning note. On a
	// collision the later note in enumeration order shadows the earlier one.
	resolve := make(map[string]*Note)
	claim := func(key string, note *Note) {
		key = strings.ToLower(key)
		if prev, ok := resolve[key]; ok && prev != note {
			s.warnf("wiki: %q is claimed by both %s and %s; links resolve to the latter",
				key, prev.Slug(), note.Slug())
		}
		resolve[key] = note
	}
	for _, note := range notes {
		claim(note.Title, note)
		for _, alias := range note.Aliases {
			claim(alias, note)
		}
	}

	// Accumulate referencing slugs per target note.
	incoming := make(map[*Note]map[string]struct{}, len(notes))
	for _, note := range notes {
		incoming[note] = make(map[string]struct{})
	}
	for _, note := range notes {
		for _, ref := range wikilink.Extract(note.Body) {
			target, ok := resolve[strings.ToLower(ref)]
			if !ok {
				continue
			}
			incoming[target][note.Slug()] = struct{}{}
		}
	}

	result := &ReindexResult{Scanned: len(notes)}
	for _, note := range notes {
		updated := make([]string, 0, len(incoming[note]))
		for slug := range incoming[note] {
			updated = append(updated, slug)
		}
		sort.Strings(updated)

		if sameSet(note.Backlinks, updated) {
			continue
		}
		note.Backlinks = updated
		if err := note.Save(note.Path); err != nil {
			result.Failures = append(result.Failures,
				fmt.Errorf("updating backlinks of %s: %w", note.Slug(), err))
			continue
		}
		result.Updated++
	}
	return result, nil
}

// sameSet compares two slug lists ignoring order and duplicates.
func sameSet(a, b []string) bool {
	seen := make(map[string]int, len(a))
	for _, v := range a {
		seen[v] |= 1
	}
	for _, v := range b {
		seen[v] |= 2
	}
	for _, bits := range seen {
		if bits != 3 {
			return false
		}
	}
	return true
}
