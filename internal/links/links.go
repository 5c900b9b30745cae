// Package links manages the bookmark collection stored as one JSON object
// per line in links.jsonl under the data directory.
package links

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jepemo/mystuff/internal/atomicfile"
)

// FileName is the store file inside the data directory.
const FileName = "links.jsonl"

// Link is one saved bookmark.
type Link struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Timestamp   string   `json:"timestamp"`
}

// Store reads and writes the links file.
type Store struct {
	Path string

	// Now supplies timestamps, overridable in tests.
	Now func() time.Time
}

// NewStore returns a store for the links file under dataDir.
func NewStore(dataDir string) *Store {
	return &Store{Path: filepath.Join(dataDir, FileName), Now: time.Now}
}

// Load reads all links. A missing file yields an empty list; malformed lines
// are skipped.
func (s *Store) Load() ([]Link, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var links []Link
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var l Link
		if err := json.Unmarshal([]byte(line), &l); err != nil {
			continue
		}
		links = append(links, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return links, nil
}

// Save rewrites the whole links file.
func (s *Store) Save(links []Link) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, l := range links {
		if l.Tags == nil {
			l.Tags = []string{}
		}
		if err := enc.Encode(l); err != nil {
			return err
		}
	}
	return atomicfile.WriteFile(s.Path, buf.Bytes(), 0o644)
}

// Add appends a link unless its URL is already stored. It returns the stored
// link and whether it was newly added.
func (s *Store) Add(rawURL, title, description string, tags []string) (Link, bool, error) {
	links, err := s.Load()
	if err != nil {
		return Link{}, false, err
	}
	for _, l := range links {
		if l.URL == rawURL {
			return l, false, nil
		}
	}

	if title == "" {
		title = TitleFromURL(rawURL)
	}
	if tags == nil {
		tags = []string{}
	}
	link := Link{
		URL:         rawURL,
		Title:       title,
		Description: description,
		Tags:        tags,
		Timestamp:   s.Now().Format(time.RFC3339),
	}
	links = append(links, link)
	if err := s.Save(links); err != nil {
		return Link{}, false, err
	}
	return link, true, nil
}

// Edit updates the link identified by its URL. Nil tag and description
// pointers leave the field unchanged; non-nil values replace it.
func (s *Store) Edit(rawURL string, title string, description *string, tags []string) (Link, error) {
	links, err := s.Load()
	if err != nil {
		return Link{}, err
	}
	for i := range links {
		if links[i].URL != rawURL {
			continue
		}
		if title != "" {
			links[i].Title = title
		}
		if description != nil {
			links[i].Description = *description
		}
		if tags != nil {
			links[i].Tags = tags
		}
		if err := s.Save(links); err != nil {
			return Link{}, err
		}
		return links[i], nil
	}
	return Link{}, fmt.Errorf("link not found: %s", rawURL)
}

// Delete removes the link identified by its URL.
func (s *Store) Delete(rawURL string) error {
	links, err := s.Load()
	if err != nil {
		return err
	}
	kept := links[:0]
	for _, l := range links {
		if l.URL != rawURL {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(links) {
		return fmt.Errorf("link not found: %s", rawURL)
	}
	return s.Save(kept)
}

// Search returns links whose title, description, or any tag contains query,
// case-insensitively.
func Search(links []Link, query string) []Link {
	q := strings.ToLower(query)
	var out []Link
	for _, l := range links {
		if Matches(l, q) {
			out = append(out, l)
		}
	}
	return out
}

// Matches reports whether the link matches an already-lowercased query.
func Matches(l Link, lowered string) bool {
	if strings.Contains(strings.ToLower(l.Title), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(l.Description), lowered) {
		return true
	}
	for _, tag := range l.Tags {
		if strings.Contains(strings.ToLower(tag), lowered) {
			return true
		}
	}
	return false
}

// FilterByTag returns links carrying the exact tag.
func FilterByTag(links []Link, tag string) []Link {
	var out []Link
	for _, l := range links {
		for _, t := range l.Tags {
			if t == tag {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

// TitleFromURL derives a default title from the URL host.
func TitleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
