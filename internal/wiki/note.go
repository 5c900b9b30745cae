// Package wiki implements the markdown note store and its backlink index.
// Each note is one file with YAML front-matter; backlinks are derived from
// [[wikilink]] references in note bodies and recomputed as a whole on each
// indexing pass.
package wiki

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jepemo/mystuff/internal/atomicfile"
	"github.com/jepemo/mystuff/internal/frontmatter"
	"github.com/jepemo/mystuff/internal/slugs"
)

// Note is a single wiki page. Backlinks are always derived data; they are
// rewritten by Store.Reindex and never edited by hand.
type Note struct {
	Title     string
	Tags      []string
	Aliases   []string
	Backlinks []string
	Body      string

	// Path is where the note was loaded from, empty for unsaved notes.
	Path string
}

// noteMeta is the on-disk front-matter shape.
type noteMeta struct {
	Title     string   `yaml:"title"`
	Tags      []string `yaml:"tags"`
	Aliases   []string `yaml:"aliases"`
	Backlinks []string `yaml:"backlinks"`
}

// Slug returns the note's file identity: the filename stem when the note was
// loaded from disk, otherwise the slugified title.
func (n *Note) Slug() string {
	if n.Path != "" {
		stem := strings.TrimSuffix(filepath.Base(n.Path), filepath.Ext(n.Path))
		if stem != "" {
			return stem
		}
	}
	return slugs.Title(n.Title)
}

// LoadNote reads a note from disk. Malformed or missing front-matter is not
// an error: the note falls back to a title derived from the filename and the
// full file content as body. Front-matter that parses but lacks a title keeps
// its parsed fields; only the title is derived from the filename. Only I/O
// failures are returned as errors.
func LoadNote(path string) (*Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content := string(data)
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var meta noteMeta
	body, ok, err := frontmatter.Unmarshal(content, &meta)
	if err != nil || !ok {
		return &Note{
			Title:     slugs.TitleFromStem(stem),
			Tags:      []string{},
			Aliases:   []string{},
			Backlinks: []string{},
			Body:      strings.TrimSpace(content),
			Path:      path,
		}, nil
	}

	title := meta.Title
	if title == "" {
		title = slugs.TitleFromStem(stem)
	}

	return &Note{
		Title:     title,
		Tags:      emptyIfNil(meta.Tags),
		Aliases:   emptyIfNil(meta.Aliases),
		Backlinks: emptyIfNil(meta.Backlinks),
		Body:      body,
		Path:      path,
	}, nil
}

// Save writes the note to path and records it as the note's location.
// Loading a just-saved note reproduces the same fields.
func (n *Note) Save(path string) error {
	meta := noteMeta{
		Title:     n.Title,
		Tags:      emptyIfNil(n.Tags),
		Aliases:   emptyIfNil(n.Aliases),
		Backlinks: emptyIfNil(n.Backlinks),
	}

	data, err := frontmatter.Compose(meta, n.Body)
	if err != nil {
		return err
	}

	if err := atomicfile.WriteFile(path, data, 0); err != nil {
		return err
	}
	n.Path = path
	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
