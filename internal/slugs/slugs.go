// Package slugs provides the canonical slugification helpers used across mystuff.
//
// Two strategies exist on purpose:
//   - Title slugs: filename stems for wiki pages, meeting notes, and lists.
//     A conservative ASCII transformation, so that slugify(title) keeps
//     matching the stems of files written by earlier versions of the tool.
//   - Component slugs: output paths for the generated site, built on
//     gosimple/slug (unicode transliteration is fine there since those paths
//     never have to round-trip back to a data filename).
package slugs

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// Title converts a human-readable title to a filename-safe slug.
//
// Lowercases, drops every rune that is not a lowercase ASCII letter, digit,
// hyphen, or space, converts spaces to hyphens, collapses repeated hyphens,
// and trims leading/trailing hyphens.
//
// Title("Team Meeting: Q4 Review & Planning (2023)") == "team-meeting-q4-review-planning-2023".
func Title(text string) string {
	var b strings.Builder
	prevDash := false

	for _, r := range strings.ToLower(text) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevDash = false
		case r == ' ' || r == '-':
			if !prevDash && b.Len() > 0 {
				b.WriteRune('-')
				prevDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// TitleFromStem reverses the filename derivation for display: hyphens become
// spaces and each word is title-cased. It cannot recover punctuation, so it is
// only a fallback for files that carry no front-matter title.
func TitleFromStem(stem string) string {
	words := strings.Split(stem, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Component converts a string to a URL-safe slug for one site output path
// component.
func Component(s string) string {
	s = strings.TrimSuffix(s, ".md")
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(s, " ", "-"))
	}
	return slugged
}

// Path slugifies each "/"-separated component of a relative path, preserving
// the directory structure. A trailing ".md" is stripped first.
func Path(path string) string {
	path = strings.TrimSuffix(path, ".md")

	parts := strings.Split(path, "/")
	for i, part := range parts {
		parts[i] = Component(part)
	}
	return strings.Join(parts, "/")
}
