// Package frontmatter reads and writes the YAML front-matter convention shared
// by every markdown store in mystuff:
//
//	---
//	<yaml mapping>
//	---
//
//	<body>
//
// Each store supplies its own typed metadata struct; this package only handles
// the delimiting and (de)serialization.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter is the front-matter marker line.
const Delimiter = "---"

// Split separates content into the raw front-matter block and the body.
// ok is false when the content does not begin with a closed front-matter
// block; in that case body is the full content.
func Split(content string) (meta, body string, ok bool) {
	if !strings.HasPrefix(content, Delimiter+"\n") {
		return "", content, false
	}

	rest := content[len(Delimiter)+1:]
	idx := strings.Index(rest, "\n"+Delimiter+"\n")
	switch {
	case idx >= 0:
		return rest[:idx], rest[idx+len(Delimiter)+2:], true
	case strings.HasSuffix(rest, "\n"+Delimiter):
		return strings.TrimSuffix(rest, "\n"+Delimiter), "", true
	default:
		// Unclosed block: treat the whole file as body.
		return "", content, false
	}
}

// Unmarshal parses content, decoding the front-matter into meta. The returned
// body has surrounding whitespace trimmed, matching what Compose writes.
// When no front-matter is present, meta is left untouched and ok is false.
func Unmarshal(content string, meta interface{}) (body string, ok bool, err error) {
	raw, body, ok := Split(content)
	if !ok {
		return strings.TrimSpace(body), false, nil
	}
	if err := yaml.Unmarshal([]byte(raw), meta); err != nil {
		return "", true, fmt.Errorf("parse front-matter: %w", err)
	}
	return strings.TrimSpace(body), true, nil
}

// Compose serializes meta and body into the on-disk file format.
func Compose(meta interface{}, body string) ([]byte, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("serialize front-matter: %w", err)
	}

	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	b.Write(raw)
	b.WriteString(Delimiter + "\n\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}
