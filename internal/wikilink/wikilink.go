// Package wikilink extracts wiki-style references from note bodies.
//
// Reference grammar:
//
//	[[target]]
//	[[target|display text]]
//
// The extracted reference is always the portion before the optional "|",
// exactly as written (no trimming or case folding; resolution decides how to
// normalize). Single-bracket markdown hyperlinks like [text](url) never match.
package wikilink

import "regexp"

// re matches [[target]] or [[target|display]]. The target cannot contain
// brackets or "|", which also keeps [[[nested]]] from producing a bogus
// "[nested" target.
var re = regexp.MustCompile(`\[\[([^\][|]+)(?:\|[^\]]*)?\]\]`)

// Extract returns the distinct references found in text, in first-seen order.
// Text without references yields nil.
func Extract(text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		target := m[1]
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// Contains reports whether text references target verbatim.
func Contains(text, target string) bool {
	for _, ref := range Extract(text) {
		if ref == target {
			return true
		}
	}
	return false
}
