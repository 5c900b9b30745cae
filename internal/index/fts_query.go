package index

import "strings"

// BuildFTSQuery builds a safe FTS5 MATCH query scoped to the content column.
// Hyphenated tokens are quoted so the FTS parser does not treat them as
// operators; quoted phrases and boolean operators pass through untouched.
func BuildFTSQuery(userQuery string) string {
	q := strings.TrimSpace(userQuery)
	if q == "" {
		// Phrase query for the empty string matches nothing.
		return `content:""`
	}
	return "content: (" + sanitizeFTSQuery(q) + ")"
}

func sanitizeFTSQuery(q string) string {
	var b strings.Builder
	b.Grow(len(q) + 8)

	inQuotes := false
	i := 0
	for i < len(q) {
		c := q[i]

		if c == '"' {
			inQuotes = !inQuotes
			b.WriteByte(c)
			i++
			continue
		}
		if inQuotes {
			b.WriteByte(c)
			i++
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '(' || c == ')' {
			b.WriteByte(c)
			i++
			continue
		}

		start := i
		for i < len(q) {
			cc := q[i]
			if cc == '"' || cc == '(' || cc == ')' || cc == ' ' || cc == '\t' || cc == '\n' || cc == '\r' {
				break
			}
			i++
		}
		tok := q[start:i]

		switch strings.ToUpper(tok) {
		case "AND", "OR", "NOT", "NEAR":
			b.WriteString(tok)
			continue
		}

		if strings.Contains(tok, "-") && !strings.HasPrefix(tok, "-") {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(tok, `"`, `""`))
			b.WriteByte('"')
			continue
		}

		b.WriteString(tok)
	}

	return b.String()
}
