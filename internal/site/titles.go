package site

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

var (
	dayRe   = regexp.MustCompile(`(?i)^#\s+Day\s+(\d+):\s*(.+)$`)
	topicRe = regexp.MustCompile(`(?i)^#\s+Topic:\s*(.+)$`)
	numRe   = regexp.MustCompile(`^\d+-?`)

	// leadingNumRe gates which lesson files become site pages.
	leadingNumRe = regexp.MustCompile(`^\d+`)
)

// LessonTitle extracts a display title from lesson markdown. It recognizes
// "# Day N: Title" and "# Topic: Name" headings and combines them as
// "Day N: Title (Name)". Returns empty when no heading matches.
func LessonTitle(content string) string {
	var dayTitle, topic string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if dayTitle == "" {
			if m := dayRe.FindStringSubmatch(line); m != nil {
				dayTitle = fmt.Sprintf("Day %s: %s", m[1], strings.TrimSpace(m[2]))
			}
		}
		if topic == "" {
			if m := topicRe.FindStringSubmatch(line); m != nil {
				topic = strings.TrimSpace(m[1])
			}
		}
		if dayTitle != "" && topic != "" {
			break
		}
	}

	switch {
	case dayTitle != "" && topic != "":
		return fmt.Sprintf("%s (%s)", dayTitle, topic)
	case dayTitle != "":
		return dayTitle
	default:
		return topic
	}
}

// FallbackTitle derives a title from a lesson filename: the numeric prefix
// is dropped and separators become spaces, title-cased.
func FallbackTitle(name string) string {
	stem := strings.TrimSuffix(path.Base(name), ".md")
	stem = numRe.ReplaceAllString(stem, "")
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	words := strings.Fields(stem)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return strings.TrimSuffix(path.Base(name), ".md")
	}
	return strings.Join(words, " ")
}
