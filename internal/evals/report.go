package evals

import (
	"fmt"
	"sort"
	"strings"
)

// Report renders a markdown summary of the given evaluations: overall count,
// mean and median, per-category statistics, and the ten most recent entries.
func Report(evals []Evaluation) string {
	if len(evals) == 0 {
		return "No evaluations found."
	}

	var b strings.Builder
	b.WriteString("# Self-Evaluation Report\n\n")

	scores := make([]float64, len(evals))
	for i, e := range evals {
		scores[i] = float64(e.Score)
	}
	fmt.Fprintf(&b, "**Total evaluations:** %d\n", len(evals))
	fmt.Fprintf(&b, "**Overall average:** %.2f\n", mean(scores))
	fmt.Fprintf(&b, "**Overall median:** %.2f\n\n", median(scores))

	byCategory := make(map[string][]Evaluation)
	for _, e := range evals {
		cat := e.Category
		if cat == "" {
			cat = "Unknown"
		}
		byCategory[cat] = append(byCategory[cat], e)
	}
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	b.WriteString("## By Category\n\n")
	for _, cat := range categories {
		entries := byCategory[cat]
		catScores := make([]float64, len(entries))
		minScore, maxScore := entries[0].Score, entries[0].Score
		minDate, maxDate := entries[0].Date, entries[0].Date
		for i, e := range entries {
			catScores[i] = float64(e.Score)
			if e.Score < minScore {
				minScore = e.Score
			}
			if e.Score > maxScore {
				maxScore = e.Score
			}
			if e.Date < minDate {
				minDate = e.Date
			}
			if e.Date > maxDate {
				maxDate = e.Date
			}
		}
		fmt.Fprintf(&b, "### %s\n", cat)
		fmt.Fprintf(&b, "- **Count:** %d\n", len(entries))
		fmt.Fprintf(&b, "- **Average:** %.2f\n", mean(catScores))
		fmt.Fprintf(&b, "- **Median:** %.2f\n", median(catScores))
		fmt.Fprintf(&b, "- **Min:** %d\n", minScore)
		fmt.Fprintf(&b, "- **Max:** %d\n", maxScore)
		fmt.Fprintf(&b, "- **Date range:** %s to %s\n\n", minDate, maxDate)
	}

	recent := make([]Evaluation, len(evals))
	copy(recent, evals)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date > recent[j].Date
	})
	if len(recent) > 10 {
		recent = recent[:10]
	}

	b.WriteString("## Recent Evaluations\n\n")
	for _, e := range recent {
		fmt.Fprintf(&b, "**%s** | %s | %d/10\n", e.Date, e.Category, e.Score)
		if e.Comments != "" {
			fmt.Fprintf(&b, "  *%s*\n", e.Comments)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
