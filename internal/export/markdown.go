package export

import (
	"fmt"
	"strings"

	"github.com/ratemycollege/ratemy/internal/recommend"
)

// MarkdownExporter renders stats and rankings as markdown.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(data ExportData) (string, error) {
	var b strings.Builder

	if data.Query != "" || len(data.Ranking) > 0 {
		b.WriteString("# College Recommendations\n\n")
		if data.Query != "" {
			fmt.Fprintf(&b, "Query: %q\n\n", data.Query)
		}
		if len(data.Weights) > 0 {
			b.WriteString("## Inferred Preferences\n\n")
			for _, w := range data.Weights {
				fmt.Fprintf(&b, "- %s: %.4f\n", w.Category, w.Weight)
			}
			b.WriteString("\n")
		}
		if len(data.Ranking) > 0 {
			b.WriteString("## Ranking\n\n")
			b.WriteString("| # | College | Score | Category Score | Tag Bonus |\n")
			b.WriteString("|---|---------|-------|----------------|-----------|\n")
			for i, sc := range data.Ranking {
				fmt.Fprintf(&b, "| %d | %s | %.2f | %.2f | %.2f |\n",
					i+1, sc.Name, sc.FinalScore, sc.CategoryScore, sc.TagBonus)
			}
			b.WriteString("\n")
			for _, sc := range data.Ranking {
				b.WriteString(renderBreakdown(sc))
			}
		}
	}

	if len(data.Stats) > 0 {
		b.WriteString("# College Stats\n\n")
		for _, st := range data.Stats {
			fmt.Fprintf(&b, "## %s\n\n", st.Name)
			fmt.Fprintf(&b, "- Reviews: %d\n", st.ReviewCount)
			if st.AvgRating != nil {
				fmt.Fprintf(&b, "- Overall: %.2f / 10\n", *st.AvgRating)
			} else {
				b.WriteString("- Overall: not enough ratings yet\n")
			}
			for _, cat := range recommend.Categories {
				if v, ok := st.CategoryRatings[cat]; ok {
					fmt.Fprintf(&b, "- %s: %.1f\n", cat, v)
				}
			}
			if len(st.Trending) > 0 {
				fmt.Fprintf(&b, "- Trending: %s\n", strings.Join(st.Trending, " "))
			}
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}

func renderBreakdown(sc recommend.ScoredCollege) string {
	if len(sc.Contributions) == 0 && len(sc.WhyTags) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", sc.Name)
	for _, c := range sc.Contributions {
		fmt.Fprintf(&b, "- %s: weight %.4f × rating %.2f = %.2f\n",
			c.Category, c.Weight, c.Value, c.Points)
	}
	if len(sc.WhyTags) > 0 {
		fmt.Fprintf(&b, "- why: %s\n", strings.Join(sc.WhyTags, ", "))
	}
	b.WriteString("\n")
	return b.String()
}
