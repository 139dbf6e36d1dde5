package report

import (
	"fmt"
	"strings"

	"github.com/sells-group/policy-extract/internal/model"
)

// Summary renders a human-readable extraction summary for terminal output.
func Summary(doc *model.DocumentExtraction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Extraction results for %s\n", doc.Filename)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", 60))

	for _, fr := range doc.FieldResults {
		if fr.BestMatch == nil {
			fmt.Fprintf(&b, "  %-28s not found\n", fr.Field.DisplayName)
			continue
		}
		fmt.Fprintf(&b, "  %-28s %s (%.2f via %s)\n",
			fr.Field.DisplayName, fr.BestMatch.Value,
			fr.BestMatch.CombinedScore(), fr.BestMatch.Method)
	}

	q := doc.Quality
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 60))
	fmt.Fprintf(&b, "Found %d/%d fields (%.1f%%), average confidence %.2f\n",
		q.FoundFields, q.TotalFields, q.SuccessRate, q.AverageConfidence)

	if n := doc.Unmatched.Total(); n > 0 {
		fmt.Fprintf(&b, "%d unmatched values recorded for review\n", n)
	}

	return b.String()
}
