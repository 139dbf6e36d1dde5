package extract

import (
	"strings"

	"github.com/sells-group/policy-extract/internal/model"
)

// collectUnmatched cross-references the document inventory against the
// selected best matches and surfaces the leftovers for manual review. An
// inventory entry is consumed when its value, raw or cleaned for its
// category, case-insensitively equals any selected value.
func collectUnmatched(inv *model.Inventory, results []model.FieldResult, limit int) model.UnmatchedData {
	selected := make(map[string]bool)
	for _, r := range results {
		if r.BestMatch != nil {
			selected[strings.ToLower(strings.TrimSpace(r.BestMatch.Value))] = true
		}
	}

	var out model.UnmatchedData
	out.Amounts = filterUnmatched(inv.Amounts, selected, model.TypeMonetary, limit, cleanMonetary)
	out.Codes = filterUnmatched(inv.Codes, selected, model.TypeCode, limit, cleanCode)
	out.Dates = filterUnmatched(inv.Dates, selected, model.TypeDate, limit, cleanDate)
	out.Labels = filterUnmatched(inv.Labels, selected, "label", limit, nil)
	return out
}

func filterUnmatched(entries []model.InventoryEntry, selected map[string]bool, typ model.ValueType, limit int, clean func(string) string) []model.UnmatchedCandidate {
	var out []model.UnmatchedCandidate
	seen := make(map[string]bool)
	for _, entry := range entries {
		if limit > 0 && len(out) >= limit {
			break
		}
		raw := strings.ToLower(strings.TrimSpace(entry.Value))
		if raw == "" || seen[raw] || selected[raw] {
			continue
		}
		if clean != nil && selected[strings.ToLower(clean(entry.Value))] {
			continue
		}
		seen[raw] = true
		out = append(out, model.UnmatchedCandidate{
			Value:    entry.Value,
			Type:     string(typ),
			Context:  entry.Context,
			Position: entry.Position,
		})
	}
	return out
}
