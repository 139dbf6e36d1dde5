package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/policy-extract/internal/model"
)

var (
	inventoryAmountRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:rs\.?|₹|inr)\s*([0-9,]+(?:\.[0-9]{2})?)`),
		regexp.MustCompile(`(?i)([0-9,]+(?:\.[0-9]{2})?)\s*(?:rs\.?|₹|inr)`),
		regexp.MustCompile(`\b([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})?)\b`),
	}
	inventoryCodeRes = []*regexp.Regexp{
		regexp.MustCompile(`\b([A-Z0-9\-/]{4,})\b`),
		regexp.MustCompile(`\b([0-9]{4,})\b`),
	}
	inventoryDateRes = []*regexp.Regexp{
		regexp.MustCompile(`\b([0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{2,4})\b`),
		regexp.MustCompile(`(?i)\b([0-9]{1,2}[\-\s](?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[\-\s][0-9]{4})\b`),
	}
)

const inventoryContextRadius = 50

// buildInventory performs the label-independent whole-document scan for
// typed tokens. The result feeds both the global-fallback generator and the
// unmatched tracker, and is built once per document.
func buildInventory(text string) *model.Inventory {
	inv := &model.Inventory{}
	inv.Amounts = scanEntries(text, inventoryAmountRes)
	inv.Codes = scanEntries(text, inventoryCodeRes)
	inv.Dates = scanEntries(text, inventoryDateRes)
	inv.Labels = scanLabels(text)
	return inv
}

func scanEntries(text string, patterns []*regexp.Regexp) []model.InventoryEntry {
	var entries []model.InventoryEntry
	seen := make(map[string]bool)
	for _, re := range patterns {
		for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
			start, end := idx[2], idx[3]
			if start < 0 {
				continue
			}
			value := text[start:end]
			key := strings.ToLower(value)
			if value == "" || seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, model.InventoryEntry{
				Value:    value,
				Position: start,
				Context:  contextWindow(text, start, end, inventoryContextRadius),
			})
		}
	}
	return entries
}

// scanLabels collects "label: value" line prefixes as free-text labels.
func scanLabels(text string) []model.InventoryEntry {
	var labels []model.InventoryEntry
	seen := make(map[string]bool)
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.Count(line, ":") == 1 && len(line) < 100 {
			label := strings.TrimSpace(line[:strings.Index(line, ":")])
			key := strings.ToLower(label)
			if len(label) >= 3 && len(label) <= 50 && !seen[key] {
				seen[key] = true
				labels = append(labels, model.InventoryEntry{
					Value:    label,
					Position: offset,
					Context:  strings.TrimSpace(line),
				})
			}
		}
		offset += len(line) + 1
	}
	return labels
}

// contextWindow returns the surrounding text collapsed to single spaces.
func contextWindow(text string, start, end, radius int) string {
	from := start - radius
	if from < 0 {
		from = 0
	}
	to := end + radius
	if to > len(text) {
		to = len(text)
	}
	return strings.Join(strings.Fields(text[from:to]), " ")
}
