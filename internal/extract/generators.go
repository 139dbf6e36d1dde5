package extract

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/sells-group/policy-extract/internal/model"
)

const directContextRadius = 150

// textLine is one line of the document with its byte offset, so candidates
// found by line-oriented strategies still carry a document position.
type textLine struct {
	text   string
	lower  string
	offset int
}

func splitLines(text string) []textLine {
	raw := strings.Split(text, "\n")
	lines := make([]textLine, len(raw))
	offset := 0
	for i, l := range raw {
		lines[i] = textLine{text: l, lower: strings.ToLower(l), offset: offset}
		offset += len(l) + 1
	}
	return lines
}

// directCandidates runs the field's ordered regex table over the whole text.
// Earlier patterns are more specific and earn higher method confidence.
func (e *Engine) directCandidates(text string, f model.FieldSpec) []model.Candidate {
	fp := e.patterns[f.Key]
	var out []model.Candidate
	for i, re := range fp.compiled {
		conf := e.cfg.DirectBase - float64(i)*e.cfg.DirectDecay
		if conf < e.cfg.DirectFloor {
			conf = e.cfg.DirectFloor
		}
		for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
			if len(idx) < 4 || idx[2] < 0 {
				continue
			}
			value := cleanValue(f, text[idx[2]:idx[3]])
			if value == "" {
				continue
			}
			vs := e.scorer.Score(f, value)
			if vs <= 0 {
				continue
			}
			out = append(out, model.Candidate{
				Value:            value,
				MethodConfidence: conf,
				ValidationScore:  vs,
				Method:           fmt.Sprintf("direct pattern %d", i+1),
				Position:         idx[0],
				Context:          contextWindow(text, idx[0], idx[1], directContextRadius),
			})
		}
	}
	return out
}

// proximityCandidates looks for alias labels as literal substrings and pulls
// typed values from the two lines on either side.
func (e *Engine) proximityCandidates(lines []textLine, f model.FieldSpec) []model.Candidate {
	var out []model.Candidate
	for _, alias := range f.Aliases {
		needle := strings.ToLower(alias)
		for i := range lines {
			if !strings.Contains(lines[i].lower, needle) {
				continue
			}
			window := lineWindow(lines, i-2, i+2)
			for _, raw := range valuesForType(window, f.ValueType) {
				value := cleanValue(f, raw)
				if value == "" {
					continue
				}
				vs := e.scorer.Score(f, value)
				if vs <= 0 {
					continue
				}
				out = append(out, model.Candidate{
					Value:            value,
					MethodConfidence: e.cfg.ProximityConfidence,
					ValidationScore:  vs,
					Method:           "context (" + alias + ")",
					Position:         lines[i].offset,
					Context:          strings.Join(strings.Fields(window), " "),
				})
			}
		}
	}
	return out
}

// fuzzyCandidates matches aliases against the label part of each line by
// string similarity, so labels garbled by OCR still anchor a search window.
func (e *Engine) fuzzyCandidates(lines []textLine, f model.FieldSpec) []model.Candidate {
	var out []model.Candidate
	for _, alias := range f.Aliases {
		needle := strings.ToLower(alias)
		for i := range lines {
			label := lines[i].lower
			if colon := strings.Index(label, ":"); colon >= 0 {
				label = label[:colon]
			}
			label = strings.TrimSpace(label)
			if len(label) < 3 || len(label) > 60 {
				continue
			}
			// Exact substring hits belong to the proximity strategy.
			if strings.Contains(lines[i].lower, needle) {
				continue
			}
			sim := levenshtein.Similarity(needle, label, nil)
			if sim < e.cfg.FuzzyThreshold {
				continue
			}
			window := lineWindow(lines, i-1, i+1)
			for _, raw := range valuesForType(window, f.ValueType) {
				value := cleanValue(f, raw)
				if value == "" {
					continue
				}
				vs := e.scorer.Score(f, value)
				if vs <= 0 {
					continue
				}
				out = append(out, model.Candidate{
					Value:            value,
					MethodConfidence: e.cfg.FuzzyBase * sim,
					ValidationScore:  vs,
					Method:           "fuzzy label (" + alias + ")",
					Position:         lines[i].offset,
					Context:          strings.Join(strings.Fields(window), " "),
				})
			}
		}
	}
	return out
}

// fallbackCandidates validates every inventory entry of the field's type,
// regardless of label adjacency. This is the last resort for fields whose
// label text failed OCR entirely.
func (e *Engine) fallbackCandidates(inv *model.Inventory, f model.FieldSpec) []model.Candidate {
	var entries []model.InventoryEntry
	var conf float64
	switch f.ValueType {
	case model.TypeMonetary:
		entries, conf = inv.Amounts, e.cfg.FallbackMonetary
	case model.TypeCode, model.TypeVehicleCode, model.TypeNumericCode:
		entries, conf = inv.Codes, e.cfg.FallbackCode
	case model.TypeDate:
		entries, conf = inv.Dates, e.cfg.FallbackDate
	default:
		return nil
	}
	var out []model.Candidate
	for _, entry := range entries {
		value := cleanValue(f, entry.Value)
		if value == "" {
			continue
		}
		vs := e.scorer.Score(f, value)
		if vs <= 0 {
			continue
		}
		out = append(out, model.Candidate{
			Value:            value,
			MethodConfidence: conf,
			ValidationScore:  vs,
			Method:           "inventory fallback",
			Position:         entry.Position,
			Context:          entry.Context,
		})
	}
	return out
}

func lineWindow(lines []textLine, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(lines)-1 {
		to = len(lines) - 1
	}
	parts := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		parts = append(parts, lines[i].text)
	}
	return strings.Join(parts, "\n")
}
