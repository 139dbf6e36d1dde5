package model

import "time"

// Candidate is a single proposed value for a field, produced by one
// generator strategy. MethodConfidence and ValidationScore both lie in
// [0, 1]; their product is the ranking criterion for selection.
type Candidate struct {
	Value            string  `json:"value"`
	MethodConfidence float64 `json:"method_confidence"`
	ValidationScore  float64 `json:"validation_score"`
	Method           string  `json:"method"`
	Position         int     `json:"position"`
	Context          string  `json:"context"`
}

// CombinedScore is the selection ranking criterion.
func (c Candidate) CombinedScore() float64 {
	return c.MethodConfidence * c.ValidationScore
}

// FieldResult holds the full candidate pool and the selected best match
// for one field. BestMatch is nil when no candidate reached the selection
// threshold.
type FieldResult struct {
	Field       FieldSpec  `json:"field"`
	Candidates  []Candidate `json:"candidates,omitempty"`
	BestMatch   *Candidate  `json:"best_match,omitempty"`
	MethodsUsed []string    `json:"methods_used,omitempty"`
}

// Found reports whether a best match was selected.
func (fr FieldResult) Found() bool {
	return fr.BestMatch != nil
}

// InventoryEntry is one typed token found anywhere in the document,
// independent of label adjacency.
type InventoryEntry struct {
	Value    string `json:"value"`
	Position int    `json:"position"`
	Context  string `json:"context"`
}

// Inventory is the document-wide collection of typed tokens, built once
// per document and reused by the global-fallback generator and the
// unmatched tracker.
type Inventory struct {
	Amounts []InventoryEntry
	Codes   []InventoryEntry
	Dates   []InventoryEntry
	Labels  []InventoryEntry
}

// UnmatchedCandidate is an inventory entry whose value was not consumed
// by any field's best match. Surfaced for manual review only.
type UnmatchedCandidate struct {
	Value    string `json:"value"`
	Type     string `json:"type"`
	Context  string `json:"context"`
	Position int    `json:"position"`
}

// UnmatchedData groups leftover inventory entries by category.
type UnmatchedData struct {
	Amounts []UnmatchedCandidate `json:"amounts,omitempty"`
	Codes   []UnmatchedCandidate `json:"codes,omitempty"`
	Dates   []UnmatchedCandidate `json:"dates,omitempty"`
	Labels  []UnmatchedCandidate `json:"labels,omitempty"`
}

// Total returns the number of unmatched entries across all categories.
func (u UnmatchedData) Total() int {
	return len(u.Amounts) + len(u.Codes) + len(u.Dates) + len(u.Labels)
}

// QualityMetrics summarizes extraction quality for one document.
type QualityMetrics struct {
	TotalFields       int     `json:"total_fields"`
	FoundFields       int     `json:"found_fields"`
	SuccessRate       float64 `json:"success_rate"`
	AverageConfidence float64 `json:"average_confidence"`
	HighConfidence    int     `json:"high_confidence"`
	MediumConfidence  int     `json:"medium_confidence"`
	LowConfidence     int     `json:"low_confidence"`
}

// DocumentExtraction is the complete result record for one document.
// FieldResults is ordered by field declaration order; the 15 canonical
// keys are always present, with "not found" as the uniform negative
// signal.
type DocumentExtraction struct {
	Filename     string         `json:"filename"`
	Timestamp    time.Time      `json:"timestamp"`
	FieldResults []FieldResult  `json:"field_results"`
	Unmatched    UnmatchedData  `json:"unmatched"`
	Quality      QualityMetrics `json:"quality"`
}

// Result returns the field result for the given key, or nil if the key
// is not part of the schema.
func (d *DocumentExtraction) Result(key string) *FieldResult {
	for i := range d.FieldResults {
		if d.FieldResults[i].Field.Key == key {
			return &d.FieldResults[i]
		}
	}
	return nil
}

// BestValue returns the selected value for the given key, or "" when the
// field was not found.
func (d *DocumentExtraction) BestValue(key string) string {
	fr := d.Result(key)
	if fr == nil || fr.BestMatch == nil {
		return ""
	}
	return fr.BestMatch.Value
}
