package extract

import (
	"github.com/sells-group/policy-extract/internal/model"
)

// aggregateQuality summarizes how well a document extracted. Confidence
// bands are counted over the combined score of each found field.
func aggregateQuality(results []model.FieldResult) model.QualityMetrics {
	m := model.QualityMetrics{TotalFields: len(results)}
	var sum float64
	for _, r := range results {
		if r.BestMatch == nil {
			continue
		}
		m.FoundFields++
		score := r.BestMatch.CombinedScore()
		sum += score
		switch {
		case score > 0.8:
			m.HighConfidence++
		case score >= 0.5:
			m.MediumConfidence++
		default:
			m.LowConfidence++
		}
	}
	if m.TotalFields > 0 {
		m.SuccessRate = float64(m.FoundFields) / float64(m.TotalFields) * 100
	}
	if m.FoundFields > 0 {
		m.AverageConfidence = sum / float64(m.FoundFields)
	}
	return m
}
