package extract

import (
	"sort"

	"github.com/sells-group/policy-extract/internal/model"
)

// selectBest ranks candidates by combined score and returns the winner, or
// nil when nothing clears the minimum. The sort is stable, so among equal
// scores the earliest-generated candidate wins; generation order is itself
// deterministic, which makes the whole selection reproducible.
func selectBest(candidates []model.Candidate, minScore float64) *model.Candidate {
	if len(candidates) == 0 {
		return nil
	}
	ranked := make([]model.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedScore() > ranked[j].CombinedScore()
	})
	best := ranked[0]
	if best.CombinedScore() < minScore {
		return nil
	}
	return &best
}
