package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks the configuration needed for the given run mode and
// returns a single error listing every problem found.
func (c *Config) Validate(mode string) error {
	var problems []string

	ratio := func(name string, v float64) {
		if v < 0 || v > 1 {
			problems = append(problems, fmt.Sprintf("engine.%s must be between 0 and 1", name))
		}
	}
	ratio("min_score", c.Engine.MinScore)
	ratio("direct_base", c.Engine.DirectBase)
	ratio("direct_decay", c.Engine.DirectDecay)
	ratio("direct_floor", c.Engine.DirectFloor)
	ratio("proximity_confidence", c.Engine.ProximityConfidence)
	ratio("fuzzy_threshold", c.Engine.FuzzyThreshold)
	ratio("fuzzy_base", c.Engine.FuzzyBase)

	if c.Engine.UnmatchedLimit < 0 {
		problems = append(problems, "engine.unmatched_limit must be >= 0")
	}
	for key, b := range c.Engine.Bounds {
		if b.Min > b.Max {
			problems = append(problems, fmt.Sprintf("engine.bounds.%s: min exceeds max", key))
		}
	}

	switch mode {
	case "extract":
		// No additional requirements; extraction is self-contained.
	case "batch":
		if c.Batch.MaxConcurrentDocuments < 1 || c.Batch.MaxConcurrentDocuments > 50 {
			problems = append(problems, "batch.max_concurrent_documents must be between 1 and 50")
		}
		if c.Store.Driver != "" && c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
			problems = append(problems, "store.driver must be sqlite or postgres")
		}
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Server.RateLimit <= 0 {
			problems = append(problems, "server.rate_limit must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}
