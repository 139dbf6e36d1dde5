// Package extract implements the field-extraction engine: candidate
// generation, validation-weighted scoring, best-match selection, and the
// unmatched-data sweep over OCR-noisy document text.
package extract

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/policy-extract/internal/model"
	"github.com/sells-group/policy-extract/internal/validate"
)

// Config carries the engine tunables. Zero values are replaced by defaults
// at construction.
type Config struct {
	// MinScore is the combined-score floor below which a field is reported
	// not found rather than guessed. Negative disables the floor; zero
	// means "use the default".
	MinScore float64
	// DirectBase and DirectDecay set the method confidence of the i-th
	// direct pattern: base - i*decay, never below DirectFloor.
	DirectBase  float64
	DirectDecay float64
	DirectFloor float64
	// ProximityConfidence is the method confidence of alias-substring hits.
	ProximityConfidence float64
	// FuzzyThreshold gates label similarity; FuzzyBase scales it into a
	// method confidence.
	FuzzyThreshold float64
	FuzzyBase      float64
	// Fallback confidences for label-independent inventory candidates.
	FallbackMonetary float64
	FallbackCode     float64
	FallbackDate     float64
	// UnmatchedLimit caps each unmatched category in the output. Negative
	// lifts the cap; zero means "use the default".
	UnmatchedLimit int
	// Bounds overrides the per-field monetary ranges.
	Bounds map[string]model.MonetaryBounds
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		MinScore:            0.3,
		DirectBase:          0.9,
		DirectDecay:         0.05,
		DirectFloor:         0.4,
		ProximityConfidence: 0.8,
		FuzzyThreshold:      0.65,
		FuzzyBase:           0.65,
		FallbackMonetary:    0.6,
		FallbackCode:        0.5,
		FallbackDate:        0.55,
		UnmatchedLimit:      25,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MinScore == 0 {
		c.MinScore = def.MinScore
	}
	if c.MinScore < 0 {
		c.MinScore = 0
	}
	if c.DirectBase == 0 {
		c.DirectBase = def.DirectBase
	}
	if c.DirectDecay == 0 {
		c.DirectDecay = def.DirectDecay
	}
	if c.DirectFloor == 0 {
		c.DirectFloor = def.DirectFloor
	}
	if c.ProximityConfidence == 0 {
		c.ProximityConfidence = def.ProximityConfidence
	}
	if c.FuzzyThreshold == 0 {
		c.FuzzyThreshold = def.FuzzyThreshold
	}
	if c.FuzzyBase == 0 {
		c.FuzzyBase = def.FuzzyBase
	}
	if c.FallbackMonetary == 0 {
		c.FallbackMonetary = def.FallbackMonetary
	}
	if c.FallbackCode == 0 {
		c.FallbackCode = def.FallbackCode
	}
	if c.FallbackDate == 0 {
		c.FallbackDate = def.FallbackDate
	}
	if c.UnmatchedLimit == 0 {
		c.UnmatchedLimit = def.UnmatchedLimit
	}
	return c
}

// Engine extracts the registered fields from raw document text. It is
// immutable after construction and safe for concurrent use across
// documents.
type Engine struct {
	reg        *model.FieldRegistry
	scorer     *validate.Scorer
	patterns   map[string]fieldPatterns
	cfg        Config
	log        *zap.Logger
	strategies []strategy
}

// strategy is one candidate-generation pass. The list is a field so tests
// can substitute a failing generator.
type strategy struct {
	name string
	run  func(e *Engine, text string, lines []textLine, inv *model.Inventory, f model.FieldSpec) []model.Candidate
}

func defaultStrategies() []strategy {
	return []strategy{
		{"direct_patterns", func(e *Engine, text string, _ []textLine, _ *model.Inventory, f model.FieldSpec) []model.Candidate {
			return e.directCandidates(text, f)
		}},
		{"context_analysis", func(e *Engine, _ string, lines []textLine, _ *model.Inventory, f model.FieldSpec) []model.Candidate {
			return e.proximityCandidates(lines, f)
		}},
		{"label_similarity", func(e *Engine, _ string, lines []textLine, _ *model.Inventory, f model.FieldSpec) []model.Candidate {
			return e.fuzzyCandidates(lines, f)
		}},
		{"inventory_fallback", func(e *Engine, _ string, _ []textLine, inv *model.Inventory, f model.FieldSpec) []model.Candidate {
			return e.fallbackCandidates(inv, f)
		}},
	}
}

// New builds an Engine over the given field registry. Pattern compilation
// failures are schema errors and reported immediately rather than at
// extraction time. A nil logger disables engine logging.
func New(reg *model.FieldRegistry, cfg Config, log *zap.Logger) (*Engine, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, eris.New("extract: empty field registry")
	}
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	patterns, err := compilePatterns(reg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		reg:        reg,
		scorer:     validate.NewScorer(cfg.Bounds),
		patterns:   patterns,
		cfg:        cfg,
		log:        log,
		strategies: defaultStrategies(),
	}, nil
}

// Extract runs the full pipeline over one document's text and returns a
// complete record: one FieldResult per registered field in declaration
// order, the unmatched leftovers, and quality metrics. It never returns an
// error; degraded input yields a record with everything not found.
func (e *Engine) Extract(text, filename string) *model.DocumentExtraction {
	doc := &model.DocumentExtraction{
		Filename:  filename,
		Timestamp: time.Now().UTC(),
	}

	if strings.TrimSpace(text) == "" {
		for _, f := range e.reg.Fields {
			doc.FieldResults = append(doc.FieldResults, model.FieldResult{Field: f})
		}
		doc.Quality = aggregateQuality(doc.FieldResults)
		return doc
	}

	inv := buildInventory(text)
	lines := splitLines(text)

	for _, f := range e.reg.Fields {
		doc.FieldResults = append(doc.FieldResults, e.extractField(text, lines, inv, f))
	}

	doc.Unmatched = collectUnmatched(inv, doc.FieldResults, e.cfg.UnmatchedLimit)
	doc.Quality = aggregateQuality(doc.FieldResults)

	e.log.Debug("document extracted",
		zap.String("filename", filename),
		zap.Int("found", doc.Quality.FoundFields),
		zap.Int("total", doc.Quality.TotalFields),
		zap.Float64("avg_confidence", doc.Quality.AverageConfidence))

	return doc
}

// extractField runs the four generators for one field and selects the best
// candidate. A panic inside any strategy marks this field not found without
// touching the rest of the document.
func (e *Engine) extractField(text string, lines []textLine, inv *model.Inventory, f model.FieldSpec) (result model.FieldResult) {
	result = model.FieldResult{Field: f}

	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("field extraction panicked",
				zap.String("field", f.Key),
				zap.Any("panic", r))
			result = model.FieldResult{Field: f}
		}
	}()

	for _, s := range e.strategies {
		if cands := s.run(e, text, lines, inv, f); len(cands) > 0 {
			result.Candidates = append(result.Candidates, cands...)
			result.MethodsUsed = append(result.MethodsUsed, s.name)
		}
	}

	result.BestMatch = selectBest(result.Candidates, e.cfg.MinScore)
	return result
}
