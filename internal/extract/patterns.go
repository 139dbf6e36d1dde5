package extract

import (
	"regexp"

	"github.com/rotisserie/eris"

	"github.com/sells-group/policy-extract/internal/model"
)

// directPatternSources maps field keys to their labelled-form regex templates,
// ordered most specific first. Pattern order drives method confidence: the
// first pattern is the most trusted form of the label.
var directPatternSources = map[string][]string{
	"policy_no": {
		`(?i)(?:policy|certificate|cert)\s*(?:no|number|ref|reference|id)\.?\s*:?\s*([A-Z0-9\-/]{4,})`,
		`(?i)policy\s*:?\s*([A-Z0-9\-/]{6,})`,
		`(?i)(?:policy|certificate)\s+(?:is\s+)?([A-Z0-9\-/]{6,})`,
		`\b([A-Z0-9]{4}[A-Z0-9\-/]{4,})\b`,
	},
	"insured_name": {
		`(?i)(?:insured|policy\s*holder|customer|assured)\s*(?:name)?\s*:?\s*([A-Za-z\s.,]{3,50})(?:\n|$|[0-9])`,
		`(?i)name\s*of\s*(?:insured|policy\s*holder)\s*:?\s*([A-Za-z\s.,]{3,50})(?:\n|$)`,
		`(?i)(?:mr|mrs|ms|dr|m/s)\.?\s+([A-Za-z\s.,]{3,50})(?:\n|$)`,
		`(?im)^([A-Z][A-Za-z\s.,]{10,40})$`,
		`(?i)insured\s*:?\s*([A-Za-z\s.,]{5,50})(?:\n|$)`,
	},
	"insurer_name": {
		`(?i)(?:insurer|insurance\s*company|underwriter|carrier)\s*(?:name)?\s*:?\s*([A-Za-z\s&.,\-]{5,})(?:\n|$)`,
		`(?i)(?:insured\s*with|covered\s*by|policy\s*by)\s*:?\s*([A-Za-z\s&.,\-]{5,})(?:\n|$)`,
		`(?i)([A-Za-z\s&.\-]{5,})\s*(?:insurance|assurance|general\s*insurance)(?:\s|$)`,
		`(?i)company\s*:?\s*([A-Za-z\s&.,\-]{5,})(?:\n|$)`,
	},
	"engine_no": {
		`(?i)(?:engine|motor)\s*(?:no|number|serial|#)\.?\s*:?\s*([A-Z0-9]{4,})`,
		`(?i)engine\s*:?\s*([A-Z0-9]{4,})`,
		`(?i)e\.?\s*no\.?\s*:?\s*([A-Z0-9]{4,})`,
		`(?i)motor\s*(?:no|number)\s*:?\s*([A-Z0-9]{4,})`,
	},
	"chassis_no": {
		`(?i)(?:chassis|vin|frame)\s*(?:no|number|#)\.?\s*:?\s*([A-Z0-9]{4,})`,
		`(?i)vehicle\s*identification\s*(?:no|number)\s*:?\s*([A-Z0-9]{17})`,
		`(?i)chassis\s*:?\s*([A-Z0-9]{6,})`,
		`(?i)vin\s*:?\s*([A-Z0-9]{17})`,
	},
	"cheque_no": {
		`(?i)(?:cheque|check)\s*(?:no|number|#)\.?\s*:?\s*([0-9]{4,})`,
		`(?i)(?:payment|transaction)\s*(?:ref|reference|id)\s*:?\s*([0-9A-Z\-]{4,})`,
		`(?i)cheque\s*:?\s*([0-9]{6,})`,
		`(?i)check\s*:?\s*([0-9]{6,})`,
	},
	"cheque_date": {
		`(?i)(?:cheque|check|payment|transaction)\s*date\s*:?\s*([0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{2,4})`,
		`(?i)(?:paid|payment)\s*(?:on|date)\s*:?\s*([0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{2,4})`,
		`(?i)(?:cheque|payment)\s*date\s*:?\s*([0-9]{1,2}[\-\s][A-Za-z]{3,9}[\-\s][0-9]{4})`,
		`(?i)date\s*of\s*payment\s*:?\s*([0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{2,4})`,
		`(?i)dt\s*:?\s*([0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{2,4})`,
	},
	"bank_name": {
		`(?i)(?:bank|drawn\s*on|issuing\s*bank)\s*(?:name)?\s*:?\s*([A-Za-z\s&.,\-]{3,})(?:\n|$|branch)`,
		`(?i)([A-Za-z\s&.\-]{3,})\s*bank(?:\s|$)`,
		`(?i)financial\s*institution\s*:?\s*([A-Za-z\s&.,\-]{3,})(?:\n|$)`,
		`(?i)banker\s*:?\s*([A-Za-z\s&.,\-]{3,})(?:\n|$)`,
	},
}

// monetaryPatternSources apply to every monetary field; the field-specific
// signal comes from context and validation, not the pattern itself.
var monetaryPatternSources = []string{
	`(?i)(?:rs\.?|₹|inr)\s*([0-9,]+(?:\.[0-9]{2})?)`,
	`(?i)amount\s*:?\s*(?:rs\.?|₹|inr)?\s*([0-9,]+(?:\.[0-9]{2})?)`,
	`(?i)([0-9,]+(?:\.[0-9]{2})?)\s*(?:rs\.?|₹|inr)`,
	`\b([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})?)\b`,
}

var vehiclePatternSources = []string{
	`(?i)(?:make|model|vehicle\s*model|car\s*model)\s*:?\s*([A-Za-z0-9\s\-/]{3,}?)(?:\n|$|year)`,
	`(?i)(?:make\s*[&/]\s*model|vehicle\s*description)\s*:?\s*([A-Za-z0-9\s\-/]{3,})(?:\n|$)`,
	`(?i)(?:body\s*type|vehicle\s*type|category)\s*:?\s*([A-Za-z\s\-]{3,})(?:\n|$)`,
}

// fieldPatterns holds the compiled direct patterns for one field.
type fieldPatterns struct {
	key      string
	compiled []*regexp.Regexp
}

// compilePatterns resolves and compiles the direct-pattern table for every
// field in the registry. A pattern that fails to compile is a schema error
// and aborts engine construction.
func compilePatterns(reg *model.FieldRegistry) (map[string]fieldPatterns, error) {
	out := make(map[string]fieldPatterns, reg.Len())
	for _, f := range reg.Fields {
		sources := directPatternSources[f.Key]
		if sources == nil {
			switch f.ValueType {
			case model.TypeMonetary:
				sources = monetaryPatternSources
			case model.TypeVehicleModel, model.TypeBodyType:
				sources = vehiclePatternSources
			}
		}
		fp := fieldPatterns{key: f.Key, compiled: make([]*regexp.Regexp, 0, len(sources))}
		for _, src := range sources {
			re, err := regexp.Compile(src)
			if err != nil {
				return nil, eris.Wrapf(err, "extract: compile pattern for field %s", f.Key)
			}
			fp.compiled = append(fp.compiled, re)
		}
		out[f.Key] = fp
	}
	return out, nil
}

// Value regexes used by the proximity and fuzzy strategies to pull typed
// tokens out of a window of lines.
var (
	monetaryValueRe = regexp.MustCompile(`(?i)(?:rs\.?|₹|inr)?\s*([0-9,]+(?:\.[0-9]{2})?)`)
	codeValueRe     = regexp.MustCompile(`\b([A-Z0-9\-/]{4,})\b`)
	numericValueRe  = regexp.MustCompile(`\b([0-9]{4,})\b`)
	dateValueRe     = regexp.MustCompile(`(?i)\b([0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{2,4}|[0-9]{1,2}[\-\s][A-Za-z]{3,9}[\-\s][0-9]{4})\b`)
	textValueRe     = regexp.MustCompile(`\b([A-Za-z][A-Za-z\s&.\-]{2,49})\b`)
)

// valuesForType scans a text window for tokens of the field's value type.
func valuesForType(window string, vt model.ValueType) []string {
	var re *regexp.Regexp
	switch vt {
	case model.TypeMonetary:
		re = monetaryValueRe
	case model.TypeCode, model.TypeVehicleCode:
		re = codeValueRe
	case model.TypeNumericCode:
		re = numericValueRe
	case model.TypeDate:
		re = dateValueRe
	default:
		re = textValueRe
	}
	matches := re.FindAllStringSubmatch(window, -1)
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		if v := m[1]; v != "" {
			values = append(values, v)
		}
	}
	return values
}
