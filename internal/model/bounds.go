package model

// MonetaryBounds is the accepted amount range for a monetary field.
// Values outside the range score zero during validation.
type MonetaryBounds struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v falls inside the bounds, inclusive.
func (b MonetaryBounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// DefaultBounds returns the per-field amount ranges used when no override
// is configured. Keys without an entry fall back to the "default" entry.
func DefaultBounds() map[string]MonetaryBounds {
	return map[string]MonetaryBounds{
		"default":               {Min: 50, Max: 10_000_000},
		"net_od_premium":        {Min: 50, Max: 5_000_000},
		"net_liability_premium": {Min: 50, Max: 5_000_000},
		"total_premium":         {Min: 50, Max: 10_000_000},
		"gst_amount":            {Min: 50, Max: 2_000_000},
		"gross_premium":         {Min: 50, Max: 10_000_000},
	}
}

// BoundsFor resolves the bounds for a field key from the given map,
// falling back to the "default" entry and finally to the built-in default.
func BoundsFor(bounds map[string]MonetaryBounds, key string) MonetaryBounds {
	if b, ok := bounds[key]; ok {
		return b
	}
	if b, ok := bounds["default"]; ok {
		return b
	}
	return MonetaryBounds{Min: 50, Max: 10_000_000}
}
