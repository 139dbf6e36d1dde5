package model

// ValueType classifies the kind of value a field holds. It selects the
// validator and the type-directed extraction regex used by the proximity
// and fuzzy generators.
type ValueType string

const (
	TypeCode         ValueType = "code"          // alphanumeric reference (policy number)
	TypeName         ValueType = "name"          // person or entity name
	TypeCompany      ValueType = "company"       // insurer / company name
	TypeVehicleCode  ValueType = "vehicle_code"  // engine or chassis number
	TypeNumericCode  ValueType = "numeric_code"  // digits-only reference (cheque number)
	TypeDate         ValueType = "date"          // document date
	TypeBankName     ValueType = "bank_name"     // bank or payment gateway
	TypeMonetary     ValueType = "monetary"      // premium / tax amount
	TypeVehicleModel ValueType = "vehicle_model" // make and model
	TypeBodyType     ValueType = "body_type"     // vehicle category
)

// FieldSpec describes one extractable field. Specs are immutable after
// registry construction; their declaration order is the canonical output
// order for every DocumentExtraction.
type FieldSpec struct {
	Key         string    `json:"key" yaml:"key"`
	DisplayName string    `json:"display_name" yaml:"display_name"`
	ValueType   ValueType `json:"value_type" yaml:"value_type"`
	Aliases     []string  `json:"aliases" yaml:"aliases"`
}

// FieldRegistry is an indexed, ordered collection of field specs.
type FieldRegistry struct {
	Fields []FieldSpec
	byKey  map[string]*FieldSpec
}

// NewFieldRegistry creates a FieldRegistry with indexed lookups.
func NewFieldRegistry(fields []FieldSpec) *FieldRegistry {
	r := &FieldRegistry{
		Fields: fields,
		byKey:  make(map[string]*FieldSpec, len(fields)),
	}
	for i := range r.Fields {
		r.byKey[r.Fields[i].Key] = &r.Fields[i]
	}
	return r
}

// ByKey returns the field spec for the given key, or nil if not found.
func (r *FieldRegistry) ByKey(key string) *FieldSpec {
	return r.byKey[key]
}

// Len returns the number of registered fields.
func (r *FieldRegistry) Len() int {
	return len(r.Fields)
}
