// Package validate scores candidate values for extracted document fields.
// All scorers are pure functions returning a confidence in [0,1]; a zero
// score means the value is rejected outright.
package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/policy-extract/internal/model"
)

var (
	codeRe        = regexp.MustCompile(`^[A-Z0-9\-/]+$`)
	strongCodeRe  = regexp.MustCompile(`^[A-Z0-9]{4}[A-Z0-9\-/]{4,}$`)
	alnumRe       = regexp.MustCompile(`^[A-Z0-9]+$`)
	chequeRe      = regexp.MustCompile(`^[0-9A-Z\-]+$`)
	digitsOnlyRe  = regexp.MustCompile(`^[0-9]+$`)
	hasLetterRe   = regexp.MustCompile(`[A-Za-z]`)
	hasUpperRe    = regexp.MustCompile(`[A-Z]`)
	hasDigitRe    = regexp.MustCompile(`[0-9]`)
	honorificRe   = regexp.MustCompile(`(?i)^(?:Mr|Mrs|Ms|Dr|M/s)\.?\s+[A-Za-z\s\.]+$`)
	titleCaseRe   = regexp.MustCompile(`^[A-Z][a-zA-Z\s\.]{2,}$`)
	modelCharsRe  = regexp.MustCompile(`^[A-Za-z0-9\s\-/]+$`)
	bodyCharsRe   = regexp.MustCompile(`^[a-z\s\-]+$`)
	nonNumericRe  = regexp.MustCompile(`[^0-9.]`)
	datePartSepRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{2,4}$`),
		regexp.MustCompile(`^[0-9]{4}[/\-.][0-9]{1,2}[/\-.][0-9]{1,2}$`),
		regexp.MustCompile(`(?i)^[0-9]{1,2}[\-\s]+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[\-\s]+[0-9]{4}$`),
	}
)

// Upper-cased substrings that mark a value as boilerplate rather than data.
var (
	codeBlacklist = []string{"PAGE", "TOTAL", "AMOUNT", "PREMIUM", "GST", "NAME", "POLICY"}
	nameBlacklist = []string{
		"PAGE", "TOTAL", "AMOUNT", "PREMIUM", "TAX", "GST", "POLICY",
		"CERTIFICATE", "MOTOR", "VEHICLE", "WEBSITE", "DISPLAY",
	}
	// Business names legitimately contain words like INSURANCE or BANK, so
	// they get a narrower rejection list.
	businessWords  = []string{"ENGINEERING", "LIMITED", "COMPANY", "INSURANCE", "GENERAL", "BANK"}
	businessReject = []string{"TERMS", "CONDITIONS", "WEBSITE", "WWW", "HTTP", "CLICK"}

	companyReject = []string{
		"TERMS", "CONDITIONS", "WEBSITE", "DISPLAY", "WILL", "CAN",
		"WWW", "HTTP", "CLICK", "HERE", "LINK", "PAGE", "DOCUMENT", "PDF",
	}
	insuranceKeywords = []string{
		"insurance", "assurance", "general", "life", "motor", "vehicle", "aig",
		"tata", "bajaj", "reliance", "hdfc", "icici", "lic", "new india",
		"oriental", "united", "royal", "star", "future", "kotak", "digit",
	}
	companyIndicators = []string{"ltd", "limited", "co.", "inc", "corp", "company", "enterprises", "group"}

	engineFragments = []string{"ERING", "GINE", "ENGINE", "MOTOR", "NUMBER", "NO"}

	bankIndicators = []string{
		"bank", "hdfc", "icici", "sbi", "axis", "kotak", "pnb", "canara",
		"union", "federal", "indusind", "karur", "payment", "gateway",
		"payu", "razorpay", "banking", "financial",
	}
	nonBankTerms = []string{"premium", "amount", "policy", "insurance", "total", "gst", "tax"}

	vehicleReject = []string{
		"insurance", "assurance", "general", "aig", "company", "co.", "ltd", "limited",
		"premium", "amount", "total", "gst", "tax", "policy", "certificate",
	}
	carBrands = []string{
		"maruti", "honda", "toyota", "hyundai", "tata", "mahindra", "ford",
		"chevrolet", "nissan", "volkswagen", "bmw", "audi", "mercedes",
		"skoda", "renault", "kia", "jeep", "volvo",
	}
	bodyTypes = []string{
		"sedan", "hatchback", "suv", "coupe", "convertible", "wagon",
		"truck", "motorcycle", "scooter", "van", "jeep", "pickup",
	}
)

func containsAny(upper string, words []string) bool {
	for _, w := range words {
		if strings.Contains(upper, w) {
			return true
		}
	}
	return false
}

// Scorer validates candidate values per field. Monetary fields use the
// configured per-field amount bounds.
type Scorer struct {
	bounds map[string]model.MonetaryBounds
}

// NewScorer returns a Scorer with the given monetary bounds. A nil map
// selects the built-in defaults.
func NewScorer(bounds map[string]model.MonetaryBounds) *Scorer {
	if bounds == nil {
		bounds = model.DefaultBounds()
	}
	return &Scorer{bounds: bounds}
}

// Score validates value against the field's type and returns a confidence
// in [0,1]. It never panics regardless of input.
func (s *Scorer) Score(field model.FieldSpec, value string) float64 {
	switch field.ValueType {
	case model.TypeCode:
		return PolicyNumber(value)
	case model.TypeName:
		return PersonName(value)
	case model.TypeCompany:
		return CompanyName(value)
	case model.TypeVehicleCode:
		if field.Key == "chassis_no" {
			return ChassisNumber(value)
		}
		return EngineNumber(value)
	case model.TypeNumericCode:
		return ChequeNumber(value)
	case model.TypeDate:
		return Date(value)
	case model.TypeBankName:
		return BankName(value)
	case model.TypeMonetary:
		return Monetary(value, model.BoundsFor(s.bounds, field.Key))
	case model.TypeVehicleModel:
		return VehicleModel(value)
	case model.TypeBodyType:
		return BodyType(value)
	}
	return 0
}

// PolicyNumber scores a policy or certificate identifier.
func PolicyNumber(value string) float64 {
	v := strings.ToUpper(strings.TrimSpace(value))
	if len(v) < 4 || len(v) > 30 || !codeRe.MatchString(v) {
		return 0
	}
	if containsAny(v, codeBlacklist) {
		return 0
	}
	if len(v) < 6 {
		return 0.5
	}
	if strongCodeRe.MatchString(v) {
		return 1.0
	}
	return 0.8
}

// PersonName scores an insured or policy-holder name.
func PersonName(value string) float64 {
	v := strings.TrimSpace(value)
	if len(v) < 3 || len(v) > 100 || !hasLetterRe.MatchString(v) {
		return 0
	}
	if len(strings.Fields(v)) < 2 && len(v) < 10 {
		return 0
	}
	upper := strings.ToUpper(v)
	if containsAny(upper, businessWords) {
		if containsAny(upper, businessReject) {
			return 0
		}
	} else if containsAny(upper, nameBlacklist) {
		return 0
	}
	if honorificRe.MatchString(v) {
		return 1.0
	}
	if titleCaseRe.MatchString(v) {
		return 0.9
	}
	return 0.7
}

// CompanyName scores an insurer name.
func CompanyName(value string) float64 {
	v := strings.TrimSpace(value)
	if len(v) < 4 || len(v) > 100 {
		return 0
	}
	if containsAny(strings.ToUpper(v), companyReject) {
		return 0
	}
	lower := strings.ToLower(v)
	if containsAny(lower, insuranceKeywords) {
		return 1.0
	}
	if containsAny(lower, companyIndicators) && len(v) > 6 {
		return 0.9
	}
	if len(v) > 8 && hasLetterRe.MatchString(v) {
		return 0.6
	}
	return 0
}

// EngineNumber scores an engine serial. Engine numbers mix letters and
// digits; bare dictionary fragments from OCR are rejected.
func EngineNumber(value string) float64 {
	v := strings.ToUpper(strings.TrimSpace(value))
	if len(v) < 6 || len(v) > 25 || !alnumRe.MatchString(v) {
		return 0
	}
	if !hasUpperRe.MatchString(v) || !hasDigitRe.MatchString(v) {
		return 0
	}
	for _, frag := range engineFragments {
		if v == frag {
			return 0
		}
	}
	if len(v) >= 8 {
		return 1.0
	}
	return 0.8
}

// ChassisNumber scores a chassis or VIN code. A 17-character value matches
// the VIN standard exactly and scores full confidence.
func ChassisNumber(value string) float64 {
	v := strings.ToUpper(strings.TrimSpace(value))
	if len(v) < 6 || len(v) > 25 || !alnumRe.MatchString(v) {
		return 0
	}
	if len(v) == 17 {
		return 1.0
	}
	if !hasUpperRe.MatchString(v) || !hasDigitRe.MatchString(v) {
		return 0
	}
	if len(v) >= 8 {
		return 0.8
	}
	return 0.6
}

// ChequeNumber scores a cheque or payment reference.
func ChequeNumber(value string) float64 {
	v := strings.ToUpper(strings.TrimSpace(value))
	if len(v) < 4 || len(v) > 15 || !chequeRe.MatchString(v) {
		return 0
	}
	if digitsOnlyRe.MatchString(v) {
		return 1.0
	}
	return 0.8
}

// Date scores a date string. Numeric and DD-Mon-YYYY forms are accepted;
// a four-digit year outside 2000..2030 is implausible for these documents.
func Date(value string) float64 {
	v := strings.TrimSpace(value)
	matched := false
	for _, re := range datePatterns {
		if re.MatchString(v) {
			matched = true
			break
		}
	}
	if !matched {
		return 0
	}
	if hasLetterRe.MatchString(v) {
		return 1.0
	}
	parts := datePartSepRe.Split(v, -1)
	for _, p := range parts {
		if len(p) == 4 {
			if year, err := strconv.Atoi(p); err == nil {
				if year >= 2000 && year <= 2030 {
					return 1.0
				}
				return 0.4
			}
		}
	}
	return 0.6
}

// BankName scores a bank or payment-gateway name.
func BankName(value string) float64 {
	v := strings.TrimSpace(value)
	if len(v) < 3 || len(v) > 60 {
		return 0
	}
	lower := strings.ToLower(v)
	if containsAny(lower, bankIndicators) {
		return 1.0
	}
	if len(v) > 6 && hasLetterRe.MatchString(v) && !containsAny(lower, nonBankTerms) {
		return 0.6
	}
	return 0
}

// Monetary scores an amount string against the field's bounds. Formatting
// characters are ignored; anything outside the bounds is rejected.
func Monetary(value string, bounds model.MonetaryBounds) float64 {
	cleaned := nonNumericRe.ReplaceAllString(strings.TrimSpace(value), "")
	cleaned = strings.TrimLeft(cleaned, ".")
	if cleaned == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || !bounds.Contains(amount) {
		return 0
	}
	return 1.0
}

// VehicleModel scores a make/model description.
func VehicleModel(value string) float64 {
	v := strings.TrimSpace(value)
	if len(v) < 2 || len(v) > 60 {
		return 0
	}
	lower := strings.ToLower(v)
	if containsAny(lower, vehicleReject) {
		return 0
	}
	if containsAny(lower, carBrands) {
		return 1.0
	}
	if len(v) >= 3 && len(v) <= 25 && modelCharsRe.MatchString(v) && len(strings.Fields(v)) <= 4 {
		return 0.8
	}
	return 0
}

// BodyType scores a vehicle body classification.
func BodyType(value string) float64 {
	v := strings.ToLower(strings.TrimSpace(value))
	if len(v) < 2 || len(v) > 40 {
		return 0
	}
	for _, t := range bodyTypes {
		if v == t {
			return 1.0
		}
	}
	if containsAny(v, bodyTypes) {
		return 0.9
	}
	if len(v) >= 3 && bodyCharsRe.MatchString(v) {
		return 0.7
	}
	return 0
}
