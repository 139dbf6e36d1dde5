package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/policy-extract/internal/model"
)

var (
	nonCodeRe  = regexp.MustCompile(`[^A-Za-z0-9\-/_]`)
	nonDigitRe = regexp.MustCompile(`[^0-9]`)
	nonMoneyRe = regexp.MustCompile(`[^0-9,.]`)

	monthShortRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)
	numericSepRe = regexp.MustCompile(`[\-.]`)
	monNameDate  = regexp.MustCompile(`^[0-9]{1,2}[\-\s]+[A-Z][a-z]{2}[\-\s]+[0-9]{4}$`)
	hasAlphaRe   = regexp.MustCompile(`[A-Za-z]`)
)

var namePrefixes = []string{"Name:", "Insured:", "Policy Holder:"}
var companyPrefixes = []string{"Company:", "Insurer:", "Insurance Company:"}
var bankPrefixes = []string{"Bank:", "Drawn on:", "Issuing Bank:"}
var vehiclePrefixes = []string{"Model:", "Make:", "Vehicle:", "Car:"}

var bodyTypeSynonyms = map[string]string{
	"saloon":                 "sedan",
	"estate":                 "wagon",
	"sports utility vehicle": "suv",
	"sport utility vehicle":  "suv",
	"multi purpose vehicle":  "van",
	"mpv":                    "van",
}

// titleCase title-cases a lowered value. A cases.Caser carries mutable
// transform buffers, so each call builds its own instead of sharing one;
// Extract must stay safe for concurrent documents.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// cleanValue normalizes a raw captured value according to the field's type.
// Cleaning runs before validation so scores apply to the canonical form.
func cleanValue(field model.FieldSpec, value string) string {
	switch field.ValueType {
	case model.TypeCode, model.TypeVehicleCode:
		return cleanCode(value)
	case model.TypeNumericCode:
		return cleanNumericCode(value)
	case model.TypeName:
		return cleanText(value, namePrefixes)
	case model.TypeCompany:
		return cleanText(value, companyPrefixes)
	case model.TypeBankName:
		return cleanText(value, bankPrefixes)
	case model.TypeDate:
		return cleanDate(value)
	case model.TypeMonetary:
		return cleanMonetary(value)
	case model.TypeVehicleModel:
		return cleanText(value, vehiclePrefixes)
	case model.TypeBodyType:
		return cleanBodyType(value)
	}
	return strings.TrimSpace(value)
}

func cleanCode(value string) string {
	return strings.TrimSpace(nonCodeRe.ReplaceAllString(strings.ToUpper(value), ""))
}

// cleanNumericCode keeps digits but tolerates alphanumeric payment refs.
func cleanNumericCode(value string) string {
	v := strings.TrimSpace(value)
	if hasAlphaRe.MatchString(v) {
		return cleanCode(v)
	}
	return nonDigitRe.ReplaceAllString(v, "")
}

func cleanText(value string, prefixes []string) string {
	v := strings.Join(strings.Fields(value), " ")
	for _, p := range prefixes {
		if strings.HasPrefix(strings.ToLower(v), strings.ToLower(p)) {
			v = strings.TrimSpace(v[len(p):])
		}
	}
	return titleCase(strings.ToLower(v))
}

// cleanDate standardizes month names to three-letter title case and numeric
// separators to slashes. DD-Mon-YYYY forms are kept as written since the
// format is unambiguous.
func cleanDate(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	v = monthShortRe.ReplaceAllStringFunc(v, func(m string) string {
		return titleCase(strings.ToLower(m[:3]))
	})
	if monNameDate.MatchString(v) {
		return v
	}
	if !hasAlphaRe.MatchString(v) {
		v = numericSepRe.ReplaceAllString(v, "/")
	}
	return strings.TrimSpace(v)
}

// cleanMonetary strips currency symbols and thousands separators while
// preserving the decimal part: "Rs. 17,500.00" becomes "17500.00". A lone
// comma followed by one or two digits is treated as a decimal comma.
func cleanMonetary(value string) string {
	v := nonMoneyRe.ReplaceAllString(strings.TrimSpace(value), "")
	hasComma := strings.Contains(v, ",")
	hasDot := strings.Contains(v, ".")
	switch {
	case hasComma && hasDot:
		v = strings.ReplaceAll(v, ",", "")
	case hasComma:
		parts := strings.Split(v, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			v = parts[0] + "." + parts[1]
		} else {
			v = strings.ReplaceAll(v, ",", "")
		}
	}
	return strings.TrimLeft(v, ".")
}

func cleanBodyType(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if std, ok := bodyTypeSynonyms[v]; ok {
		v = std
	}
	return titleCase(v)
}
