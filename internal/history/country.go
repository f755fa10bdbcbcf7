package history

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// countryCodes maps common spellings to ISO 3166-1 alpha-2 codes. Geocoders use
// long official names ("United States of America (the)"), so lookups by the
// everyday name go through the code.
var countryCodes = map[string]string{
	"united states":            "US",
	"united states of america": "US",
	"usa":                      "US",
	"us":                       "US",
	"america":                  "US",
	"united kingdom":           "GB",
	"uk":                       "GB",
	"great britain":            "GB",
	"britain":                  "GB",
	"england":                  "GB",
	"russia":                   "RU",
	"russian federation":       "RU",
	"china":                    "CN",
	"south korea":              "KR",
	"korea":                    "KR",
	"north korea":              "KP",
	"iran":                     "IR",
	"vietnam":                  "VN",
	"viet nam":                 "VN",
	"bolivia":                  "BO",
	"venezuela":                "VE",
	"tanzania":                 "TZ",
	"syria":                    "SY",
	"laos":                     "LA",
	"czech republic":           "CZ",
	"czechia":                  "CZ",
	"ivory coast":              "CI",
	"congo":                    "CG",
	"drc":                      "CD",
	"uae":                      "AE",
	"united arab emirates":     "AE",
	"netherlands":              "NL",
	"holland":                  "NL",
	"philippines":              "PH",
	"australia":                "AU",
	"canada":                   "CA",
	"mexico":                   "MX",
	"brazil":                   "BR",
	"argentina":                "AR",
	"chile":                    "CL",
	"peru":                     "PE",
	"india":                    "IN",
	"japan":                    "JP",
	"france":                   "FR",
	"germany":                  "DE",
	"italy":                    "IT",
	"spain":                    "ES",
	"egypt":                    "EG",
	"south africa":             "ZA",
	"kazakhstan":               "KZ",
}

// ResolveCountryCode returns the ISO code for a country name or code, or ""
// when the name is unknown. Any other two-letter input is taken as a code.
func ResolveCountryCode(country string) string {
	key := normalizeCountryName(country)
	if code, ok := countryCodes[key]; ok {
		return code
	}
	if len(key) == 2 && isASCIILetter(key[0]) && isASCIILetter(key[1]) {
		return strings.ToUpper(key)
	}
	return ""
}

func normalizeCountryName(country string) string {
	name := strings.ToLower(strings.Join(strings.Fields(country), " "))
	return strings.TrimPrefix(name, "the ")
}

// countryMatcher is the normalized form of a country query. A resolved code is
// matched on the code alone; otherwise the name must equal the stored country
// or be a whole-word prefix of it ("poland" matches "poland (republic of)",
// "niger" does not match "nigeria").
type countryMatcher struct {
	code string
	name string
}

func newCountryMatcher(country string) countryMatcher {
	if code := ResolveCountryCode(country); code != "" {
		return countryMatcher{code: code}
	}
	return countryMatcher{name: normalizeCountryName(country)}
}

func (m countryMatcher) empty() bool {
	return m.code == "" && m.name == ""
}

func (m countryMatcher) matches(code, name string) bool {
	if m.code != "" {
		return strings.EqualFold(code, m.code)
	}
	if m.name == "" {
		return false
	}
	rest, ok := strings.CutPrefix(strings.ToLower(name), m.name)
	if !ok {
		return false
	}
	if rest == "" {
		return true
	}
	next, _ := utf8.DecodeRuneInString(rest)
	return !unicode.IsLetter(next) && !unicode.IsDigit(next)
}

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}
