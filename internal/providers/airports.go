package providers

import "strings"

// IATA city codes for common destinations. Unknown cities fall back to the
// first three letters upper-cased, which the upstream APIs tolerate for many
// single-airport cities.
var cityCodes = map[string]string{
	"london":        "LON",
	"paris":         "PAR",
	"rome":          "ROM",
	"barcelona":     "BCN",
	"madrid":        "MAD",
	"berlin":        "BER",
	"amsterdam":     "AMS",
	"lisbon":        "LIS",
	"copenhagen":    "CPH",
	"stockholm":     "STO",
	"oslo":          "OSL",
	"helsinki":      "HEL",
	"vienna":        "VIE",
	"prague":        "PRG",
	"budapest":      "BUD",
	"warsaw":        "WAW",
	"dublin":        "DUB",
	"athens":        "ATH",
	"istanbul":      "IST",
	"nice":          "NCE",
	"valencia":      "VLC",
	"malaga":        "AGP",
	"palma":         "PMI",
	"ibiza":         "IBZ",
	"santorini":     "JTR",
	"split":         "SPU",
	"dubrovnik":     "DBV",
	"faro":          "FAO",
	"porto":         "OPO",
	"milan":         "MIL",
	"venice":        "VCE",
	"florence":      "FLR",
	"naples":        "NAP",
	"zurich":        "ZRH",
	"geneva":        "GVA",
	"brussels":      "BRU",
	"munich":        "MUC",
	"frankfurt":     "FRA",
	"new york":      "NYC",
	"los angeles":   "LAX",
	"san francisco": "SFO",
	"chicago":       "CHI",
	"miami":         "MIA",
	"tokyo":         "TYO",
	"kyoto":         "KIX",
	"osaka":         "KIX",
	"dubai":         "DXB",
	"singapore":     "SIN",
	"hong kong":     "HKG",
	"bangkok":       "BKK",
	"seoul":         "SEL",
	"sydney":        "SYD",
	"toronto":       "YTO",
	"vancouver":     "YVR",
	"mexico city":   "MEX",
	"cancun":        "CUN",
}

// Alternative airports per city, tried when the primary route yields nothing.
var alternativeAirports = map[string][]string{
	"london":        {"LHR", "LGW", "STN", "LTN"},
	"paris":         {"CDG", "ORY"},
	"rome":          {"FCO", "CIA"},
	"milan":         {"MXP", "LIN", "BGY"},
	"barcelona":     {"BCN", "GRO"},
	"tokyo":         {"NRT", "HND"},
	"kyoto":         {"OSA", "ITM", "UKB"},
	"osaka":         {"ITM", "UKB"},
	"new york":      {"JFK", "EWR", "LGA"},
	"los angeles":   {"LAX", "BUR", "ONT"},
	"chicago":       {"ORD", "MDW"},
	"san francisco": {"SFO", "OAK", "SJC"},
	"bangkok":       {"BKK", "DMK"},
	"seoul":         {"ICN", "GMP"},
	"shanghai":      {"PVG", "SHA"},
	"beijing":       {"PEK", "PKX"},
}

func normalizeCity(location string) string {
	if i := strings.Index(location, ","); i >= 0 {
		location = location[:i]
	}
	return strings.ToLower(strings.TrimSpace(location))
}

// CityCode resolves a free-form city name to an IATA city code. Three-letter
// inputs are assumed to already be codes.
func CityCode(location string) string {
	city := normalizeCity(location)
	if len(location) == 3 && isAlpha(location) {
		return strings.ToUpper(location)
	}
	if code, ok := cityCodes[city]; ok {
		return code
	}
	upper := strings.ToUpper(strings.ReplaceAll(city, " ", ""))
	if len(upper) > 3 {
		upper = upper[:3]
	}
	return upper
}

// AlternativeAirports lists fallback codes for a city, excluding the primary.
func AlternativeAirports(location, primary string) []string {
	var out []string
	for _, code := range alternativeAirports[normalizeCity(location)] {
		if code != primary {
			out = append(out, code)
		}
	}
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
