package httpdate

import (
	"strconv"
	"strings"
)

// namedZones are the zone abbreviations accepted in HTTP dates.
// Offsets are in seconds east of UTC.
//
// §  4.3.  Obsolete Date and Time (RFC 5322)
// §
// §     obs-zone        =   "UT" / "GMT" /     ; Universal Time
// §                                            ; North American UT
// §                                            ; offsets
// §                         "EST" / "EDT" /    ; Eastern:  - 5/ - 4
// §                         "CST" / "CDT" /    ; Central:  - 6/ - 5
// §                         "MST" / "MDT" /    ; Mountain: - 7/ - 6
// §                         "PST" / "PDT" /    ; Pacific:  - 8/ - 7
var namedZones = map[string]int{
	"GMT": 0,
	"UT":  0,
	"UTC": 0,
	"Z":   0,
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

// zoneOffset resolves a zone token to its offset in seconds east of UTC.
//
// Accepted forms, case-insensitive:
//
//	GMT, UTC, PST, ...   named zones
//	+0100, -05:30        numeric offsets
//	GMT+1, UTC-05:30     offsets relative to GMT or UTC
//
// Unknown abbreviations are rejected rather than taken as UTC.
func zoneOffset(token string) (int, bool) {
	token = strings.ToUpper(token)
	if offset, ok := namedZones[token]; ok {
		return offset, true
	}
	if len(token) > 3 && (strings.HasPrefix(token, "GMT") || strings.HasPrefix(token, "UTC")) {
		return signedOffset(token[3:], true)
	}
	return signedOffset(token, false)
}

// signedOffset parses [+-]hh[[:]mm]. The short hour-only and one-digit
// hour forms are only allowed after a GMT/UTC prefix.
func signedOffset(s string, relative bool) (int, bool) {
	if len(s) < 2 {
		return 0, false
	}
	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, false
	}
	s = s[1:]

	var hh, mm string
	switch {
	case len(s) == 4 && !strings.Contains(s, ":"):
		hh, mm = s[:2], s[2:]
	case strings.Contains(s, ":"):
		var found bool
		hh, mm, found = strings.Cut(s, ":")
		if !found || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 || (!relative && len(hh) != 2) {
			return 0, false
		}
	case relative && len(s) <= 2:
		hh, mm = s, "00"
	default:
		return 0, false
	}

	hours, ok := digits(hh)
	if !ok || hours > 23 {
		return 0, false
	}
	minutes, ok := digits(mm)
	if !ok || minutes > 59 {
		return 0, false
	}
	return sign * (hours*3600 + minutes*60), true
}

func digits(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
