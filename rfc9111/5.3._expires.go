package rfc9111

import (
	"net/http"
	"strings"
	"time"

	"github.com/always-cache/httpdate"
)

// alreadyExpired is the expiration time given to invalid Expires values.
var alreadyExpired = time.Unix(0, 0).UTC()

// §  5.3.  Expires
// §
// §     The "Expires" response header field gives the date/time after which
// §     the response is considered stale.  See Section 4.2 for further
// §     discussion of the freshness model.
// §
// §       Expires = HTTP-date
// §
// §     A cache recipient MUST interpret invalid date formats, especially the
// §     value "0", as representing a time in the past (i.e., "already
// §     expired").
//
// Expires returns the expiration time of the response and whether the
// field is present at all. Invalid values yield a time in the past.
func Expires(res *http.Response) (time.Time, bool) {
	values := res.Header.Values("Expires")
	if len(values) == 0 {
		return time.Time{}, false
	}
	// §     When there is more than one value present for a given directive
	// §     (e.g., two Expires header field lines or multiple Cache-Control: max-
	// §     age directives), either the first occurrence should be used or the
	// §     response should be considered stale.
	if exp, ok := expirationDate(values[0]); ok {
		return exp, true
	}
	return alreadyExpired, true
}

// §     *  A cache recipient SHOULD consider a date with a zone abbreviation
// §        other than "GMT" to be invalid for calculating expiration.
func expirationDate(value string) (time.Time, bool) {
	exp, format, ok := httpdate.Match(value)
	if !ok {
		return time.Time{}, false
	}
	if format.Zoned() && !strings.HasSuffix(strings.ToUpper(strings.TrimSpace(value)), " GMT") {
		return time.Time{}, false
	}
	return exp, true
}
