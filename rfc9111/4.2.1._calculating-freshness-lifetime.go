package rfc9111

import (
	"net/http"
	"time"
)

// Expiration returns the time at which the response becomes stale,
// measured from when it was received. The zero time is returned when the
// response carries no freshness information at all.
func Expiration(res *http.Response, shared bool, receivedAt time.Time) time.Time {
	lifetime, explicit := FreshnessLifetime(res, shared, receivedAt)
	if !explicit && lifetime == 0 {
		return time.Time{}
	}
	return receivedAt.Add(lifetime)
}

// §  4.2.1.  Calculating Freshness Lifetime
// §
// FreshnessLifetime returns the freshness lifetime of the response and
// whether it is explicit. A heuristic lifetime is returned with false.
// receivedAt stands in for a missing Date header field.
func FreshnessLifetime(res *http.Response, shared bool, receivedAt time.Time) (time.Duration, bool) {
	resCacheControl := ParseCacheControl(res.Header.Values("Cache-Control"))
	// §     A cache can calculate the freshness lifetime (denoted as
	// §     freshness_lifetime) of a response by evaluating the following rules
	// §     and using the first match:
	// §
	// §     *  If the cache is shared and the s-maxage response directive
	// §        (Section 5.2.2.10) is present, use its value, or
	if shared {
		if val, ok := resCacheControl.SMaxAge(); ok {
			return val, true
		}
	}
	// §
	// §     *  If the max-age response directive (Section 5.2.2.1) is present,
	// §        use its value, or
	if val, ok := resCacheControl.MaxAge(); ok {
		return val, true
	}
	// §
	// §     *  If the Expires response header field (Section 5.3) is present, use
	// §        its value minus the value of the Date response header field (using
	// §        the time the message was received if it is not present, as per
	// §        Section 6.6.1 of [HTTP]), or
	if expires, ok := Expires(res); ok {
		return durationMax(0, expires.Sub(DateValue(res, receivedAt))), true
	}
	// §
	// §     *  Otherwise, no explicit expiration time is present in the response.
	// §        A heuristic freshness lifetime might be applicable; see
	// §        Section 4.2.2.
	return heuristicFreshness(res, resCacheControl, receivedAt), false
}
