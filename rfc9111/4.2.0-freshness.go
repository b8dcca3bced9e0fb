package rfc9111

import (
	"net/http"
	"time"
)

// §  4.2.  Freshness
// §
// §     A "fresh" response is one whose age has not yet exceeded its
// §     freshness lifetime.  Conversely, a "stale" response is one where it
// §     has.
// §
// §     The calculation to determine if a response is fresh is:
// §
// §        response_is_fresh = (freshness_lifetime > current_age)
// §
// §     freshness_lifetime is defined in Section 4.2.1; current_age is
// §     defined in Section 4.2.3.
//
// IsFresh reports whether the stored response is fresh at now.
// requestTime and responseTime are the local clock values when the request
// that produced the response was sent and when the response was received.
func IsFresh(res *http.Response, shared bool, requestTime, responseTime, now time.Time) bool {
	lifetime, _ := FreshnessLifetime(res, shared, responseTime)
	return lifetime > CurrentAge(res, requestTime, responseTime, now)
}

// §     When calculating freshness, to avoid common problems in date parsing:
// §
// §     *  Although all date formats are specified to be case-sensitive, a
// §        cache recipient SHOULD match the field value case-insensitively.
// §
// §     *  If a cache recipient's internal implementation of time has less
// §        resolution than the value of an HTTP-date, the recipient MUST
// §        internally represent a parsed Expires date as the nearest time
// §        equal to or earlier than the received value.
// §
// §     *  A cache recipient MUST NOT allow local time zones to influence the
// §        calculation or comparison of an age or expiration time.
// §
// §     *  A cache recipient SHOULD consider a date with a zone abbreviation
// §        other than "GMT" to be invalid for calculating expiration.
