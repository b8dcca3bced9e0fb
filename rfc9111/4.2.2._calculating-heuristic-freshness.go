package rfc9111

import (
	"net/http"
	"time"

	"github.com/always-cache/httpdate"
)

// §  4.2.2.  Calculating Heuristic Freshness
// §
// §     A cache MUST NOT use heuristics to determine freshness when an
// §     explicit expiration time is present in the stored response.  Because
// §     of the requirements in Section 3, heuristics can only be used on
// §     responses without explicit freshness whose status codes are defined
// §     as "heuristically cacheable" (e.g., see Section 15.1 of [HTTP]) and
// §     on responses without explicit freshness that have been marked as
// §     explicitly cacheable (e.g., with a public response directive).
// §
// §     If the response has a Last-Modified header field (Section 8.8.2 of
// §     [HTTP]), caches are encouraged to use a heuristic expiration value
// §     that is no more than some fraction of the interval since that time.
// §     A typical setting of this fraction might be 10%.
const heuristicFraction = 10

func heuristicFreshness(res *http.Response, cc CacheControl, receivedAt time.Time) time.Duration {
	if !heuristicallyCacheable(res.StatusCode) && !cc.HasDirective("public") {
		return 0
	}
	lastModified, ok := LastModified(res)
	if !ok {
		return 0
	}
	return durationMax(0, DateValue(res, receivedAt).Sub(lastModified)/heuristicFraction)
}

// §  15.1.  Overview of Status Codes (RFC 9110)
// §
// §     Responses with status codes that are defined as heuristically
// §     cacheable (e.g., 200, 203, 204, 206, 300, 301, 308, 404, 405, 410,
// §     414, and 501 in this specification) can be reused by a cache with
// §     heuristic expiration unless otherwise indicated by the method
// §     definition or explicit cache controls [CACHING]
func heuristicallyCacheable(statusCode int) bool {
	switch statusCode {
	case 200, 203, 204, 206, 300, 301, 308, 404, 405, 410, 414, 501:
		return true
	}
	return false
}

// §  8.8.2.  Last-Modified (RFC 9110)
// §
// §       Last-Modified = HTTP-date
//
// LastModified returns the parsed Last-Modified field, if present and valid.
func LastModified(res *http.Response) (time.Time, bool) {
	if value := res.Header.Get("Last-Modified"); value != "" {
		return httpdate.Parse(value)
	}
	return time.Time{}, false
}
