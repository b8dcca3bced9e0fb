package rfc9111

import (
	"net/http"
	"time"

	"github.com/always-cache/httpdate"
)

// §  4.3.2.  Handling a Received Validation Request
// §
// §     The proper evaluation of conditional requests by a cache depends on
// §     the received precondition header fields and their precedence.  In
// §     summary, the If-Match and If-Unmodified-Since conditional header
// §     fields are not applicable to a cache, and If-None-Match takes
// §     precedence over If-Modified-Since.
// §
// §     If a request contains an If-Modified-Since header field and the Last-
// §     Modified header field is not present in a stored response, a cache
// §     SHOULD use the stored response's Date field value (or, if no Date
// §     field is present, the time that the stored response was received) to
// §     evaluate the conditional.
//
// NotModified reports whether the request's If-Modified-Since condition
// allows answering with 304 (Not Modified) from the stored response.
func NotModified(req *http.Request, storedResponse *http.Response, receivedAt time.Time) bool {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return false
	}
	if req.Header.Get("If-None-Match") != "" {
		return false
	}
	since, ok := ifModifiedSince(req)
	if !ok {
		return false
	}
	validator, ok := LastModified(storedResponse)
	if !ok {
		validator = DateValue(storedResponse, receivedAt)
	}
	// §     the condition is false if the selected representation's last
	// §     modification date is earlier or equal to the date provided in the
	// §     field value (RFC 9110, 13.1.3)
	return !validator.After(since)
}

// §  13.1.3.  If-Modified-Since (RFC 9110)
// §
// §     A recipient MUST ignore the If-Modified-Since header field if the
// §     received field value is not a valid HTTP-date, the field value has
// §     more than one member, or if the request method is neither GET nor
// §     HEAD.
func ifModifiedSince(req *http.Request) (time.Time, bool) {
	values := req.Header.Values("If-Modified-Since")
	if len(values) != 1 {
		return time.Time{}, false
	}
	return httpdate.Parse(values[0])
}
