// Package rfc9111 implements the freshness, age and validation rules of
// HTTP caching (RFC 9111) for stored responses. Every date-valued header
// field is read and written through the httpdate package.
package rfc9111

import (
	"net/http"
	"time"

	"github.com/always-cache/httpdate"
)

// AddAgeHeader adds the Age header to the response, as mandated by the standard.
// It directly mutates the response headers.
// It is based on the `current_age` calculation.
func AddAgeHeader(storedResponse *http.Response, requestTime, responseTime, now time.Time) {
	age := current_age(storedResponse, requestTime, responseTime, now)
	storedResponse.Header.Set("Age", toDeltaSeconds(age))
}

// AddDateHeader sets the Date header to receivedAt if the response does not
// carry a valid one (RFC 9110, 6.6.1).
func AddDateHeader(res *http.Response, receivedAt time.Time) {
	if _, ok := httpdate.Parse(res.Header.Get("Date")); ok {
		return
	}
	res.Header.Set("Date", httpdate.Format(receivedAt))
}
