package rfc9111

import (
	"net/http"
	"time"

	"github.com/always-cache/httpdate"
)

// CurrentAge returns the current_age of a stored response at now.
func CurrentAge(res *http.Response, requestTime, responseTime, now time.Time) time.Duration {
	return current_age(res, requestTime, responseTime, now)
}

// §  4.2.3.  Calculating Age
// §
// §     Age calculation uses the following data:
// §
// §     "age_value"
// §        The term "age_value" denotes the value of the Age header field
// §        (Section 5.1), in a form appropriate for arithmetic operation; or
// §        0, if not available.
func age_value(res *http.Response) time.Duration {
	if age, ok := getAge(res); ok {
		return age
	}
	return 0
}

// §
// §     "date_value"
// §        The term "date_value" denotes the value of the Date header field,
// §        in a form appropriate for arithmetic operations.  See
// §        Section 6.6.1 of [HTTP] for the definition of the Date header
// §        field and for requirements regarding responses without it.
//
// DateValue returns the Date header field, or receivedAt if the field is
// missing or invalid.
//
// §  6.6.1.  Date (RFC 9110)
// §
// §     A recipient with a clock that receives a response message without a
// §     Date header field MUST record the time it was received and append a
// §     corresponding Date header field to the message's header section if it
// §     is cached or forwarded downstream.
func DateValue(res *http.Response, receivedAt time.Time) time.Time {
	if dateHeader := res.Header.Get("Date"); dateHeader != "" {
		if date, ok := httpdate.Parse(dateHeader); ok {
			return date
		}
	}
	return receivedAt
}

// §
// §     A response's age can be calculated in two entirely independent ways:
// §
// §     1.  the "apparent_age": response_time minus date_value, if the
// §         implementation's clock is reasonably well synchronized to the
// §         origin server's clock.  If the result is negative, the result is
// §         replaced by zero.
// §
// §     2.  the "corrected_age_value", if all of the caches along the
// §         response path implement HTTP/1.1 or greater.  A cache MUST
// §         interpret this value relative to the time the request was
// §         initiated, not the time that the response was received.
// §
// §       apparent_age = max(0, response_time - date_value);
func apparent_age(res *http.Response, responseTime time.Time) time.Duration {
	return durationMax(0, responseTime.Sub(DateValue(res, responseTime)))
}

// §       response_delay = response_time - request_time;
func response_delay(requestTime, responseTime time.Time) time.Duration {
	return durationMax(0, responseTime.Sub(requestTime))
}

// §       corrected_age_value = age_value + response_delay;
func corrected_age_value(res *http.Response, requestTime, responseTime time.Time) time.Duration {
	return age_value(res) + response_delay(requestTime, responseTime)
}

// §
// §       corrected_initial_age = max(apparent_age, corrected_age_value);
func corrected_initial_age(res *http.Response, requestTime, responseTime time.Time) time.Duration {
	return durationMax(apparent_age(res, responseTime), corrected_age_value(res, requestTime, responseTime))
}

// §
// §       resident_time = now - response_time;
func resident_time(responseTime, now time.Time) time.Duration {
	return durationMax(0, now.Sub(responseTime))
}

// §       current_age = corrected_initial_age + resident_time;
func current_age(res *http.Response, requestTime, responseTime, now time.Time) time.Duration {
	age := corrected_initial_age(res, requestTime, responseTime) + resident_time(responseTime, now)
	if age < 0 || age > maxDeltaSeconds {
		return maxDeltaSeconds
	}
	return age
}

func durationMax(d1, d2 time.Duration) time.Duration {
	if d1 > d2 {
		return d1
	}
	return d2
}
