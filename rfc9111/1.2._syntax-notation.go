package rfc9111

import (
	"errors"
	"strconv"
	"time"
)

// §  1.2.1.  Imported Rules
// §
// §     [HTTP] defines the following rules:
// §
// §       HTTP-date     = <HTTP-date, see [HTTP], Section 5.6.7>
//
// HTTP-date values are parsed and generated by the httpdate package.

// §  1.2.2. Delta Seconds
// §
// §  The delta-seconds rule specifies a non-negative integer, representing time
// §  in seconds.
// §
// §      delta-seconds  = 1*DIGIT
// §
// §  A recipient parsing a delta-seconds value and converting it to binary form
// §  ought to use an arithmetic type of at least 31 bits of non-negative integer
// §  range. If a cache receives a delta-seconds value greater than the greatest
// §  integer it can represent, or if any of its subsequent calculations overflows,
// §  the cache MUST consider the value to be 2147483648 (231) or the greatest
// §  positive integer it can conveniently represent.
const maxDeltaSeconds = 2147483648 * time.Second

// deltaSeconds parses secondsStr, returning false if it is not a
// non-negative integer.
func deltaSeconds(secondsStr string) (time.Duration, bool) {
	if secondsStr == "" || secondsStr[0] == '+' {
		return 0, false
	}
	seconds, err := strconv.ParseUint(secondsStr, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return maxDeltaSeconds, true
		}
		return 0, false
	}
	if seconds > uint64(maxDeltaSeconds/time.Second) {
		return maxDeltaSeconds, true
	}
	return time.Second * time.Duration(seconds), true
}

// toDeltaSeconds renders a duration as whole seconds, never negative.
func toDeltaSeconds(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}
	return strconv.FormatInt(int64(duration/time.Second), 10)
}
