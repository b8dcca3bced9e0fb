// Package httpdate parses and formats HTTP dates.
//
// Parsing is best effort: the preferred IMF-fixdate format is tried
// first, followed by the obsolete RFC 850/1036 and asctime formats and a
// list of layouts that browsers have had to tolerate in cookies and
// headers. Formatting always produces IMF-fixdate in GMT.
//
// §  5.6.7.  Date/Time Formats (RFC 9110)
// §
// §     A recipient that parses a timestamp value in an HTTP field MUST
// §     accept all three HTTP-date formats.  When a sender generates a field
// §     that contains one or more timestamps defined as HTTP-date, the sender
// §     MUST generate those timestamps in the IMF-fixdate format.
package httpdate

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPivot is used when Config.Pivot is not set.
// Two-digit years below it are in the 2000s, the rest in the 1900s.
const DefaultPivot = 80

// Config configures a Codec.
type Config struct {
	// Pivot for two-digit years: yy < Pivot is 20yy, otherwise 19yy.
	// Values outside 1..100 select DefaultPivot.
	Pivot int
}

// Codec parses and formats HTTP dates. It holds no mutable state and is
// safe for concurrent use.
type Codec struct {
	pivot int
}

// New creates a codec with the given configuration.
func New(config Config) *Codec {
	pivot := config.Pivot
	if pivot <= 0 || pivot > 100 {
		pivot = DefaultPivot
	}
	return &Codec{pivot: pivot}
}

var defaultCodec = New(Config{})

// Pivot returns the two-digit year pivot in use.
func (c *Codec) Pivot() int {
	return c.pivot
}

// Parse returns the UTC time for text, and false if text is not a date
// in any of the known formats.
func (c *Codec) Parse(text string) (time.Time, bool) {
	t, _, ok := c.Match(text)
	return t, ok
}

// Match is like Parse but also returns the format that matched.
//
// The whole value must match: a date followed by anything else is
// rejected by that format, and the next one is tried.
func (c *Codec) Match(text string) (time.Time, Layout, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, Layout{}, false
	}
	if t, ok := standard.parse(text, c.pivot); ok {
		return t.UTC(), standard, true
	}
	for _, f := range fallbacks {
		if t, ok := f.parse(text, c.pivot); ok {
			return t.UTC(), f, true
		}
	}
	return time.Time{}, Layout{}, false
}

// Format returns t as an IMF-fixdate, e.g. "Wed, 21 Oct 2015 07:28:00 GMT".
// Sub-second precision is dropped. Only years 0000 to 9999 parse back.
func (c *Codec) Format(t time.Time) string {
	return t.UTC().Format(standardLayout)
}

// Parse parses text with the default codec.
func Parse(text string) (time.Time, bool) {
	return defaultCodec.Parse(text)
}

// Match matches text with the default codec.
func Match(text string) (time.Time, Layout, bool) {
	return defaultCodec.Match(text)
}

// Format formats t with the default codec.
func Format(t time.Time) string {
	return defaultCodec.Format(t)
}

// §     Recipients of a timestamp value in rfc850-date format, which uses a
// §     two-digit year, MUST interpret a timestamp that appears to be more
// §     than 50 years in the future as representing the most recent year in
// §     the past that had the same last two digits.
//
// A fixed pivot is used instead of the sliding window above, so that the
// result does not depend on the clock.
func expandYear(t time.Time, pivot int) (time.Time, error) {
	yy := t.Year() % 100
	year := 1900 + yy
	if yy < pivot {
		year = 2000 + yy
	}
	if year == t.Year() {
		return t, nil
	}
	expanded := t.AddDate(year-t.Year(), 0, 0)
	if expanded.Day() != t.Day() {
		return time.Time{}, fmt.Errorf("%s does not exist in %d", t.Format("Jan 2"), year)
	}
	return expanded, nil
}
