package httpdate

import (
	"strings"
	"time"
)

// Layout describes one textual form of an HTTP date.
//
// Layouts are expressed as Go reference layouts for everything except
// the time zone, which is read separately (see zone.go) so that zone
// abbreviations are resolved the same way regardless of the local
// time zone of the process.
type Layout struct {
	// Name identifies the layout in samples and logs.
	Name string
	// Example is a well-formed value in this layout.
	Example string

	layout       string
	zoned        bool
	twoDigitYear bool
}

// §  5.6.7.  Date/Time Formats (RFC 9110)
// §
// §     Preferred format:
// §
// §       IMF-fixdate  = day-name "," SP date1 SP time-of-day SP GMT
// §       ; fixed length/zone/capitalization subset of the format
// §       ; see Section 3.3 of [RFC5322]
//
// Parsing accepts a one-digit day and any known zone, formatting always
// emits the fixed-length GMT form.
var standard = Layout{
	Name:    "IMF-fixdate",
	Example: "Wed, 21 Oct 2015 07:28:00 GMT",
	layout:  "Mon, 2 Jan 2006 15:04:05",
	zoned:   true,
}

const standardLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// fallbacks are tried in order when the standard format does not match.
// The order matters: several layouts differ only in the year width or
// punctuation, and the first match wins.
var fallbacks = []Layout{
	{
		// §     rfc850-date  = day-name-l "," SP date2 SP time-of-day SP GMT
		Name:         "RFC 1036",
		Example:      "Wednesday, 21-Oct-15 07:28:00 GMT",
		layout:       "Monday, 2-Jan-06 15:04:05",
		zoned:        true,
		twoDigitYear: true,
	},
	{
		// §     asctime-date = day-name SP date3 SP time-of-day SP year
		// §     date3        = month SP ( 2DIGIT / ( SP 1DIGIT ))
		Name:    "ANSI C asctime",
		Example: "Wed Oct 21 07:28:00 2015",
		layout:  time.ANSIC,
	},
	{
		Name:    "dashed date",
		Example: "Wed, 21-Oct-2015 07:28:00 GMT",
		layout:  "Mon, 2-Jan-2006 15:04:05",
		zoned:   true,
	},
	{
		Name:    "dashed date, dashed time",
		Example: "Wed, 21-Oct-2015 07-28-00 GMT",
		layout:  "Mon, 2-Jan-2006 15-04-05",
		zoned:   true,
	},
	{
		Name:         "short year",
		Example:      "Wed, 21 Oct 15 07:28:00 GMT",
		layout:       "Mon, 2 Jan 06 15:04:05",
		zoned:        true,
		twoDigitYear: true,
	},
	{
		Name:    "no comma, dashed date",
		Example: "Wed 21-Oct-2015 07:28:00 GMT",
		layout:  "Mon 2-Jan-2006 15:04:05",
		zoned:   true,
	},
	{
		Name:    "no comma",
		Example: "Wed 21 Oct 2015 07:28:00 GMT",
		layout:  "Mon 2 Jan 2006 15:04:05",
		zoned:   true,
	},
	{
		Name:    "no comma, dashed date, dashed time",
		Example: "Wed 21-Oct-2015 07-28-00 GMT",
		layout:  "Mon 2-Jan-2006 15-04-05",
		zoned:   true,
	},
	{
		Name:         "no comma, dashed date, short year",
		Example:      "Wed 21-Oct-15 07:28:00 GMT",
		layout:       "Mon 2-Jan-06 15:04:05",
		zoned:        true,
		twoDigitYear: true,
	},
	{
		Name:         "no comma, short year",
		Example:      "Wed 21 Oct 15 07:28:00 GMT",
		layout:       "Mon 2 Jan 06 15:04:05",
		zoned:        true,
		twoDigitYear: true,
	},
	{
		Name:         "no space, short year",
		Example:      "Wed,21-Oct-15 07:28:00 GMT",
		layout:       "Mon,2-Jan-06 15:04:05",
		zoned:        true,
		twoDigitYear: true,
	},
	{
		Name:    "no space",
		Example: "Wed,21-Oct-2015 07:28:00 GMT",
		layout:  "Mon,2-Jan-2006 15:04:05",
		zoned:   true,
	},
	{
		Name:    "numeric month",
		Example: "Wed, 21-10-2015 07:28:00 GMT",
		layout:  "Mon, 2-1-2006 15:04:05",
		zoned:   true,
	},
	{
		// Reportedly once served in a cookie by www.yahoo.com.
		Name:    "month first, year before time",
		Example: "Wed Oct 21 2015 07:28:00 GMT",
		layout:  "Mon Jan 2 2006 15:04:05",
		zoned:   true,
	},
}

// Standard returns the preferred format, the only one used for output.
func Standard() Layout {
	return standard
}

// Fallbacks returns the tolerated legacy formats in trial order.
func Fallbacks() []Layout {
	out := make([]Layout, len(fallbacks))
	copy(out, fallbacks)
	return out
}

// parse attempts a full match of text against the layout.
// The year is expanded with the given pivot for two-digit layouts.
func (f Layout) parse(text string, pivot int) (time.Time, bool) {
	body := text
	offset := 0
	if f.zoned {
		sp := strings.LastIndexByte(text, ' ')
		if sp < 0 {
			return time.Time{}, false
		}
		var ok bool
		if offset, ok = zoneOffset(text[sp+1:]); !ok {
			return time.Time{}, false
		}
		body = text[:sp]
	}

	// time.Parse folds runs of spaces and reads a fraction after the
	// seconds even when the layout has none
	if extraSpace(body, f.layout == time.ANSIC) || hasFraction(body) {
		return time.Time{}, false
	}

	// no zone in the layout, so the wall clock is read as UTC
	t, err := time.Parse(f.layout, body)
	if err != nil {
		return time.Time{}, false
	}
	if f.twoDigitYear {
		if t, err = expandYear(t, pivot); err != nil {
			return time.Time{}, false
		}
	}
	return t.Add(-time.Duration(offset) * time.Second), true
}

// extraSpace reports whether body has a run of more than one space.
// With paddedDay, the space before a one-digit day is allowed.
func extraSpace(body string, paddedDay bool) bool {
	for i := 0; i+1 < len(body); i++ {
		if body[i] != ' ' || body[i+1] != ' ' {
			continue
		}
		if paddedDay && i > 0 && body[i-1] != ' ' && i+3 < len(body) && isDigit(body[i+2]) && body[i+3] == ' ' {
			i++
			continue
		}
		return true
	}
	return false
}

// hasFraction reports whether body carries fractional seconds, written
// with a period or with a comma right after a digit.
func hasFraction(body string) bool {
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '.':
			return true
		case ',':
			if i > 0 && isDigit(body[i-1]) {
				return true
			}
		}
	}
	return false
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// Zoned reports whether values in this format carry a time zone.
// Values in formats without one are read as UTC.
func (f Layout) Zoned() bool {
	return f.zoned
}
