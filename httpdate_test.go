package httpdate

import (
	"fmt"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

var reference = time.Date(2015, time.October, 21, 7, 28, 0, 0, time.UTC)

func TestParseStandard(t *testing.T) {
	date, ok := Parse("Wed, 21 Oct 2015 07:28:00 GMT")
	if !ok {
		t.Fatal("Could not parse date")
	}
	if !date.Equal(reference) {
		t.Fatalf("Date is %v", date)
	}
	if date.Location() != time.UTC {
		t.Fatalf("Location is %v", date.Location())
	}
}

func TestParseRFC1036(t *testing.T) {
	date, f, ok := Match("Wednesday, 21-Oct-15 07:28:00 GMT")
	if !ok || !date.Equal(reference) {
		t.Fatalf("Date is %v (%v)", date, ok)
	}
	if f.Name != "RFC 1036" {
		t.Fatalf("Matched format %q", f.Name)
	}
}

func TestParseAsctime(t *testing.T) {
	date, ok := Parse("Wed Oct 21 07:28:00 2015")
	if !ok || !date.Equal(reference) {
		t.Fatalf("Date is %v (%v)", date, ok)
	}
	// single-digit day is space padded by asctime()
	date, ok = Parse("Sun Nov  6 08:49:37 1994")
	if !ok || !date.Equal(time.Date(1994, time.November, 6, 8, 49, 37, 0, time.UTC)) {
		t.Fatalf("Date is %v (%v)", date, ok)
	}
}

func TestParseRFC850Future(t *testing.T) {
	date, ok := Parse("Thursday, 18-Aug-50 02:01:18 GMT")
	if !ok {
		t.Fatal("Could not parse date")
	}
	if date.Year() != 2050 {
		t.Fatalf("Year is %d", date.Year())
	}
}

func TestParseZoneCase(t *testing.T) {
	date, ok := Parse("Thu, 18 Aug 2050 02:01:18 gMT")
	if !ok {
		t.Fatal("Could not parse date")
	}
	if date.Hour() != 2 {
		t.Fatalf("Date is %v", date)
	}
	if _, ok := Parse("wed, 21 OCT 2015 07:28:00 GMT"); !ok {
		t.Fatal("Names should match case-insensitively")
	}
}

func TestParseZoneOffset(t *testing.T) {
	tests := map[string]time.Time{
		"Wed, 21 Oct 2015 07:28:00 PST":       reference.Add(8 * time.Hour),
		"Wed, 21 Oct 2015 07:28:00 EDT":       reference.Add(4 * time.Hour),
		"Wed, 21 Oct 2015 07:28:00 +0200":     reference.Add(-2 * time.Hour),
		"Wed, 21 Oct 2015 07:28:00 -05:30":    reference.Add(5*time.Hour + 30*time.Minute),
		"Wed, 21-Oct-2015 07:28:00 GMT+01:00": reference.Add(-time.Hour),
		"Wed Oct 21 2015 07:28:00 UTC":        reference,
	}
	for value, expected := range tests {
		date, ok := Parse(value)
		if !ok {
			t.Fatalf("Could not parse %q", value)
		}
		if !date.Equal(expected) {
			t.Fatalf("%q parsed as %v, expected %v", value, date, expected)
		}
	}
}

func TestParseUnknownZone(t *testing.T) {
	if date, ok := Parse("Wed, 21 Oct 2015 07:28:00 XYZ"); ok {
		t.Fatalf("Parsed unknown zone as %v", date)
	}
}

func TestParseUnparseable(t *testing.T) {
	for _, value := range []string{
		"",
		"   ",
		"0",
		"not a date",
		"Wed, 21 Oct 2015 07:28:00 GMT extra",
		"Wed, 21 Oct 2015 07:28:00",
		"Wed, 32 Oct 2015 07:28:00 GMT",
		"Wed, 21 Oct 2015 24:28:00 GMT",
		"Wed, 21 Oct 2015 07:60:00 GMT",
		"Wed, 31 Feb 2015 07:28:00 GMT",
		"Wed Oct 21 07:28:00 2015 GMT",
		"Wed, 21 Oct 2015 07:28:00  GMT",
		"Wed,  21   Oct 2015 07:28:00 GMT",
		"Wed Oct  21 07:28:00 2015",
		"Sun Nov   6 08:49:37 1994",
		"Wed, 21 Oct 2015 07:28:00.999 GMT",
		"Wed, 21 Oct 2015 07:28:00.0 GMT",
		"Wed, 21 Oct 2015 07:28:00,5 GMT",
		"Wednesday, 21-Oct-15 07:28:00.123456789 GMT",
		"Wed Oct 21 07:28:00.5 2015",
	} {
		if date, ok := Parse(value); ok {
			t.Fatalf("Parsed %q as %v", value, date)
		}
	}
}

func TestParseTrimsSpace(t *testing.T) {
	date, ok := Parse("  Wed, 21 Oct 2015 07:28:00 GMT\t")
	if !ok || !date.Equal(reference) {
		t.Fatalf("Date is %v (%v)", date, ok)
	}
}

func TestFallbackOrder(t *testing.T) {
	formats := Fallbacks()
	if len(formats) != 14 {
		t.Fatalf("Have %d fallback formats", len(formats))
	}
	if _, f, ok := Match(Standard().Example); !ok || f.Name != Standard().Name {
		t.Fatalf("Standard example matched %q", f.Name)
	}
	for i, expected := range formats {
		date, f, ok := Match(expected.Example)
		if !ok {
			t.Fatalf("Layout %d (%s): could not parse %q", i+1, expected.Name, expected.Example)
		}
		if f.Name != expected.Name {
			t.Fatalf("Layout %d (%s): %q matched %q", i+1, expected.Name, expected.Example, f.Name)
		}
		if !date.Equal(reference) {
			t.Fatalf("Layout %d (%s): date is %v", i+1, expected.Name, date)
		}
	}
}

func TestFallbacksIsCopy(t *testing.T) {
	formats := Fallbacks()
	formats[0].Name = "changed"
	if Fallbacks()[0].Name == "changed" {
		t.Fatal("Layout table was mutated")
	}
}

func TestPivot(t *testing.T) {
	value := "Monday, 01-Jan-75 00:00:00 GMT"
	if date, ok := Parse(value); !ok || date.Year() != 2075 {
		t.Fatalf("Default pivot: %v (%v)", date, ok)
	}
	if date, ok := New(Config{Pivot: 70}).Parse(value); !ok || date.Year() != 1975 {
		t.Fatalf("Pivot 70: %v (%v)", date, ok)
	}
	if date, ok := Parse("Sunday, 06-Nov-94 08:49:37 GMT"); !ok || date.Year() != 1994 {
		t.Fatalf("Year 94: %v (%v)", date, ok)
	}
	if date, ok := Parse("Wed 21 Oct 79 07:28:00 GMT"); !ok || date.Year() != 2079 {
		t.Fatalf("Year 79: %v (%v)", date, ok)
	}
	if date, ok := Parse("Wed 21 Oct 80 07:28:00 GMT"); !ok || date.Year() != 1980 {
		t.Fatalf("Year 80: %v (%v)", date, ok)
	}
}

func TestPivotDefaults(t *testing.T) {
	for _, pivot := range []int{-1, 0, 101} {
		if p := New(Config{Pivot: pivot}).Pivot(); p != DefaultPivot {
			t.Fatalf("Pivot %d resolved to %d", pivot, p)
		}
	}
}

func TestExpandYearLeapDay(t *testing.T) {
	leapDay := time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)
	if _, err := expandYear(leapDay, 0); err == nil {
		t.Fatal("29 Feb 1900 should not exist")
	}
	if date, err := expandYear(leapDay, 50); err != nil || !date.Equal(leapDay) {
		t.Fatalf("Date is %v (%v)", date, err)
	}
}

var formatPattern = regexp.MustCompile(
	`^(Mon|Tue|Wed|Thu|Fri|Sat|Sun), \d{2} (Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec) \d{4} \d{2}:\d{2}:\d{2} GMT$`)

func TestFormat(t *testing.T) {
	if s := Format(reference); s != "Wed, 21 Oct 2015 07:28:00 GMT" {
		t.Fatalf("Formatted as %s", s)
	}
	local := reference.In(time.FixedZone("CEST", 2*3600))
	if s := Format(local); s != "Wed, 21 Oct 2015 07:28:00 GMT" {
		t.Fatalf("Formatted as %s", s)
	}
	if s := Format(time.Date(2001, time.February, 3, 4, 5, 6, 7, time.UTC)); s != "Sat, 03 Feb 2001 04:05:06 GMT" {
		t.Fatalf("Formatted as %s", s)
	}
}

func TestFormatYearRange(t *testing.T) {
	last := time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
	if date, ok := Parse(Format(last)); !ok || !date.Equal(last) {
		t.Fatalf("Date is %v (%v)", date, ok)
	}
	if s := Format(last.Add(time.Second)); s != "Sat, 01 Jan 10000 00:00:00 GMT" {
		t.Fatalf("Formatted as %s", s)
	} else if date, ok := Parse(s); ok {
		t.Fatalf("Parsed %q as %v", s, date)
	}
}

func TestRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	start := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	end := time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
	for i := 0; i < 5000; i++ {
		original := time.Unix(start+rnd.Int63n(end-start), rnd.Int63n(int64(time.Second)))
		s := Format(original)
		if !formatPattern.MatchString(s) {
			t.Fatalf("Formatted %v as %s", original, s)
		}
		date, ok := Parse(s)
		if !ok {
			t.Fatalf("Could not parse %s", s)
		}
		if !date.Equal(original.Truncate(time.Second)) {
			t.Fatalf("%s parsed as %v, expected %v", s, date, original.Truncate(time.Second))
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	codec := New(Config{})
	var g errgroup.Group
	for worker := 0; worker < 32; worker++ {
		worker := worker
		g.Go(func() error {
			for i := 0; i < 500; i++ {
				expected := reference.Add(time.Duration(worker*1000+i) * time.Minute)
				var value string
				switch i % 3 {
				case 0:
					value = codec.Format(expected)
				case 1:
					value = expected.Format("Monday, 02-Jan-06 15:04:05") + " GMT"
				default:
					value = expected.Format(time.ANSIC)
				}
				date, ok := codec.Parse(value)
				if !ok {
					return fmt.Errorf("worker %d: could not parse %q", worker, value)
				}
				if !date.Equal(expected) {
					return fmt.Errorf("worker %d: %q parsed as %v, expected %v", worker, value, date, expected)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestZoned(t *testing.T) {
	if !Standard().Zoned() {
		t.Fatal("Standard format should carry a zone")
	}
	for _, f := range Fallbacks() {
		if f.Zoned() == (f.Name == "ANSI C asctime") {
			t.Fatalf("Layout %s zoned: %v", f.Name, f.Zoned())
		}
	}
}
