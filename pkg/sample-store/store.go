package samplestore

import (
	"time"

	"github.com/always-cache/httpdate"
)

const defaultLimit = 100

// Store keeps raw date values seen in header fields, along with the
// format that matched them.
//
// Implementations must be thread-safe!
type Store interface {
	// Record saves a sample.
	Record(Sample) error
	// Recent returns the latest samples, newest first.
	Recent(limit int) ([]Sample, error)
	// Unparsed returns the latest samples that matched no format, newest first.
	Unparsed(limit int) ([]Sample, error)
	// Counts returns the number of samples per format name.
	// Unparseable samples are counted under the empty name.
	Counts() (map[string]int, error)
	// Close releases the underlying resources.
	Close() error
}

type Sample struct {
	// Value is the raw field value.
	Value string `json:"value"`
	// Format is the name of the matching format, empty if none matched.
	Format string `json:"format"`
	// Parsed is the value in canonical form, empty if none matched.
	Parsed string `json:"parsed"`
	// SeenAt is when the value was observed.
	SeenAt time.Time `json:"seen_at"`
}

// NewSample parses value with the codec and describes the outcome.
func NewSample(codec *httpdate.Codec, value string, seenAt time.Time) Sample {
	sample := Sample{
		Value:  value,
		SeenAt: seenAt,
	}
	if t, format, ok := codec.Match(value); ok {
		sample.Format = format.Name
		sample.Parsed = codec.Format(t)
	}
	return sample
}

// Parseable reports whether the sample matched a format.
func (s Sample) Parseable() bool {
	return s.Format != ""
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
