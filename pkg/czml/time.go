package czml

import (
	"fmt"
	"time"
)

const (
	layoutSeconds = "2006-01-02T15:04:05Z07:00"
	layoutNanos   = "2006-01-02T15:04:05.000000000Z07:00"
)

// Time is an absolute instant. It encodes as ISO 8601 in UTC, with whole
// seconds when the instant has no fractional part and nanoseconds otherwise.
type Time struct {
	time.Time
}

// TimeOf wraps t.
func TimeOf(t time.Time) Time {
	return Time{Time: t}
}

// Date is shorthand for a UTC Time with second resolution.
func Date(year int, month time.Month, day, hour, min, sec int) Time {
	return Time{Time: time.Date(year, month, day, hour, min, sec, 0, time.UTC)}
}

// layoutFor picks a precision shared by every given instant.
func layoutFor(ts ...time.Time) string {
	for _, t := range ts {
		if t.Nanosecond() != 0 {
			return layoutNanos
		}
	}
	return layoutSeconds
}

// String formats t the way it is encoded.
func (t Time) String() string {
	return t.UTC().Format(layoutFor(t.Time))
}

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MarshalJSON shadows time.Time's RFC 3339 encoding.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// TimeInterval is a span between two instants. It encodes as "start/stop".
type TimeInterval struct {
	Start Time
	Stop  Time
}

// Interval builds a TimeInterval from two time.Time values.
func Interval(start, stop time.Time) TimeInterval {
	return TimeInterval{Start: TimeOf(start), Stop: TimeOf(stop)}
}

// Validate reports ErrInvalidInterval when Stop is not strictly after Start.
// Encoding never calls it; intervals are written as given.
func (i TimeInterval) Validate() error {
	if !i.Stop.After(i.Start.Time) {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, i)
	}
	return nil
}

// Duration is Stop minus Start.
func (i TimeInterval) Duration() time.Duration {
	return i.Stop.Sub(i.Start.Time)
}

// String formats the interval the way it is encoded. Both ends share a precision.
func (i TimeInterval) String() string {
	layout := layoutFor(i.Start.Time, i.Stop.Time)
	return i.Start.UTC().Format(layout) + "/" + i.Stop.UTC().Format(layout)
}

// MarshalText implements encoding.TextMarshaler.
func (i TimeInterval) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
