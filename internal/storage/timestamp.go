package storage

import (
	"fmt"
	"time"
)

// Clock supplies the current time for created/modified stamps and for the
// version ledger. It is read on every call, never cached.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

const timestampLayout = "2006-01-02T15:04:05"

// Timestamp formats t as ISO-8601 with a numeric offset, e.g.
// "2000-03-14T16:21:32+00:00". Microseconds are only written when non-zero.
func Timestamp(t time.Time) string {
	return NaiveTimestamp(t) + t.Format("-07:00")
}

// NaiveTimestamp formats the wall clock of t without any offset, e.g.
// "2000-03-14T16:21:32" or "2000-03-14T16:21:32.000005".
func NaiveTimestamp(t time.Time) string {
	s := t.Format(timestampLayout)
	if us := t.Nanosecond() / int(time.Microsecond); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}
