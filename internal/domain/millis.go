package domain

import "time"

// Millis is a Unix timestamp in integer milliseconds, the unit the persisted
// ledger uses for every time field. It marshals as a plain JSON number.
type Millis int64

// NowMillis returns the current time as Millis.
func NowMillis() Millis {
	return Millis(time.Now().UnixMilli())
}

// MillisFrom converts a time.Time to Millis.
func MillisFrom(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Time converts m back to a time.Time in the local zone.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}
