package epoch

import (
	"fmt"
	"time"
)

// Bounds is the canonical [Lower, Upper) window of one epoch.
type Bounds struct {
	Lower time.Time
	Upper time.Time
}

// Contains reports whether t falls inside [Lower, Upper).
func (b Bounds) Contains(t time.Time) bool {
	return !t.Before(b.Lower) && t.Before(b.Upper)
}

// BoundaryOf truncates t down to a multiple of width measured from the Unix
// epoch and returns the resulting window. Lower is always UTC.
// Example: BoundaryOf(2022-03-16T12:01:02Z, 6h) → [12:00, 18:00)
func BoundaryOf(t time.Time, width time.Duration) (Bounds, error) {
	if width <= 0 {
		return Bounds{}, fmt.Errorf("%w: %s", ErrInvalidWidth, width)
	}

	var lower time.Time
	if width%time.Second == 0 {
		// Second-aligned widths stay on Unix seconds so the full time.Time
		// range truncates without int64 nanosecond overflow.
		ws := int64(width / time.Second)
		sec := t.Unix()
		rem := sec % ws
		if rem < 0 {
			rem += ws
		}
		lower = time.Unix(sec-rem, 0).UTC()
	} else {
		w := int64(width)
		ns := t.UnixNano()
		rem := ns % w
		if rem < 0 {
			rem += w
		}
		lower = time.Unix(0, ns-rem).UTC()
	}

	return Bounds{Lower: lower, Upper: lower.Add(width)}, nil
}
