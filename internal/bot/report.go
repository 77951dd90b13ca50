package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/dadbot-lab/dadbot/internal/counter"
)

// FormatWidth renders d as days, hours and minutes, dropping zero parts.
// Anything under a minute is "instant".
func FormatWidth(d time.Duration) string {
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute

	var parts []string
	for _, p := range []struct {
		n    time.Duration
		unit string
	}{
		{days, "day"},
		{hours, "hour"},
		{minutes, "minute"},
	} {
		if p.n <= 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %s", int64(p.n), plural(uint64(p.n), p.unit)))
	}

	if len(parts) == 0 {
		return "instant"
	}
	return strings.Join(parts, " ")
}

// FormatReport renders the !dadded reply.
func FormatReport(r counter.Report) string {
	times := plural(r.Counter.Count, "time")
	if r.HasRolledOver {
		return fmt.Sprintf("I've dadded %d %s in the past %s", r.Counter.Count, times, FormatWidth(r.Width))
	}
	return fmt.Sprintf("I've dadded %d %s since last reset", r.Counter.Count, times)
}

func plural(n uint64, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
