package tui

import (
	"fmt"
	"time"

	"github.com/mrz1836/assetrack/internal/clock"
)

// DefaultClock is the clock used by RelativeTime and the tree writer.
//
//nolint:gochecknoglobals // Package-level default for dependency injection
var DefaultClock clock.Clock = clock.RealClock{}

// RelativeTime formats a time as a human-readable relative string.
// Examples: "just now", "2 minutes ago", "1 hour ago", "3 days ago", "2 weeks ago"
func RelativeTime(t time.Time) string {
	return RelativeTimeWith(t, DefaultClock)
}

// RelativeTimeWith formats t relative to c.Now(). Times in the future, which
// appear when another machine's clock runs ahead, read "just now".
func RelativeTimeWith(t time.Time, c clock.Clock) string {
	diff := c.Now().Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	default:
		return plural(int(diff.Hours()/24/7), "week")
	}
}

// ShortAge formats the age of t compactly for tree rows: "now", "42m", "5h", "3d", "6w".
func ShortAge(t time.Time, c clock.Clock) string {
	if t.IsZero() {
		return ""
	}
	diff := c.Now().Sub(t)

	switch {
	case diff < time.Minute:
		return "now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(diff.Hours()/24))
	default:
		return fmt.Sprintf("%dw", int(diff.Hours()/24/7))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
