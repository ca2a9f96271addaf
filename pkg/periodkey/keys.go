// Package periodkey derives the deterministic bucket keys used by the
// trending leaderboard. Identical dates always map to identical keys, so
// concurrent writers converge on one logical bucket without coordination.
//
// Weekly buckets follow ISO-8601 week numbering rather than any locale
// dependent convention, keeping key derivation stable across deployments.
package periodkey

import (
	"fmt"
	"time"
)

const (
	dailyPrefix  = "trending:ideas:day:"
	weeklyPrefix = "trending:ideas:week:"
)

// Daily returns the bucket key for the calendar day of t,
// e.g. "trending:ideas:day:20250115".
func Daily(t time.Time) string {
	return dailyPrefix + t.Format("20060102")
}

// Weekly returns the bucket key for the ISO week containing t,
// e.g. "trending:ideas:week:2025W03". The year component is the ISO
// week-based year, which can differ from the calendar year at year
// boundaries.
func Weekly(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%s%dW%02d", weeklyPrefix, year, week)
}

// Zone resolves an IANA zone name to a location for "current date"
// computations. An empty or unknown name falls back to the system zone so
// bucket boundaries stay well-defined even with a missing configuration.
func Zone(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
