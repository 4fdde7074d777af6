// Package timing resolves the recorded build start time and computes the
// elapsed build duration.
package timing

import (
	"strconv"
	"time"
)

// ResolveStartMS resolves the build start time in epoch milliseconds from the
// values persisted by the start step.
//
// The millisecond value wins when present and well formed. A seconds-only
// value is accepted for jobs whose start step predates millisecond precision.
// When neither parses the start collapses to now, so the reported duration
// becomes zero rather than the command failing.
func ResolveStartMS(msValue, secondsValue string, now time.Time) int64 {
	if msValue != "" {
		if ms, err := strconv.ParseInt(msValue, 10, 64); err == nil {
			return ms
		}
		return now.UnixMilli()
	}

	if secondsValue != "" {
		if s, err := strconv.ParseInt(secondsValue, 10, 64); err == nil {
			return s * 1000
		}
	}

	return now.UnixMilli()
}

// BuildTimeMS returns the elapsed build time in milliseconds, clamped at zero
// when the recorded start is after the end (skewed or inconsistent clocks).
func BuildTimeMS(startMS, endMS int64) int64 {
	if elapsed := endMS - startMS; elapsed > 0 {
		return elapsed
	}
	return 0
}
