package ui

import (
	"fmt"
	"time"
)

// FormatSince formats how long ago t was, relative to now.
// Examples: "just now", "2m", "3h", "5d". A zero t formats as "".
func FormatSince(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd", int(diff.Hours()/24))
	}
}

// FormatVolume formats a volume in [0,1] as a percentage.
func FormatVolume(v float64) string {
	return fmt.Sprintf("%d%%", int(v*100+0.5))
}
