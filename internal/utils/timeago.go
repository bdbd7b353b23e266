// Package utils holds small shared helpers.
package utils

import (
	"fmt"
	"time"
)

// TimeAgo formats how long ago t happened relative to now, in the
// largest sensible unit ("just now", "5 minutes ago", "2 weeks ago").
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)

	seconds := int64(d.Seconds())
	minutes := int64(d.Minutes())
	hours := int64(d.Hours())
	days := hours / 24

	switch {
	case seconds < 60:
		if seconds <= 1 {
			return "just now"
		}
		return fmt.Sprintf("%d seconds ago", seconds)
	case minutes < 60:
		return plural(minutes, "minute")
	case hours < 24:
		return plural(hours, "hour")
	case days < 7:
		return plural(days, "day")
	case days < 30:
		return plural(days/7, "week")
	case days < 365:
		return plural(days/30, "month")
	default:
		return plural(days/365, "year")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
