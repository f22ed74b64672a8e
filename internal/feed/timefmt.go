package feed

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders t as an age relative to now: "Just now", "5m ago",
// "3h ago", "2d ago", and from a week on the local date as M/D/YYYY.
func FormatRelativeTime(t time.Time, now time.Time) string {
	elapsed := now.Sub(t)

	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed/time.Minute))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed/time.Hour))
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed/(24*time.Hour)))
	default:
		return t.Local().Format("1/2/2006")
	}
}
