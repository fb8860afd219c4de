package utils

import (
	"fmt"
	"time"
)

// RelativeTime renders t relative to now: "Just now", "5m ago", "3h ago",
// "2d ago", or the calendar date once a week has passed.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	default:
		return t.Format("Jan 2, 2006")
	}
}
