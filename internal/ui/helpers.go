package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/five82/dexdash/internal/share"
)

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}

// formatAge renders how long ago t was, or "never" for the zero time.
func formatAge(now, t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	age := humanizeDuration(now.Sub(t))
	if age == "now" {
		return "just now"
	}
	return age + " ago"
}

// formatDelta renders the change between the two newest readings.
func formatDelta(readings []share.GlucoseReading) string {
	if len(readings) < 2 {
		return ""
	}
	d := readings[0].MgDL - readings[1].MgDL
	if d > 0 {
		return "+" + strconv.Itoa(d)
	}
	return strconv.Itoa(d)
}

// stripValues returns up to n of the newest values, oldest first.
func stripValues(readings []share.GlucoseReading, n int) []int {
	count := min(n, len(readings))
	out := make([]int, count)
	for i := 0; i < count; i++ {
		out[count-1-i] = readings[i].MgDL
	}
	return out
}

// sparkLevels scales values onto 0..levels-1 between the window's lowest and
// highest value. A flat window sits on the middle level.
func sparkLevels(values []int, levels int) []int {
	out := make([]int, len(values))
	if len(values) == 0 || levels < 1 {
		return out
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	for i, v := range values {
		if hi == lo {
			out[i] = levels / 2
			continue
		}
		out[i] = (v - lo) * (levels - 1) / (hi - lo)
	}
	return out
}

func formatClock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Local().Format("15:04")
}

func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
