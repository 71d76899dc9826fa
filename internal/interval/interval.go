// Package interval formats and inspects Postgres-style interval text
// ("2 days, 3:30:00") as stored on maps and waypoints.
package interval

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// componentRe matches an optional day group followed by an H:MM:SS remainder.
var componentRe = regexp.MustCompile(`^(?:(\d+)\s+days?,\s*)?(\d+):(\d{2}):(\d{2})(?:\.\d+)?$`)

// Humanize renders an interval as "2 days, 3 hours, 30 minutes". Zero-valued
// components are omitted and seconds are never rendered. Text that does not
// parse as an interval is returned unchanged.
func Humanize(s string) string {
	m := componentRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s
	}

	days, _ := strconv.Atoi(m[1]) // absent day group parses as 0
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])

	var parts []string
	if days > 0 {
		parts = append(parts, pluralize(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, pluralize(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, pluralize(minutes, "minute"))
	}
	return strings.Join(parts, ", ")
}

// Days converts an interval to fractional days for range comparisons.
// The second return is false when the text does not parse.
func Days(s string) (float64, bool) {
	m := componentRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}

	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	seconds, _ := strconv.Atoi(m[4])

	total := float64(days) + float64(hours)/24 + float64(minutes)/(24*60) + float64(seconds)/(24*3600)
	return total, true
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
