package buddy

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrBadDeadline is returned by ParseDeadline.
var ErrBadDeadline = errors.New("unrecognized deadline")

// Layouts accepted by ParseDeadline, tried in order. Layouts without a zone are read in local time.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDeadline reads a deadline given on the command line. It accepts RFC 3339 timestamps, local
// date and time as 2006-01-02T15:04, a bare date (meaning the end of that day, local time), and
// durations relative to now such as 90m, 2h30m or 3d.
func ParseDeadline(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty: %w", ErrBadDeadline)
	}
	if d, ok := parseRelative(s); ok {
		return now.Add(d), nil
	}
	for _, layout := range deadlineLayouts {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			t = t.Add(24*time.Hour - time.Second)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%q: %w", s, ErrBadDeadline)
}

// parseRelative understands time.ParseDuration syntax plus a whole number of days, e.g. 3d.
func parseRelative(s string) (time.Duration, bool) {
	s = strings.TrimPrefix(s, "+")
	if strings.HasSuffix(s, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, false
		}
		return time.Duration(n) * 24 * time.Hour, true
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false
	}
	return d, true
}

// TimeLeft is the short label shown next to a deadline in the widget: "Overdue" once passed, otherwise
// minutes, hours or days left, each rounded up.
func TimeLeft(deadline time.Time, now time.Time) string {
	d := deadline.Sub(now)
	hours := d.Hours()
	switch {
	case hours < 0:
		return "Overdue"
	case hours < 1:
		return fmt.Sprintf("%dm left", int(math.Ceil(d.Minutes())))
	case hours < 24:
		return fmt.Sprintf("%dh left", int(math.Ceil(hours)))
	default:
		return fmt.Sprintf("%dd left", int(math.Ceil(hours/24)))
	}
}

// RelativeDuration formats d compactly as days and hours, e.g. 2d5h, falling back to minutes for
// durations under an hour. Negative durations get a leading minus sign.
func RelativeDuration(d time.Duration) string {
	var buf bytes.Buffer
	if d < 0 {
		buf.WriteByte('-')
		d = -d
	}
	sign := buf.Len()
	t := d / (24 * time.Hour)
	if t != 0 {
		fmt.Fprintf(&buf, "%dd", t)
	}
	d -= t * 24 * time.Hour
	t = d / time.Hour
	if t != 0 {
		fmt.Fprintf(&buf, "%dh", t)
	}
	d -= t * time.Hour
	if buf.Len() == sign {
		t = d / time.Minute
		fmt.Fprintf(&buf, "%dm", t)
	}
	return buf.String()
}
