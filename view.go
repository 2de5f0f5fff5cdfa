package buddy

import (
	"sort"
	"time"
)

// Urgency is the severity bucket of a task, derived from its completion state and time left.
type Urgency int

const (
	UrgencyMuted   Urgency = iota // Completed, whatever the deadline
	UrgencyNone                   // No deadline
	UrgencyOverdue                // Deadline passed
	UrgencyUrgent                 // Less than a day left
	UrgencySoon                   // Less than three days left
	UrgencySafe                   // Plenty of time
)

// Upper bounds, exclusive, of the urgent and soon bands.
const (
	urgentHours = 24
	soonHours   = 72
)

func (u Urgency) String() string {
	switch u {
	case UrgencyMuted:
		return "muted"
	case UrgencyNone:
		return "none"
	case UrgencyOverdue:
		return "overdue"
	case UrgencyUrgent:
		return "urgent"
	case UrgencySoon:
		return "soon"
	case UrgencySafe:
		return "safe"
	default:
		return "unknown"
	}
}

// Color returns the hex color the urgency is drawn with.
func (u Urgency) Color() string {
	switch u {
	case UrgencyMuted:
		return "#94a3b8"
	case UrgencyOverdue:
		return "#ef4444"
	case UrgencyUrgent:
		return "#f97316"
	case UrgencySoon:
		return "#eab308"
	case UrgencySafe:
		return "#10b981"
	default:
		return "#64748b"
	}
}

// HoursLeft returns the fractional hours until the deadline, negative once it has passed. It returns 0
// for tasks without a deadline; check Deadline first.
func HoursLeft(t Task, now time.Time) float64 {
	if t.Deadline == nil {
		return 0
	}
	return float64(t.Deadline.Sub(now)) / float64(time.Hour)
}

// Classify buckets a task. The checks run in order and the first match wins: completion, then absence
// of a deadline, then the overdue, urgent and soon bands.
func Classify(t Task, now time.Time) Urgency {
	if t.Completed {
		return UrgencyMuted
	}
	if t.Deadline == nil {
		return UrgencyNone
	}
	hours := HoursLeft(t, now)
	switch {
	case hours < 0:
		return UrgencyOverdue
	case hours < urgentHours:
		return UrgencyUrgent
	case hours < soonHours:
		return UrgencySoon
	default:
		return UrgencySafe
	}
}

// IsExpired tells whether the task's deadline is strictly in the past. Completion doesn't matter.
func IsExpired(t Task, now time.Time) bool {
	return t.Deadline != nil && t.Deadline.Before(now)
}

// Struck tells whether a task is drawn struck through: done, or past its deadline.
func Struck(t Task, now time.Time) bool {
	return t.Completed || IsExpired(t, now)
}

// tasksByTimeLeft orders by deadline, which is the same as ordering by time left at any instant.
type tasksByTimeLeft []Task

func (s tasksByTimeLeft) Len() int {
	return len(s)
}

func (s tasksByTimeLeft) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func (s tasksByTimeLeft) Less(i, j int) bool {
	a, b := s[i].Deadline, s[j].Deadline
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

// Sort returns a copy of tasks ordered by time left, soonest (or most overdue) first, with tasks
// lacking a deadline last. The sort is stable: ties keep their relative order from the input. The
// order doesn't depend on now, only the time left does.
func Sort(tasks []Task, now time.Time) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.Stable(tasksByTimeLeft(sorted))
	return sorted
}

// Outstanding returns the tasks not yet completed, in input order.
func Outstanding(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}
