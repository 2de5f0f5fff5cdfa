package buddy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nicolagi/buddy/kv"
	log "github.com/sirupsen/logrus"
)

// DefaultRefresh is how often a widget re-reads the task list.
const DefaultRefresh = time.Minute

// Family is the size class of the widget surface, which decides how many tasks fit.
type Family int

const (
	FamilySmall Family = iota
	FamilyMedium
	FamilyLarge
)

// ErrBadFamily is returned by ParseFamily.
var ErrBadFamily = errors.New("unknown widget family")

// ParseFamily maps "small", "medium" and "large" to a Family.
func ParseFamily(s string) (Family, error) {
	switch s {
	case "small":
		return FamilySmall, nil
	case "medium", "":
		return FamilyMedium, nil
	case "large":
		return FamilyLarge, nil
	default:
		return FamilyMedium, fmt.Errorf("%q: %w", s, ErrBadFamily)
	}
}

func (f Family) String() string {
	switch f {
	case FamilySmall:
		return "small"
	case FamilyLarge:
		return "large"
	default:
		return "medium"
	}
}

// Cap is the number of tasks shown by a widget of this family.
func (f Family) Cap() int {
	switch f {
	case FamilySmall:
		return 2
	case FamilyLarge:
		return 6
	default:
		return 4
	}
}

// Summary is what a widget shows after one read: the first tasks by time left among the outstanding
// ones, and how many more did not fit.
type Summary struct {
	Total    int    // Outstanding tasks
	Visible  []Task // At most Family.Cap() of them, sorted by time left
	Overflow int    // Total - len(Visible)
	At       time.Time
}

// Header reads, e.g., "3 tasks".
func (s Summary) Header() string {
	if s.Total == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", s.Total)
}

// More reads, e.g., "+2 more", or is empty when everything fits.
func (s Summary) More() string {
	if s.Overflow <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d more", s.Overflow)
}

type widgetOption func(*Widget)

// WithWidgetKey makes the widget read a storage key other than DefaultKey.
func WithWidgetKey(key string) widgetOption {
	return func(w *Widget) {
		w.key = key
	}
}

// WithWidgetClock replaces time.Now. Meant for tests.
func WithWidgetClock(now func() time.Time) widgetOption {
	return func(w *Widget) {
		w.now = now
	}
}

// Widget reads the task list persisted by a Store, typically from another process, and summarizes the
// outstanding tasks. It never writes. Each read is independent and may observe the list between any two
// writes of the store.
type Widget struct {
	storage kv.Storage
	key     string
	now     func() time.Time
}

func NewWidget(storage kv.Storage, opts ...widgetOption) *Widget {
	w := &Widget{
		storage: storage,
		key:     DefaultKey,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Snapshot reads the whole list and summarizes it for the given family. Read and decode failures give
// an empty summary.
func (w *Widget) Snapshot(family Family) Summary {
	now := w.now()
	outstanding := Sort(Outstanding(readTasks(w.storage, w.key, log.DebugLevel)), now)
	visible := outstanding
	if len(visible) > family.Cap() {
		visible = visible[:family.Cap()]
	}
	return Summary{
		Total:    len(outstanding),
		Visible:  visible,
		Overflow: len(outstanding) - len(visible),
		At:       now,
	}
}

// Run calls render with a fresh snapshot right away and then once per interval, until ctx is done.
// A non-positive interval means DefaultRefresh.
func (w *Widget) Run(ctx context.Context, family Family, interval time.Duration, render func(Summary)) error {
	if interval <= 0 {
		interval = DefaultRefresh
	}
	render(w.Snapshot(family))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			render(w.Snapshot(family))
		}
	}
}
