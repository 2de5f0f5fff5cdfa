package buddy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Task is the only entity of the task list. The zero value is not a valid task; use Store.Add to create
// tasks, which assigns the id and creation time.
type Task struct {
	ID        string
	Title     string
	Deadline  *time.Time // Nil means no deadline.
	Completed bool
	CreatedAt time.Time

	// Properties we don't know about, kept verbatim so they survive import, persist and export.
	extra map[string]json.RawMessage
}

// Names of the properties we know about, in the order they're written out.
const (
	fieldID        = "id"
	fieldTitle     = "title"
	fieldDeadline  = "deadline"
	fieldCompleted = "completed"
	fieldCreatedAt = "createdAt"
)

// MarshalJSON implements json.Marshaler. Known properties come first, in a fixed order, followed by
// any unknown properties sorted by name. The deadline is written as null when unset, the creation
// time is omitted when zero.
func (t Task) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	write := func(name string, value interface{}) error {
		b, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("task %s: %s: %w", t.ID, name, err)
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		_, _ = fmt.Fprintf(buf, "%q:", name)
		buf.Write(b)
		return nil
	}
	buf.WriteByte('{')
	if err := write(fieldID, t.ID); err != nil {
		return nil, err
	}
	if err := write(fieldTitle, t.Title); err != nil {
		return nil, err
	}
	if err := write(fieldDeadline, t.Deadline); err != nil {
		return nil, err
	}
	if err := write(fieldCompleted, t.Completed); err != nil {
		return nil, err
	}
	if !t.CreatedAt.IsZero() {
		if err := write(fieldCreatedAt, t.CreatedAt); err != nil {
			return nil, err
		}
	}
	names := make([]string, 0, len(t.extra))
	for name := range t.extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := write(name, t.extra[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. It does not validate; see Store.Import for the rules an
// imported task has to satisfy.
func (t *Task) UnmarshalJSON(b []byte) error {
	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(b, &attrs); err != nil {
		return err
	}
	var decoded Task
	for name, raw := range attrs {
		var err error
		switch name {
		case fieldID:
			err = json.Unmarshal(raw, &decoded.ID)
		case fieldTitle:
			err = json.Unmarshal(raw, &decoded.Title)
		case fieldDeadline:
			err = json.Unmarshal(raw, &decoded.Deadline)
		case fieldCompleted:
			err = json.Unmarshal(raw, &decoded.Completed)
		case fieldCreatedAt:
			err = json.Unmarshal(raw, &decoded.CreatedAt)
		default:
			if decoded.extra == nil {
				decoded.extra = make(map[string]json.RawMessage)
			}
			decoded.extra[name] = append(json.RawMessage(nil), raw...)
		}
		if err != nil {
			return fmt.Errorf("task property %s: %w", name, err)
		}
	}
	*t = decoded
	return nil
}

// Extra returns the raw value of a property this package doesn't interpret, if present.
func (t Task) Extra(name string) (json.RawMessage, bool) {
	raw, ok := t.extra[name]
	return raw, ok
}

// clone returns a deep copy, so that copies handed out by the store can't alias its state.
func (t Task) clone() Task {
	c := t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.extra != nil {
		c.extra = make(map[string]json.RawMessage, len(t.extra))
		for k, v := range t.extra {
			c.extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

func cloneTasks(tasks []Task) []Task {
	c := make([]Task, len(tasks))
	for i, t := range tasks {
		c[i] = t.clone()
	}
	return c
}

// decodeTasks decodes a persisted collection.
func decodeTasks(b []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// encodeTasks encodes a collection as a JSON array, indented with two spaces for export and compact
// for storage.
func encodeTasks(tasks []Task, indent bool) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	if indent {
		return json.MarshalIndent(tasks, "", "  ")
	}
	return json.Marshal(tasks)
}
