package buddy

import (
	"errors"
	"fmt"
	"strings"

	uuid "github.com/nu7hatch/gouuid"
)

var (
	// ErrNotFound is returned when no task matches an id.
	ErrNotFound = errors.New("task not found")

	// ErrAmbiguous is returned by Store.Resolve when an id prefix matches more than one task.
	ErrAmbiguous = errors.New("ambiguous task id")
)

// newID returns a fresh random identifier. Identifiers are UUIDs so that they are never reused, even
// across an import that brings back tasks created elsewhere.
func newID() (string, error) {
	u, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("new id: %w", err)
	}
	return u.String(), nil
}

// resolveID finds the single task whose id is exactly id or, failing that, starts with it.
func resolveID(tasks []Task, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("empty id: %w", ErrNotFound)
	}
	for _, t := range tasks {
		if t.ID == id {
			return id, nil
		}
	}
	var match string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, id) {
			if match != "" {
				return "", fmt.Errorf("%s: %w", id, ErrAmbiguous)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return match, nil
}
