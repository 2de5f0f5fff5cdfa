package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nicolagi/buddy"
)

const shortIDLength = 8

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

// printTasks writes one line per task: short id, state, time left and title. Done and expired tasks are
// struck through, and the time left is colored by urgency, when w is a terminal.
func printTasks(w io.Writer, tasks []buddy.Task, now time.Time) {
	r := lipgloss.NewRenderer(w)
	for _, t := range tasks {
		state := " "
		if t.Completed {
			state = "x"
		}
		dueIn := "-"
		if t.Deadline != nil {
			dueIn = buddy.RelativeDuration(t.Deadline.Sub(now))
		}
		urgency := buddy.Classify(t, now)
		dueStyle := r.NewStyle().Foreground(lipgloss.Color(urgency.Color()))
		titleStyle := r.NewStyle().Strikethrough(buddy.Struck(t, now))
		_, _ = fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\n", shortID(t.ID), state, dueStyle.Render(dueIn), titleStyle.Render(t.Title))
	}
}

// printTask writes the details of a single task.
func printTask(w io.Writer, t buddy.Task, now time.Time) {
	_, _ = fmt.Fprintf(w, "ID: %s\n", t.ID)
	_, _ = fmt.Fprintf(w, "Title: %s\n", t.Title)
	if t.Deadline != nil {
		_, _ = fmt.Fprintf(w, "Deadline: %s (%s)\n", t.Deadline.Local().Format("Jan 2, 2006 3:04 PM"), buddy.TimeLeft(*t.Deadline, now))
	} else {
		_, _ = fmt.Fprint(w, "Deadline: \n")
	}
	_, _ = fmt.Fprintf(w, "Completed: %t\n", t.Completed)
	_, _ = fmt.Fprintf(w, "Urgency: %s\n", buddy.Classify(t, now))
}
