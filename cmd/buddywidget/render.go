package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nicolagi/buddy"
)

const widgetTitle = "Buddy Tasks"

// maxTitleWidth bounds each task line, as the widget surface is narrow.
const maxTitleWidth = 32

// render draws a summary. Colors only show up if the renderer's output supports them.
func render(r *lipgloss.Renderer, s buddy.Summary) string {
	var b strings.Builder
	header := r.NewStyle().Bold(true).Render(widgetTitle)
	b.WriteString(header + "  " + s.Header() + "\n\n")
	if len(s.Visible) == 0 {
		b.WriteString("No tasks\n")
		return b.String()
	}
	for _, t := range s.Visible {
		urgency := buddy.Classify(t, s.At)
		color := r.NewStyle().Foreground(lipgloss.Color(urgency.Color()))
		b.WriteString(color.Render("●"))
		b.WriteString(" ")
		b.WriteString(truncate(t.Title, maxTitleWidth))
		if t.Deadline != nil {
			b.WriteString("  ")
			b.WriteString(color.Render(buddy.TimeLeft(*t.Deadline, s.At)))
		}
		b.WriteString("\n")
	}
	if more := s.More(); more != "" {
		b.WriteString(r.NewStyle().Faint(true).Render(more))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func footer(s buddy.Summary) string {
	return "Updated " + s.At.Local().Format(time.Kitchen)
}
