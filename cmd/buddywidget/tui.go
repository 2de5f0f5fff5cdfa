package main

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nicolagi/buddy"
)

type tuiModel struct {
	widget   *buddy.Widget
	family   buddy.Family
	interval time.Duration
	renderer *lipgloss.Renderer
	summary  buddy.Summary
}

type tickMsg time.Time

func newTUIModel(w *buddy.Widget, family buddy.Family, interval time.Duration, r *lipgloss.Renderer) *tuiModel {
	return &tuiModel{
		widget:   w,
		family:   family,
		interval: interval,
		renderer: r,
	}
}

func (m *tuiModel) refresh() {
	m.summary = m.widget.Snapshot(m.family)
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.interval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.interval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(render(m.renderer, m.summary))
	b.WriteString("\n")
	b.WriteString(m.renderer.NewStyle().Faint(true).Render(footer(m.summary) + " · r refresh · q quit"))
	b.WriteString("\n")
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func runTUI(ctx context.Context, w *buddy.Widget, family buddy.Family, interval time.Duration) error {
	model := newTUIModel(w, family, interval, lipgloss.DefaultRenderer())
	program := tea.NewProgram(model, tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
