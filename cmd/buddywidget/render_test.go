package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nicolagi/buddy"
	"github.com/nicolagi/buddy/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func plainRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(&bytes.Buffer{})
}

func seededWidget(t *testing.T, titles map[string]time.Duration) *buddy.Widget {
	t.Helper()
	storage := kv.NewMemory()
	clock := func() time.Time { return testNow }
	s, err := buddy.NewStore(storage, buddy.WithClock(clock), buddy.WithSyncWrites())
	require.Nil(t, err)
	for title, d := range titles {
		deadline := testNow.Add(d)
		_, ok := s.Add(title, &deadline)
		require.True(t, ok)
	}
	require.Nil(t, s.Close())
	return buddy.NewWidget(storage, buddy.WithWidgetClock(clock))
}

func TestRenderEmpty(t *testing.T) {
	out := render(plainRenderer(), buddy.Summary{At: testNow})
	assert.Contains(t, out, "Buddy Tasks  0 tasks")
	assert.Contains(t, out, "No tasks")
}

func TestRenderOverflow(t *testing.T) {
	w := seededWidget(t, map[string]time.Duration{
		"pay rent":   -time.Hour,
		"call mum":   30 * time.Minute,
		"file taxes": 5 * time.Hour,
		"vacation":   100 * time.Hour,
	})
	out := render(plainRenderer(), w.Snapshot(buddy.FamilySmall))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Buddy Tasks  4 tasks", lines[0])
	assert.Equal(t, "● pay rent  Overdue", lines[2])
	assert.Equal(t, "● call mum  30m left", lines[3])
	assert.Equal(t, "+2 more", lines[4])
}

func TestRenderNoOverflow(t *testing.T) {
	w := seededWidget(t, map[string]time.Duration{
		"vacation": 100 * time.Hour,
	})
	out := render(plainRenderer(), w.Snapshot(buddy.FamilyLarge))
	assert.Contains(t, out, "Buddy Tasks  1 task\n")
	assert.Contains(t, out, "● vacation  5d left")
	assert.NotContains(t, out, "more")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "àèìò…", truncate("àèìòùàèìòù", 5))
}

func TestTUIModel(t *testing.T) {
	w := seededWidget(t, map[string]time.Duration{
		"file taxes": 5 * time.Hour,
	})
	m := newTUIModel(w, buddy.FamilyMedium, time.Minute, plainRenderer())
	assert.NotNil(t, m.Init())
	assert.Equal(t, 1, m.summary.Total)
	assert.Contains(t, m.View(), "● file taxes  5h left")

	_, cmd := m.Update(tickMsg(testNow))
	assert.NotNil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
