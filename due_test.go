package buddy_test

import (
	"errors"
	"testing"
	"time"

	"github.com/nicolagi/buddy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLeft(t *testing.T) {
	testCases := []struct {
		left     time.Duration
		expected string
	}{
		{left: -time.Minute, expected: "Overdue"},
		{left: 30*time.Minute + time.Second, expected: "31m left"},
		{left: 59 * time.Minute, expected: "59m left"},
		{left: time.Hour, expected: "1h left"},
		{left: 90 * time.Minute, expected: "2h left"},
		{left: 24 * time.Hour, expected: "1d left"},
		{left: 25 * time.Hour, expected: "2d left"},
		{left: 72 * time.Hour, expected: "3d left"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, buddy.TimeLeft(testNow.Add(tc.left), testNow), tc.left.String())
	}
}

func TestRelativeDuration(t *testing.T) {
	assert.Equal(t, "2d5h", buddy.RelativeDuration(53*time.Hour))
	assert.Equal(t, "3h", buddy.RelativeDuration(3*time.Hour+20*time.Minute))
	assert.Equal(t, "45m", buddy.RelativeDuration(45*time.Minute))
	assert.Equal(t, "0m", buddy.RelativeDuration(10*time.Second))
	assert.Equal(t, "-1d", buddy.RelativeDuration(-24*time.Hour))
	assert.Equal(t, "-5m", buddy.RelativeDuration(-5*time.Minute))
}

func TestParseDeadline(t *testing.T) {
	local := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, local)
	testCases := []struct {
		input    string
		expected time.Time
	}{
		{input: "2h", expected: now.Add(2 * time.Hour)},
		{input: "+90m", expected: now.Add(90 * time.Minute)},
		{input: "3d", expected: now.Add(72 * time.Hour)},
		{input: "2026-10-20T09:30:00Z", expected: time.Date(2026, 10, 20, 9, 30, 0, 0, time.UTC)},
		{input: "2026-10-20T09:30", expected: time.Date(2026, 10, 20, 9, 30, 0, 0, local)},
		{input: "2026-10-20 09:30", expected: time.Date(2026, 10, 20, 9, 30, 0, 0, local)},
		{input: "2026-10-20", expected: time.Date(2026, 10, 20, 23, 59, 59, 0, local)},
	}
	for _, tc := range testCases {
		got, err := buddy.ParseDeadline(tc.input, now)
		require.Nil(t, err, tc.input)
		assert.True(t, tc.expected.Equal(got), "%s: got %v, want %v", tc.input, got, tc.expected)
	}

	for _, input := range []string{"", "tomorrow", "xd", "20261020"} {
		_, err := buddy.ParseDeadline(input, now)
		assert.True(t, errors.Is(err, buddy.ErrBadDeadline), input)
	}
}
