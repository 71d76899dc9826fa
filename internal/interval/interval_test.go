package interval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trailmark-app/trailmark-backend/internal/interval"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"days hours minutes", "2 days, 3:30:00", "2 days, 3 hours, 30 minutes"},
		{"singular units", "1 day, 1:01:00", "1 day, 1 hour, 1 minute"},
		{"hours only", "5:00:00", "5 hours"},
		{"minutes only", "0:45:00", "45 minutes"},
		{"zero components omitted", "3:00:09", "3 hours"},
		{"seconds never rendered", "0:00:30", ""},
		{"fractional seconds tolerated", "1 day, 2:15:00.500000", "1 day, 2 hours, 15 minutes"},
		{"unparseable falls through verbatim", "about a week", "about a week"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interval.Humanize(tt.in))
		})
	}
}

func TestHumanize_Deterministic(t *testing.T) {
	first := interval.Humanize("4 days, 6:20:00")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, interval.Humanize("4 days, 6:20:00"))
	}
}

func TestDays(t *testing.T) {
	d, ok := interval.Days("1 day, 12:00:00")
	assert.True(t, ok)
	assert.InDelta(t, 1.5, d, 1e-9)

	d, ok = interval.Days("0:00:00")
	assert.True(t, ok)
	assert.Zero(t, d)

	_, ok = interval.Days("not an interval")
	assert.False(t, ok)
}
