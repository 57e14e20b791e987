package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	t.Run("parses morning and afternoon times", func(t *testing.T) {
		cases := []struct {
			in      string
			minutes int
		}{
			{"12:00 AM", 0},
			{"12:30 AM", 30},
			{"9:05 AM", 9*60 + 5},
			{"12:00 PM", 720},
			{"2:30 PM", 14*60 + 30},
			{"11:59 PM", 23*60 + 59},
		}
		for _, tc := range cases {
			got, err := ParseClock(tc.in)
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.minutes, got, tc.in)
		}
	})

	t.Run("tolerates surrounding whitespace", func(t *testing.T) {
		got, err := ParseClock("  2:30 PM ")
		require.NoError(t, err)
		assert.Equal(t, 14*60+30, got)
	})

	t.Run("rejects 24-hour and malformed input", func(t *testing.T) {
		for _, in := range []string{"14:30", "2:30", "half past two", ""} {
			_, err := ParseClock(in)
			assert.Error(t, err, in)
		}
	})
}

func TestFormatClock(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2025, 6, 15, h, m, 0, 0, time.UTC)
	}
	assert.Equal(t, "9:05 AM", FormatClock(at(9, 5)))
	assert.Equal(t, "2:30 PM", FormatClock(at(14, 30)))
	assert.Equal(t, "12:00 AM", FormatClock(at(0, 0)))
	assert.Equal(t, "12:00 PM", FormatClock(at(12, 0)))
}

func TestBetween(t *testing.T) {
	t.Run("computes elapsed minutes", func(t *testing.T) {
		span, err := Between("9:00 AM", "10:30 AM")
		require.NoError(t, err)
		assert.True(t, span.Valid)
		assert.Equal(t, 90, span.Minutes)
	})

	t.Run("spanning noon", func(t *testing.T) {
		span, err := Between("11:45 AM", "1:15 PM")
		require.NoError(t, err)
		assert.True(t, span.Valid)
		assert.Equal(t, 90, span.Minutes)
	})

	t.Run("zero-length visit is valid", func(t *testing.T) {
		span, err := Between("2:30 PM", "2:30 PM")
		require.NoError(t, err)
		assert.True(t, span.Valid)
		assert.Equal(t, 0, span.Minutes)
	})

	t.Run("missing endpoint yields invalid, not error", func(t *testing.T) {
		for _, pair := range [][2]string{{"", ""}, {"9:00 AM", ""}, {"", "9:00 AM"}} {
			span, err := Between(pair[0], pair[1])
			require.NoError(t, err)
			assert.False(t, span.Valid)
		}
	})

	t.Run("out before in yields invalid, not error", func(t *testing.T) {
		span, err := Between("3:00 PM", "9:00 AM")
		require.NoError(t, err)
		assert.False(t, span.Valid)
	})

	t.Run("unparseable endpoint is an error", func(t *testing.T) {
		_, err := Between("not a time", "9:00 AM")
		assert.Error(t, err)
	})
}

func TestSpanString(t *testing.T) {
	assert.Equal(t, "1h 30m", Span{Minutes: 90, Valid: true}.String())
	assert.Equal(t, "2h 0m", Span{Minutes: 120, Valid: true}.String())
	assert.Equal(t, "45m", Span{Minutes: 45, Valid: true}.String())
	assert.Equal(t, "0m", Span{Minutes: 0, Valid: true}.String())
	assert.Equal(t, "invalid", Span{}.String())
}
