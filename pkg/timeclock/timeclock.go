// Package timeclock handles the 12-hour wall-clock strings ("H:MM AM/PM")
// recorded on visit windows, and the elapsed-time arithmetic between them.
//
// Times carry no date component. A check-out earlier on the clock than its
// check-in therefore yields an invalid span rather than an overnight duration;
// overnight visits are out of scope for the tracker.
package timeclock

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the wall-clock format stored on visitor records.
const Layout = "3:04 PM"

// Span is the elapsed time between a check-in and a check-out.
// Valid is false when the pair cannot produce a meaningful duration
// (negative span, or either endpoint missing). An invalid span is a
// reportable fact, not an error.
type Span struct {
	Minutes int
	Valid   bool
}

// ParseClock parses a "H:MM AM/PM" string into minutes since midnight.
// 12 AM maps to 0, 12 PM to 720.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse wall-clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders a time of day in the record format, e.g. "9:05 AM".
func FormatClock(t time.Time) string {
	return t.Format(Layout)
}

// Between computes the span from timeIn to timeOut.
// Returns an error only for unparseable input; a negative span comes back
// as Span{Valid: false}.
func Between(timeIn, timeOut string) (Span, error) {
	if timeIn == "" || timeOut == "" {
		return Span{}, nil
	}
	in, err := ParseClock(timeIn)
	if err != nil {
		return Span{}, err
	}
	out, err := ParseClock(timeOut)
	if err != nil {
		return Span{}, err
	}
	minutes := out - in
	if minutes < 0 {
		return Span{}, nil
	}
	return Span{Minutes: minutes, Valid: true}, nil
}

// String renders the span as "1h 30m" when at least an hour, else "45m".
// Invalid spans render as "invalid".
func (s Span) String() string {
	if !s.Valid {
		return "invalid"
	}
	if s.Minutes >= 60 {
		return fmt.Sprintf("%dh %dm", s.Minutes/60, s.Minutes%60)
	}
	return fmt.Sprintf("%dm", s.Minutes)
}
