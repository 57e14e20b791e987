package models

import (
	"time"

	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/timeclock"
)

// WindowState is the visit-window state machine for one visitor.
//
// The enum is the source of truth; the legacy hasTimedIn/hasTimedOut boolean
// pair is derived at the serialization boundary only (HTTP responses, store
// row encodings).
type WindowState string

const (
	WindowNotCheckedIn WindowState = "not_checked_in"
	WindowCheckedIn    WindowState = "checked_in"
	WindowCheckedOut   WindowState = "checked_out"
)

// ApprovalStatus is the request/approval status of the underlying visit
// authorization. It is set by the approval flow and read-only to the tracker.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// Valid reports whether the value is a known approval status.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Profile holds the visitor's identity fields. The tracker never mutates
// them; profile edits arrive through the registration CRUD flow.
type Profile struct {
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	Sex       string `json:"sex"`
	Address   string `json:"address"`
	Contact   string `json:"contact"`
}

// VisitorRecord is the aggregate root for one visitor: identity, the one
// active visit's time window, and compliance status.
//
// Invariants:
//   - Window state CheckedOut implies a check-in happened first (the enum
//     makes the illegal hasTimedOut-without-hasTimedIn encoding unrepresentable)
//   - Reset clears TimeIn, TimeOut, DateVisited, and the window state but
//     never LastVisitDate or Profile
//   - ViolationType is empty, a ban value, or a non-ban violation value;
//     Classify partitions every record into exactly one of Clean, Violator,
//     Banned
//   - Compliance annotations are orthogonal to the time-tracking window:
//     changing one never implicitly changes the other
type VisitorRecord struct {
	ID           id.VisitorID `json:"id"`
	Profile      Profile      `json:"profile"`
	Relationship string       `json:"relationship"`
	// VisitedPersonID identifies the detainee for the current/most recent
	// visit; the name is denormalized for the dashboard's search.
	VisitedPersonID   id.DetaineeID `json:"visited_person_id"`
	VisitedPersonName string        `json:"visited_person_name"`
	Window          WindowState    `json:"window"`
	TimeIn          string         `json:"time_in,omitempty"`
	TimeOut         string         `json:"time_out,omitempty"`
	DateVisited     *time.Time     `json:"date_visited,omitempty"`
	LastVisitDate   *time.Time     `json:"last_visit_date,omitempty"`
	Status          ApprovalStatus `json:"status"`

	ViolationType    string `json:"violation_type,omitempty"`
	ViolationDetails string `json:"violation_details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVisitorRecord registers a visitor: window closed, clean, pending approval.
func NewVisitorRecord(visitorID id.VisitorID, profile Profile, relationship string, visited id.DetaineeID, visitedName string, now time.Time) (*VisitorRecord, error) {
	if profile.Name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "visitor name cannot be empty")
	}
	if visited.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "visited person is required")
	}
	return &VisitorRecord{
		ID:                visitorID,
		Profile:           profile,
		Relationship:      relationship,
		VisitedPersonID:   visited,
		VisitedPersonName: visitedName,
		Window:            WindowNotCheckedIn,
		Status:            StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// HasTimedIn derives the legacy boolean for serialization boundaries.
func (r *VisitorRecord) HasTimedIn() bool {
	return r.Window == WindowCheckedIn || r.Window == WindowCheckedOut
}

// HasTimedOut derives the legacy boolean for serialization boundaries.
func (r *VisitorRecord) HasTimedOut() bool {
	return r.Window == WindowCheckedOut
}

// CanCheckIn checks whether a check-in is allowed from the current state.
// Use with ApplyCheckIn in Execute callbacks.
func (r *VisitorRecord) CanCheckIn() error {
	if r.Window != WindowNotCheckedIn {
		return dErrors.New(dErrors.CodeInvalidTransition, "visitor is already checked in")
	}
	return nil
}

// ApplyCheckIn opens the visit window: records the wall-clock time-in and the
// visit date. Call CanCheckIn first.
func (r *VisitorRecord) ApplyCheckIn(now time.Time) {
	r.Window = WindowCheckedIn
	r.TimeIn = timeclock.FormatClock(now)
	d := DateOnly(now)
	r.DateVisited = &d
	r.UpdatedAt = now
}

// CanCheckOut checks whether a check-out is allowed from the current state.
func (r *VisitorRecord) CanCheckOut() error {
	switch r.Window {
	case WindowCheckedIn:
		return nil
	case WindowCheckedOut:
		return dErrors.New(dErrors.CodeInvalidTransition, "visitor has already checked out")
	default:
		return dErrors.New(dErrors.CodeInvalidTransition, "visitor has not checked in")
	}
}

// ApplyCheckOut closes the visit window and promotes the in-progress visit
// date to LastVisitDate, the durable history marker. Call CanCheckOut first.
func (r *VisitorRecord) ApplyCheckOut(now time.Time) {
	r.Window = WindowCheckedOut
	r.TimeOut = timeclock.FormatClock(now)
	if r.DateVisited != nil {
		d := *r.DateVisited
		r.LastVisitDate = &d
	}
	r.UpdatedAt = now
}

// ApplyStatus records an approval decision. Orthogonal to the visit window.
func (r *VisitorRecord) ApplyStatus(status ApprovalStatus, now time.Time) {
	r.Status = status
	r.UpdatedAt = now
}

// ApplyReset clears the current visit window unconditionally. Idempotent when
// the window is already closed. LastVisitDate and Profile are untouched.
func (r *VisitorRecord) ApplyReset(now time.Time) {
	r.Window = WindowNotCheckedIn
	r.TimeIn = ""
	r.TimeOut = ""
	r.DateVisited = nil
	r.UpdatedAt = now
}

// HasVisitActivity reports whether the visitor has ever entered the
// time-tracking flow. Records without any activity are excluded from the
// visit views even though they exist in the store.
func (r *VisitorRecord) HasVisitActivity() bool {
	return r.TimeIn != "" || r.TimeOut != "" || r.DateVisited != nil || r.LastVisitDate != nil
}

// VisitDuration computes the span of the current window.
// Open windows and negative spans come back invalid, not as errors.
func (r *VisitorRecord) VisitDuration() (timeclock.Span, error) {
	return timeclock.Between(r.TimeIn, r.TimeOut)
}

// Clone returns a deep copy so stores can hand out records without aliasing
// their internal state.
func (r *VisitorRecord) Clone() *VisitorRecord {
	c := *r
	if r.DateVisited != nil {
		d := *r.DateVisited
		c.DateVisited = &d
	}
	if r.LastVisitDate != nil {
		d := *r.LastVisitDate
		c.LastVisitDate = &d
	}
	return &c
}

// DateOnly truncates a timestamp to its UTC wall date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
