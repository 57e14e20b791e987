package audit

import "time"

// Action enumerates the tracked administrative actions.
type Action string

const (
	ActionVisitorRegistered Action = "visitor_registered"
	ActionStatusChanged     Action = "status_changed"
	ActionCheckIn           Action = "check_in"
	ActionCheckOut          Action = "check_out"
	ActionWindowReset       Action = "window_reset"
	ActionViolationRecorded Action = "violation_recorded"
	ActionViolationCleared  Action = "violation_cleared"
	ActionBanApplied        Action = "ban_applied"
	ActionBanCleared        Action = "ban_cleared"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	VisitorID string    `json:"visitor_id"`
	Action    Action    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}
