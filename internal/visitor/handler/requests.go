package handler

import (
	"strings"

	dErrors "gatehouse/pkg/domain-errors"
)

// RegisterVisitorRequest is the registration payload.
type RegisterVisitorRequest struct {
	Name              string `json:"name"`
	Birthdate         string `json:"birthdate"`
	Sex               string `json:"sex"`
	Address           string `json:"address"`
	Contact           string `json:"contact"`
	Relationship      string `json:"relationship"`
	VisitedPersonID   string `json:"visited_person_id"`
	VisitedPersonName string `json:"visited_person_name"`
}

func (r *RegisterVisitorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Birthdate = strings.TrimSpace(r.Birthdate)
	r.Sex = strings.TrimSpace(r.Sex)
	r.Address = strings.TrimSpace(r.Address)
	r.Contact = strings.TrimSpace(r.Contact)
	r.Relationship = strings.TrimSpace(r.Relationship)
	r.VisitedPersonID = strings.TrimSpace(r.VisitedPersonID)
	r.VisitedPersonName = strings.TrimSpace(r.VisitedPersonName)
}

func (r *RegisterVisitorRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.VisitedPersonID == "" {
		return dErrors.New(dErrors.CodeValidation, "visited_person_id is required")
	}
	return nil
}

// SetStatusRequest carries an approval decision.
type SetStatusRequest struct {
	Status string `json:"status"`
}

func (r *SetStatusRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
}

func (r *SetStatusRequest) Validate() error {
	if r.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	return nil
}

// RecordViolationRequest carries a violation annotation.
type RecordViolationRequest struct {
	Type    string `json:"type"`
	Details string `json:"details"`
}

func (r *RecordViolationRequest) Normalize() {
	r.Type = strings.TrimSpace(r.Type)
	r.Details = strings.TrimSpace(r.Details)
}

func (r *RecordViolationRequest) Validate() error {
	if r.Type == "" {
		return dErrors.New(dErrors.CodeValidation, "type is required")
	}
	if r.Details == "" {
		return dErrors.New(dErrors.CodeValidation, "details is required")
	}
	return nil
}

// BanRequest carries a ban annotation.
type BanRequest struct {
	Duration string `json:"duration"`
	Reason   string `json:"reason"`
}

func (r *BanRequest) Normalize() {
	r.Duration = strings.TrimSpace(r.Duration)
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *BanRequest) Validate() error {
	if r.Duration == "" {
		return dErrors.New(dErrors.CodeValidation, "duration is required")
	}
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	return nil
}
