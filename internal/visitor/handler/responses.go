package handler

import (
	"time"

	"gatehouse/internal/visitor/models"
)

const dateLayout = "2006-01-02"

// VisitorResponse is the wire shape of one record. The window state enum is
// the stored truth; the has_timed_in/has_timed_out pair the dashboard
// consumes is derived here and nowhere else.
type VisitorResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Birthdate         string `json:"birthdate,omitempty"`
	Sex               string `json:"sex,omitempty"`
	Address           string `json:"address,omitempty"`
	Contact           string `json:"contact,omitempty"`
	Relationship      string `json:"relationship,omitempty"`
	VisitedPersonID   string `json:"visited_person_id"`
	VisitedPersonName string `json:"visited_person_name,omitempty"`

	HasTimedIn    bool   `json:"has_timed_in"`
	HasTimedOut   bool   `json:"has_timed_out"`
	TimeIn        string `json:"time_in,omitempty"`
	TimeOut       string `json:"time_out,omitempty"`
	Duration      string `json:"duration,omitempty"`
	DateVisited   string `json:"date_visited,omitempty"`
	LastVisitDate string `json:"last_visit_date,omitempty"`

	Status           string `json:"status"`
	Classification   string `json:"classification"`
	ViolationType    string `json:"violation_type,omitempty"`
	ViolationDetails string `json:"violation_details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVisitorResponse maps a record to its wire shape.
func NewVisitorResponse(r *models.VisitorRecord) VisitorResponse {
	resp := VisitorResponse{
		ID:                r.ID.String(),
		Name:              r.Profile.Name,
		Birthdate:         r.Profile.Birthdate,
		Sex:               r.Profile.Sex,
		Address:           r.Profile.Address,
		Contact:           r.Profile.Contact,
		Relationship:      r.Relationship,
		VisitedPersonID:   r.VisitedPersonID.String(),
		VisitedPersonName: r.VisitedPersonName,
		HasTimedIn:        r.HasTimedIn(),
		HasTimedOut:       r.HasTimedOut(),
		TimeIn:            r.TimeIn,
		TimeOut:           r.TimeOut,
		Status:            string(r.Status),
		Classification:    string(r.Classify()),
		ViolationType:     r.ViolationType,
		ViolationDetails:  r.ViolationDetails,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	if r.HasTimedOut() {
		if d, err := r.VisitDuration(); err == nil {
			resp.Duration = d.String()
		}
	}
	if r.DateVisited != nil {
		resp.DateVisited = r.DateVisited.Format(dateLayout)
	}
	if r.LastVisitDate != nil {
		resp.LastVisitDate = r.LastVisitDate.Format(dateLayout)
	}
	return resp
}

// ListResponse wraps a view result.
type ListResponse struct {
	Visitors []VisitorResponse `json:"visitors"`
	Count    int               `json:"count"`
}

// NewListResponse maps a record slice to its wire shape.
func NewListResponse(records []*models.VisitorRecord) ListResponse {
	visitors := make([]VisitorResponse, 0, len(records))
	for _, r := range records {
		visitors = append(visitors, NewVisitorResponse(r))
	}
	return ListResponse{Visitors: visitors, Count: len(visitors)}
}
