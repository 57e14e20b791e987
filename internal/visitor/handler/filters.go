package handler

import (
	"net/url"
	"strings"
	"time"

	"gatehouse/internal/visitor/views"
	dErrors "gatehouse/pkg/domain-errors"
)

// parseFilter converts query parameters into a view filter.
// Dates use the 2006-01-02 layout and are inclusive on both ends.
func parseFilter(q url.Values) (views.Filter, error) {
	var f views.Filter

	if from := strings.TrimSpace(q.Get("from")); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return views.Filter{}, dErrors.New(dErrors.CodeValidation, "from must be a YYYY-MM-DD date")
		}
		f.From = &t
	}
	if to := strings.TrimSpace(q.Get("to")); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return views.Filter{}, dErrors.New(dErrors.CodeValidation, "to must be a YYYY-MM-DD date")
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return views.Filter{}, dErrors.New(dErrors.CodeValidation, "to must not be before from")
	}

	f.Query = strings.TrimSpace(q.Get("q"))
	switch field := views.SearchField(strings.TrimSpace(q.Get("field"))); field {
	case views.FieldAny, views.FieldName, views.FieldVisited, views.FieldRelationship, views.FieldID:
		f.Field = field
	default:
		return views.Filter{}, dErrors.New(dErrors.CodeValidation, "field must be one of name, visited, relationship, id")
	}

	return f, nil
}
