// Package views computes the read-side projections over the full record
// collection: all visits, current violators, currently banned, and summary
// statistics.
//
// Everything here is a pure function recomputed on demand. The record set is
// small; correctness matters more than update cost, so there is no caching
// and no incremental maintenance.
package views

import (
	"strings"
	"time"

	"gatehouse/internal/visitor/models"
)

// SearchField scopes the substring search.
type SearchField string

const (
	FieldAny          SearchField = ""
	FieldName         SearchField = "name"
	FieldVisited      SearchField = "visited"
	FieldRelationship SearchField = "relationship"
	FieldID           SearchField = "id"
)

// Filter narrows the AllVisits view. The date range is inclusive on
// LastVisitDate; the substring search is case-insensitive. Both conditions
// are ANDed.
type Filter struct {
	From  *time.Time
	To    *time.Time
	Query string
	Field SearchField
}

// AllVisits returns the records that have ever entered the time-tracking
// flow, narrowed by the filter. Records with no time-tracking activity are
// excluded even though they exist in the store.
func AllVisits(records []*models.VisitorRecord, f Filter) []*models.VisitorRecord {
	out := make([]*models.VisitorRecord, 0, len(records))
	for _, r := range records {
		if !r.HasVisitActivity() {
			continue
		}
		if !matchesDateRange(r, f.From, f.To) {
			continue
		}
		if !matchesSearch(r, f.Query, f.Field) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Violators returns the visit records whose compliance class is Violator.
func Violators(records []*models.VisitorRecord) []*models.VisitorRecord {
	return byClass(records, models.Violator)
}

// Banned returns the visit records whose compliance class is Banned.
func Banned(records []*models.VisitorRecord) []*models.VisitorRecord {
	return byClass(records, models.Banned)
}

func byClass(records []*models.VisitorRecord, class models.Classification) []*models.VisitorRecord {
	all := AllVisits(records, Filter{})
	out := make([]*models.VisitorRecord, 0, len(all))
	for _, r := range all {
		if r.Classify() == class {
			out = append(out, r)
		}
	}
	return out
}

// Summary aggregates the currently filtered AllVisits set, not the
// unfiltered store.
type Summary struct {
	Total           int            `json:"total"`
	BySex           map[string]int `json:"by_sex"`
	DistinctVisited int            `json:"distinct_visited_persons"`
	Violators       int            `json:"violators"`
	Banned          int            `json:"banned"`
}

// Summarize computes summary statistics over the filtered AllVisits set.
func Summarize(records []*models.VisitorRecord, f Filter) Summary {
	filtered := AllVisits(records, f)

	s := Summary{
		Total: len(filtered),
		BySex: make(map[string]int),
	}
	visited := make(map[string]struct{})
	for _, r := range filtered {
		if r.Profile.Sex != "" {
			s.BySex[r.Profile.Sex]++
		}
		if !r.VisitedPersonID.IsZero() {
			visited[r.VisitedPersonID.String()] = struct{}{}
		}
		switch r.Classify() {
		case models.Violator:
			s.Violators++
		case models.Banned:
			s.Banned++
		}
	}
	s.DistinctVisited = len(visited)
	return s
}

func matchesDateRange(r *models.VisitorRecord, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if r.LastVisitDate == nil {
		return false
	}
	d := *r.LastVisitDate
	if from != nil && d.Before(models.DateOnly(*from)) {
		return false
	}
	if to != nil && d.After(models.DateOnly(*to)) {
		return false
	}
	return true
}

func matchesSearch(r *models.VisitorRecord, query string, field SearchField) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), q)
	}
	switch field {
	case FieldName:
		return contains(r.Profile.Name)
	case FieldVisited:
		return contains(r.VisitedPersonName)
	case FieldRelationship:
		return contains(r.Relationship)
	case FieldID:
		return contains(r.ID.String())
	default:
		return contains(r.Profile.Name) ||
			contains(r.VisitedPersonName) ||
			contains(r.Relationship) ||
			contains(r.ID.String())
	}
}
