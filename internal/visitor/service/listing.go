package service

import (
	"context"
	"time"

	"gatehouse/internal/visitor/models"
	"gatehouse/internal/visitor/views"
)

// ListAll returns the filtered visit view: every record with time-tracking
// activity, narrowed by the filter. Registered visitors who never entered
// the tracking flow are excluded.
func (s *Service) ListAll(ctx context.Context, f views.Filter) ([]*models.VisitorRecord, error) {
	defer s.observeList(time.Now())

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, translateListErr(err)
	}
	return views.AllVisits(records, f), nil
}

// ListViolators returns the visit records currently classified as violators.
func (s *Service) ListViolators(ctx context.Context) ([]*models.VisitorRecord, error) {
	defer s.observeList(time.Now())

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, translateListErr(err)
	}
	return views.Violators(records), nil
}

// ListBanned returns the visit records currently classified as banned.
func (s *Service) ListBanned(ctx context.Context) ([]*models.VisitorRecord, error) {
	defer s.observeList(time.Now())

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, translateListErr(err)
	}
	return views.Banned(records), nil
}

// SummaryStats aggregates the filtered visit view for the dashboard header.
func (s *Service) SummaryStats(ctx context.Context, f views.Filter) (views.Summary, error) {
	defer s.observeList(time.Now())

	records, err := s.store.List(ctx)
	if err != nil {
		return views.Summary{}, translateListErr(err)
	}
	return views.Summarize(records, f), nil
}

// ListRegistered returns every record in the store, visit activity or not.
// Used by the CLI and the registration admin view, not the visit dashboard.
func (s *Service) ListRegistered(ctx context.Context) ([]*models.VisitorRecord, error) {
	defer s.observeList(time.Now())

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, translateListErr(err)
	}
	return records, nil
}
