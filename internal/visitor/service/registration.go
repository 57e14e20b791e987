package service

import (
	"context"

	"gatehouse/internal/audit"
	"gatehouse/internal/visitor/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/requestcontext"
)

// RegisterParams carries the registration inputs after boundary decoding.
type RegisterParams struct {
	Profile           models.Profile
	Relationship      string
	VisitedPersonID   id.DetaineeID
	VisitedPersonName string
}

// Register creates a visitor record: window closed, clean, pending approval.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.VisitorRecord, error) {
	now := requestcontext.Now(ctx)

	record, err := models.NewVisitorRecord(
		id.NewVisitorID(),
		params.Profile,
		params.Relationship,
		params.VisitedPersonID,
		params.VisitedPersonName,
		now,
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid registration")
	}

	if err := s.store.Create(ctx, record); err != nil {
		return nil, translateStoreErr(err, record.ID, "register visitor")
	}

	s.logger.InfoContext(ctx, "visitor registered",
		"visitor_id", record.ID,
		"visited_person_id", record.VisitedPersonID,
	)
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		VisitorID: record.ID.String(),
		Action:    audit.ActionVisitorRegistered,
		Detail:    "visiting " + params.VisitedPersonName,
		RequestID: requestcontext.RequestID(ctx),
	})
	return record, nil
}

// Get retrieves one visitor record.
func (s *Service) Get(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error) {
	if visitorID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "visitor ID is required")
	}
	record, err := s.store.FindByID(ctx, visitorID)
	if err != nil {
		return nil, translateStoreErr(err, visitorID, "get visitor")
	}
	return record, nil
}

// SetStatus records an approval decision for the visit authorization.
func (s *Service) SetStatus(ctx context.Context, visitorID id.VisitorID, status models.ApprovalStatus) (*models.VisitorRecord, error) {
	if visitorID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "visitor ID is required")
	}
	if !status.Valid() {
		return nil, dErrors.New(dErrors.CodeValidation, "status must be pending, approved, or rejected")
	}

	now := requestcontext.Now(ctx)
	record, err := s.store.Execute(ctx, visitorID,
		func(*models.VisitorRecord) error { return nil },
		func(r *models.VisitorRecord) { r.ApplyStatus(status, now) },
	)
	if err != nil {
		return nil, translateStoreErr(err, visitorID, "set visitor status")
	}

	s.logger.InfoContext(ctx, "visitor status changed",
		"visitor_id", visitorID,
		"status", status,
	)
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		VisitorID: visitorID.String(),
		Action:    audit.ActionStatusChanged,
		Detail:    string(status),
		RequestID: requestcontext.RequestID(ctx),
	})
	return record, nil
}
