package service

import (
	"context"
	"time"

	"gatehouse/internal/audit"
	"gatehouse/internal/visitor/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/tracer"
	"gatehouse/pkg/requestcontext"
)

// RecordViolation overwrites the visitor's compliance annotation with a
// violation. Recording a non-ban violation on a banned visitor downgrades
// the ban; the override is allowed but logged. The visit window is untouched.
func (s *Service) RecordViolation(ctx context.Context, visitorID id.VisitorID, violationType, details string) (record *models.VisitorRecord, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanRecordViolation,
		tracer.String(tracer.AttrVisitorID, visitorID.String()))
	defer func() { span.End(err) }()
	defer s.observeTransition(time.Now())

	if visitorID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "visitor ID is required")
	}
	if violationType == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "violation type cannot be empty")
	}
	if details == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "violation details cannot be empty")
	}

	now := requestcontext.Now(ctx)
	var wasBanned bool
	record, err = s.store.Execute(ctx, visitorID,
		func(r *models.VisitorRecord) error {
			wasBanned = r.IsBanned()
			return nil
		},
		func(r *models.VisitorRecord) { r.ApplyViolation(violationType, details, now) },
	)
	if err != nil {
		err = translateStoreErr(err, visitorID, "record violation")
		return nil, err
	}
	span.SetAttributes(tracer.String(tracer.AttrClassification, string(record.Classify())))

	if wasBanned && !models.IsBanValue(violationType) {
		s.logger.WarnContext(ctx, "ban downgraded to violation",
			"visitor_id", visitorID,
			"violation_type", violationType,
		)
	}

	s.incViolationsRecorded()
	s.logger.InfoContext(ctx, "violation recorded",
		"visitor_id", visitorID,
		"violation_type", violationType,
	)
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		VisitorID: visitorID.String(),
		Action:    audit.ActionViolationRecorded,
		Detail:    violationType,
		RequestID: requestcontext.RequestID(ctx),
	})
	return record, nil
}

// ClearViolation clears the compliance annotation back to clean.
func (s *Service) ClearViolation(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error) {
	return s.clearAnnotation(ctx, visitorID, tracer.SpanClearViolation, audit.ActionViolationCleared)
}

// Ban annotates the visitor as banned for the given duration and reason.
// Banning is a compliance action only; an open visit window stays open.
func (s *Service) Ban(ctx context.Context, visitorID id.VisitorID, duration, reason string) (record *models.VisitorRecord, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanBan,
		tracer.String(tracer.AttrVisitorID, visitorID.String()))
	defer func() { span.End(err) }()
	defer s.observeTransition(time.Now())

	if visitorID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "visitor ID is required")
	}
	if duration == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "ban duration cannot be empty")
	}
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "ban reason cannot be empty")
	}

	now := requestcontext.Now(ctx)
	record, err = s.store.Execute(ctx, visitorID,
		func(*models.VisitorRecord) error { return nil },
		func(r *models.VisitorRecord) { r.ApplyBan(duration, reason, now) },
	)
	if err != nil {
		err = translateStoreErr(err, visitorID, "ban visitor")
		return nil, err
	}
	span.SetAttributes(tracer.String(tracer.AttrClassification, string(record.Classify())))

	s.incBansApplied()
	s.logger.InfoContext(ctx, "visitor banned",
		"visitor_id", visitorID,
		"duration", duration,
	)
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		VisitorID: visitorID.String(),
		Action:    audit.ActionBanApplied,
		Detail:    record.ViolationDetails,
		RequestID: requestcontext.RequestID(ctx),
	})
	return record, nil
}

// ClearBan lifts a ban. Implemented as the same annotation clear as
// ClearViolation; only the audit trail distinguishes the two.
func (s *Service) ClearBan(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error) {
	return s.clearAnnotation(ctx, visitorID, tracer.SpanClearBan, audit.ActionBanCleared)
}

func (s *Service) clearAnnotation(ctx context.Context, visitorID id.VisitorID, spanName string, action audit.Action) (record *models.VisitorRecord, err error) {
	ctx, span := s.tracer.Start(ctx, spanName,
		tracer.String(tracer.AttrVisitorID, visitorID.String()))
	defer func() { span.End(err) }()
	defer s.observeTransition(time.Now())

	if visitorID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "visitor ID is required")
	}

	now := requestcontext.Now(ctx)
	record, err = s.store.Execute(ctx, visitorID,
		func(*models.VisitorRecord) error { return nil },
		func(r *models.VisitorRecord) { r.ApplyClearViolation(now) },
	)
	if err != nil {
		err = translateStoreErr(err, visitorID, "clear compliance annotation")
		return nil, err
	}

	s.incComplianceCleared()
	s.logger.InfoContext(ctx, "compliance annotation cleared",
		"visitor_id", visitorID,
		"action", action,
	)
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		VisitorID: visitorID.String(),
		Action:    action,
		RequestID: requestcontext.RequestID(ctx),
	})
	return record, nil
}
