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

// CheckIn opens the visit window. Legal only from the not-checked-in state;
// the window state is validated and mutated under the store's per-key lock.
func (s *Service) CheckIn(ctx context.Context, visitorID id.VisitorID) (record *models.VisitorRecord, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCheckIn,
		tracer.String(tracer.AttrVisitorID, visitorID.String()))
	defer func() { span.End(err) }()
	defer s.observeTransition(time.Now())

	if visitorID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "visitor ID is required")
	}

	now := requestcontext.Now(ctx)
	record, err = s.store.Execute(ctx, visitorID,
		func(r *models.VisitorRecord) error { return r.CanCheckIn() },
		func(r *models.VisitorRecord) { r.ApplyCheckIn(now) },
	)
	if err != nil {
		err = translateStoreErr(err, visitorID, "check in")
		return nil, err
	}
	span.SetAttributes(tracer.String(tracer.AttrWindowState, string(record.Window)))

	s.incCheckIns()
	s.logger.InfoContext(ctx, "visitor checked in",
		"visitor_id", visitorID,
		"time_in", record.TimeIn,
	)
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		VisitorID: visitorID.String(),
		Action:    audit.ActionCheckIn,
		Detail:    "time in " + record.TimeIn,
		RequestID: requestcontext.RequestID(ctx),
	})
	return record, nil
}

// CheckOut closes the visit window and promotes the visit date to the
// durable last-visit marker. Legal only from the checked-in state.
func (s *Service) CheckOut(ctx context.Context, visitorID id.VisitorID) (record *models.VisitorRecord, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCheckOut,
		tracer.String(tracer.AttrVisitorID, visitorID.String()))
	defer func() { span.End(err) }()
	defer s.observeTransition(time.Now())

	if visitorID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "visitor ID is required")
	}

	now := requestcontext.Now(ctx)
	record, err = s.store.Execute(ctx, visitorID,
		func(r *models.VisitorRecord) error { return r.CanCheckOut() },
		func(r *models.VisitorRecord) { r.ApplyCheckOut(now) },
	)
	if err != nil {
		err = translateStoreErr(err, visitorID, "check out")
		return nil, err
	}
	span.SetAttributes(tracer.String(tracer.AttrWindowState, string(record.Window)))

	s.incCheckOuts()
	duration := "invalid"
	if d, derr := record.VisitDuration(); derr == nil {
		duration = d.String()
	}
	s.logger.InfoContext(ctx, "visitor checked out",
		"visitor_id", visitorID,
		"time_out", record.TimeOut,
		"duration", duration,
	)
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		VisitorID: visitorID.String(),
		Action:    audit.ActionCheckOut,
		Detail:    "time out " + record.TimeOut,
		RequestID: requestcontext.RequestID(ctx),
	})
	return record, nil
}

// ResetTimeRecords clears the current visit window so the visitor can be
// checked in again. Idempotent: resetting an already-closed window succeeds.
// The last-visit date and compliance annotations survive the reset.
func (s *Service) ResetTimeRecords(ctx context.Context, visitorID id.VisitorID) (record *models.VisitorRecord, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanReset,
		tracer.String(tracer.AttrVisitorID, visitorID.String()))
	defer func() { span.End(err) }()
	defer s.observeTransition(time.Now())

	if visitorID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "visitor ID is required")
	}

	now := requestcontext.Now(ctx)
	record, err = s.store.Execute(ctx, visitorID,
		func(*models.VisitorRecord) error { return nil },
		func(r *models.VisitorRecord) { r.ApplyReset(now) },
	)
	if err != nil {
		err = translateStoreErr(err, visitorID, "reset time records")
		return nil, err
	}

	s.incResets()
	s.logger.InfoContext(ctx, "visit window reset", "visitor_id", visitorID)
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		VisitorID: visitorID.String(),
		Action:    audit.ActionWindowReset,
		RequestID: requestcontext.RequestID(ctx),
	})
	return record, nil
}
