// Package service orchestrates the visitor tracker: the time-tracking
// lifecycle, the compliance ledger, and the derived views, over an injected
// record store.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AuditPublisher

import (
	"context"
	"log/slog"

	"gatehouse/internal/audit"
	vmetrics "gatehouse/internal/visitor/metrics"
	"gatehouse/internal/visitor/models"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/tracer"
)

// Store is the slice of the visitor record store the service consumes.
// Mutations go through Execute so every transition is an atomic
// read-validate-mutate-write on the latest record.
type Store interface {
	Create(ctx context.Context, record *models.VisitorRecord) error
	FindByID(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error)
	List(ctx context.Context) ([]*models.VisitorRecord, error)
	Execute(ctx context.Context, visitorID id.VisitorID, validate func(*models.VisitorRecord) error, mutate func(*models.VisitorRecord)) (*models.VisitorRecord, error)
}

// AuditPublisher receives audit events for every mutation. Emission is
// best-effort: a failed append is logged, never surfaced to the caller.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service exposes the tracker operations to the boundary layer.
type Service struct {
	store          Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *vmetrics.Metrics
	tracer         tracer.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *vmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = tracer.NewNoop()
	}
	return s
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"action", event.Action,
			"visitor_id", event.VisitorID,
			"error", err,
		)
	}
}
