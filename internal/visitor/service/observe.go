package service

import (
	"errors"
	"time"

	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/sentinel"
)

// Metrics helpers. The metrics struct is optional; unit tests construct the
// service without one.

func (s *Service) observeTransition(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveTransition(start)
	}
}

func (s *Service) observeList(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveList(start)
	}
}

func (s *Service) incCheckIns() {
	if s.metrics != nil {
		s.metrics.CheckIns.Inc()
	}
}

func (s *Service) incCheckOuts() {
	if s.metrics != nil {
		s.metrics.CheckOuts.Inc()
	}
}

func (s *Service) incResets() {
	if s.metrics != nil {
		s.metrics.Resets.Inc()
	}
}

func (s *Service) incViolationsRecorded() {
	if s.metrics != nil {
		s.metrics.ViolationsRecorded.Inc()
	}
}

func (s *Service) incBansApplied() {
	if s.metrics != nil {
		s.metrics.BansApplied.Inc()
	}
}

func (s *Service) incComplianceCleared() {
	if s.metrics != nil {
		s.metrics.ComplianceCleared.Inc()
	}
}

func translateListErr(err error) error {
	if errors.Is(err, sentinel.ErrUnavailable) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "list visitors failed: store unavailable")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "list visitors failed")
}
