package service

import (
	"go.uber.org/mock/gomock"

	"gatehouse/internal/audit"
	"gatehouse/internal/visitor/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestRegister() {
	s.Run("registers clean, pending, window closed", func() {
		s.mockStore.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil)

		got, err := s.service.Register(s.ctx(), RegisterParams{
			Profile:           models.Profile{Name: "Maria Santos", Sex: "F"},
			Relationship:      "sister",
			VisitedPersonID:   id.NewDetaineeID(),
			VisitedPersonName: "Jose Santos",
		})
		s.Require().NoError(err)
		s.False(got.ID.IsZero())
		s.Equal(models.WindowNotCheckedIn, got.Window)
		s.Equal(models.StatusPending, got.Status)
		s.Equal(models.Clean, got.Classify())
		s.False(got.HasVisitActivity())
		s.Contains(s.auditActions(got.ID), audit.ActionVisitorRegistered)
	})

	s.Run("empty name is a validation error", func() {
		_, err := s.service.Register(s.ctx(), RegisterParams{
			Profile:         models.Profile{},
			VisitedPersonID: id.NewDetaineeID(),
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("missing visited person is a validation error", func() {
		_, err := s.service.Register(s.ctx(), RegisterParams{
			Profile: models.Profile{Name: "Maria Santos"},
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("duplicate id maps to conflict", func() {
		s.mockStore.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(sentinel.ErrConflict)

		_, err := s.service.Register(s.ctx(), RegisterParams{
			Profile:         models.Profile{Name: "Maria Santos"},
			VisitedPersonID: id.NewDetaineeID(),
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *ServiceSuite) TestGet() {
	s.Run("returns the record", func() {
		record := s.newRecord()
		s.mockStore.EXPECT().
			FindByID(gomock.Any(), record.ID).
			Return(record, nil)

		got, err := s.service.Get(s.ctx(), record.ID)
		s.Require().NoError(err)
		s.Equal(record.ID, got.ID)
	})

	s.Run("missing record maps to not found", func() {
		visitorID := id.NewVisitorID()
		s.mockStore.EXPECT().
			FindByID(gomock.Any(), visitorID).
			Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Get(s.ctx(), visitorID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("zero id is rejected", func() {
		_, err := s.service.Get(s.ctx(), id.VisitorID{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestSetStatus() {
	s.Run("records the approval decision", func() {
		record := s.newRecord()
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		got, err := s.service.SetStatus(s.ctx(), record.ID, models.StatusApproved)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, got.Status)
		s.Contains(s.auditActions(record.ID), audit.ActionStatusChanged)
	})

	s.Run("unknown status is rejected", func() {
		record := s.newRecord()
		_, err := s.service.SetStatus(s.ctx(), record.ID, models.ApprovalStatus("maybe"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
