package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gatehouse/internal/audit"
	"gatehouse/internal/visitor/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

func (s *ServiceSuite) TestCheckIn() {
	s.Run("opens the window and stamps time in", func() {
		record := s.newRecord()
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		got, err := s.service.CheckIn(s.ctx(), record.ID)
		s.Require().NoError(err)
		s.Equal(models.WindowCheckedIn, got.Window)
		s.Equal("2:30 PM", got.TimeIn)
		s.Require().NotNil(got.DateVisited)
		s.True(got.HasTimedIn())
		s.False(got.HasTimedOut())
		s.Contains(s.auditActions(record.ID), audit.ActionCheckIn)
	})

	s.Run("rejects a second check-in", func() {
		record := s.newRecord()
		record.ApplyCheckIn(s.now)
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		_, err := s.service.CheckIn(s.ctx(), record.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
		s.Empty(s.auditActions(record.ID))
	})

	s.Run("missing visitor maps to not found", func() {
		visitorID := id.NewVisitorID()
		s.mockStore.EXPECT().
			Execute(gomock.Any(), visitorID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(nil))

		_, err := s.service.CheckIn(s.ctx(), visitorID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("zero id is rejected before the store is touched", func() {
		_, err := s.service.CheckIn(s.ctx(), id.VisitorID{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestCheckOut() {
	s.Run("closes the window and promotes the visit date", func() {
		record := s.newRecord()
		record.ApplyCheckIn(s.now)
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		got, err := s.service.CheckOut(s.ctx(), record.ID)
		s.Require().NoError(err)
		s.Equal(models.WindowCheckedOut, got.Window)
		s.Equal("2:30 PM", got.TimeOut)
		s.Require().NotNil(got.LastVisitDate)
		s.Equal(*got.DateVisited, *got.LastVisitDate)
		s.Contains(s.auditActions(record.ID), audit.ActionCheckOut)
	})

	s.Run("rejects check-out before check-in", func() {
		record := s.newRecord()
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		_, err := s.service.CheckOut(s.ctx(), record.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
		s.Equal(models.WindowNotCheckedIn, record.Window)
	})

	s.Run("rejects a second check-out", func() {
		record := s.newRecord()
		record.ApplyCheckIn(s.now)
		record.ApplyCheckOut(s.now)
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		_, err := s.service.CheckOut(s.ctx(), record.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
	})
}

func (s *ServiceSuite) TestResetTimeRecords() {
	s.Run("clears the window but keeps last visit date and profile", func() {
		record := s.newRecord()
		record.ApplyCheckIn(s.now)
		record.ApplyCheckOut(s.now)
		lastVisit := *record.LastVisitDate
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		got, err := s.service.ResetTimeRecords(s.ctx(), record.ID)
		s.Require().NoError(err)
		s.Equal(models.WindowNotCheckedIn, got.Window)
		s.Empty(got.TimeIn)
		s.Empty(got.TimeOut)
		s.Nil(got.DateVisited)
		s.Require().NotNil(got.LastVisitDate)
		s.Equal(lastVisit, *got.LastVisitDate)
		s.Equal("Maria Santos", got.Profile.Name)
		s.Contains(s.auditActions(record.ID), audit.ActionWindowReset)
	})

	s.Run("reset is idempotent on a closed window", func() {
		record := s.newRecord()
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record)).
			Times(2)

		for range 2 {
			got, err := s.service.ResetTimeRecords(s.ctx(), record.ID)
			s.Require().NoError(err)
			s.Equal(models.WindowNotCheckedIn, got.Window)
		}
	})

	s.Run("reset keeps compliance annotations", func() {
		record := s.newRecord()
		record.ApplyCheckIn(s.now)
		record.ApplyViolation(models.ViolationContraband, "found contraband at screening", s.now)
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		got, err := s.service.ResetTimeRecords(s.ctx(), record.ID)
		s.Require().NoError(err)
		s.Equal(models.Violator, got.Classify())
	})
}

func (s *ServiceSuite) TestTrackingStoreErrorPropagation() {
	s.T().Run("store failure surfaces as internal", func(t *testing.T) {
		visitorID := id.NewVisitorID()
		s.mockStore.EXPECT().
			Execute(gomock.Any(), visitorID, gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		_, err := s.service.CheckIn(context.Background(), visitorID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
