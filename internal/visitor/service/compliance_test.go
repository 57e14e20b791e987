package service

import (
	"go.uber.org/mock/gomock"

	"gatehouse/internal/audit"
	"gatehouse/internal/visitor/models"
	dErrors "gatehouse/pkg/domain-errors"
)

func (s *ServiceSuite) TestRecordViolation() {
	s.Run("annotates the record without touching the window", func() {
		record := s.newRecord()
		record.ApplyCheckIn(s.now)
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		got, err := s.service.RecordViolation(s.ctx(), record.ID, models.ViolationMinorInfraction, "raised voice at staff")
		s.Require().NoError(err)
		s.Equal(models.Violator, got.Classify())
		s.Equal(models.ViolationMinorInfraction, got.ViolationType)
		s.Equal(models.WindowCheckedIn, got.Window)
		s.Equal("2:30 PM", got.TimeIn)
		s.Contains(s.auditActions(record.ID), audit.ActionViolationRecorded)
	})

	s.Run("empty type is rejected before the store is touched", func() {
		record := s.newRecord()
		_, err := s.service.RecordViolation(s.ctx(), record.ID, "", "details")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("empty details are rejected before the store is touched", func() {
		record := s.newRecord()
		_, err := s.service.RecordViolation(s.ctx(), record.ID, models.ViolationMajor, "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("non-ban violation downgrades an existing ban", func() {
		record := s.newRecord()
		record.ApplyBan("30 days", "repeated contraband", s.now)
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		got, err := s.service.RecordViolation(s.ctx(), record.ID, models.ViolationBehavioral, "verbal altercation")
		s.Require().NoError(err)
		s.Equal(models.Violator, got.Classify())
		s.False(got.IsBanned())
	})
}

func (s *ServiceSuite) TestBan() {
	s.Run("bans with formatted details", func() {
		record := s.newRecord()
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		got, err := s.service.Ban(s.ctx(), record.ID, "30 days", "smuggling attempt")
		s.Require().NoError(err)
		s.True(got.IsBanned())
		s.Equal(models.ViolationBanned, got.ViolationType)
		s.Equal("Duration: 30 days. Reason: smuggling attempt", got.ViolationDetails)
		s.Contains(s.auditActions(record.ID), audit.ActionBanApplied)
	})

	s.Run("ban leaves an open window open", func() {
		record := s.newRecord()
		record.ApplyCheckIn(s.now)
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		got, err := s.service.Ban(s.ctx(), record.ID, "90 days", "assault")
		s.Require().NoError(err)
		s.Equal(models.WindowCheckedIn, got.Window)
		s.True(got.HasTimedIn())
	})

	s.Run("empty duration is rejected", func() {
		record := s.newRecord()
		_, err := s.service.Ban(s.ctx(), record.ID, "", "reason")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("empty reason is rejected", func() {
		record := s.newRecord()
		_, err := s.service.Ban(s.ctx(), record.ID, "30 days", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestClearAnnotations() {
	s.Run("clearing a violation returns the record to clean", func() {
		record := s.newRecord()
		record.ApplyViolation(models.ViolationMajor, "details", s.now)
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		got, err := s.service.ClearViolation(s.ctx(), record.ID)
		s.Require().NoError(err)
		s.Equal(models.Clean, got.Classify())
		s.Empty(got.ViolationType)
		s.Empty(got.ViolationDetails)
		s.Contains(s.auditActions(record.ID), audit.ActionViolationCleared)
	})

	s.Run("clearing a ban returns the record to clean", func() {
		record := s.newRecord()
		record.ApplyBan("permanent", "severe incident", s.now)
		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record))

		got, err := s.service.ClearBan(s.ctx(), record.ID)
		s.Require().NoError(err)
		s.Equal(models.Clean, got.Classify())
		s.Contains(s.auditActions(record.ID), audit.ActionBanCleared)
	})

	s.Run("ban then clear restores the pre-ban clean state", func() {
		record := s.newRecord()
		record.ApplyCheckIn(s.now)
		record.ApplyCheckOut(s.now)
		before := record.Clone()

		s.mockStore.EXPECT().
			Execute(gomock.Any(), record.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(executeOn(record)).
			Times(2)

		_, err := s.service.Ban(s.ctx(), record.ID, "30 days", "incident")
		s.Require().NoError(err)
		got, err := s.service.ClearBan(s.ctx(), record.ID)
		s.Require().NoError(err)

		s.Equal(before.Classify(), got.Classify())
		s.Equal(before.Window, got.Window)
		s.Equal(before.TimeIn, got.TimeIn)
		s.Equal(before.TimeOut, got.TimeOut)
		s.Equal(before.LastVisitDate, got.LastVisitDate)
	})
}
