package service

import (
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"gatehouse/internal/visitor/models"
	"gatehouse/internal/visitor/views"
	dErrors "gatehouse/pkg/domain-errors"
)

func (s *ServiceSuite) seedVisitSet() []*models.VisitorRecord {
	clean := s.newRecord()
	clean.ApplyCheckIn(s.now)
	clean.ApplyCheckOut(s.now.Add(45 * time.Minute))

	violator := s.newRecord()
	violator.ApplyCheckIn(s.now)
	violator.ApplyViolation(models.ViolationContraband, "found contraband", s.now)

	banned := s.newRecord()
	banned.ApplyCheckIn(s.now)
	banned.ApplyCheckOut(s.now.Add(10*time.Minute))
	banned.ApplyBan("permanent", "assault", s.now)

	registeredOnly := s.newRecord()

	return []*models.VisitorRecord{clean, violator, banned, registeredOnly}
}

func (s *ServiceSuite) TestListAll() {
	s.Run("excludes records without visit activity", func() {
		records := s.seedVisitSet()
		s.mockStore.EXPECT().List(gomock.Any()).Return(records, nil)

		got, err := s.service.ListAll(s.ctx(), views.Filter{})
		s.Require().NoError(err)
		s.Len(got, 3)
		for _, r := range got {
			s.True(r.HasVisitActivity())
		}
	})

	s.Run("store failure maps to internal", func() {
		s.mockStore.EXPECT().List(gomock.Any()).Return(nil, assert.AnError)

		_, err := s.service.ListAll(s.ctx(), views.Filter{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestClassViews() {
	s.Run("violators and banned partition the active set", func() {
		records := s.seedVisitSet()
		s.mockStore.EXPECT().List(gomock.Any()).Return(records, nil).Times(2)

		violators, err := s.service.ListViolators(s.ctx())
		s.Require().NoError(err)
		s.Len(violators, 1)
		s.Equal(models.Violator, violators[0].Classify())

		banned, err := s.service.ListBanned(s.ctx())
		s.Require().NoError(err)
		s.Len(banned, 1)
		s.Equal(models.Banned, banned[0].Classify())
	})
}

func (s *ServiceSuite) TestSummaryStats() {
	s.Run("aggregates the filtered view", func() {
		records := s.seedVisitSet()
		s.mockStore.EXPECT().List(gomock.Any()).Return(records, nil)

		summary, err := s.service.SummaryStats(s.ctx(), views.Filter{})
		s.Require().NoError(err)
		s.Equal(3, summary.Total)
		s.Equal(1, summary.Violators)
		s.Equal(1, summary.Banned)
		s.Equal(3, summary.DistinctVisited)
		s.Equal(3, summary.BySex["F"])
	})
}

func (s *ServiceSuite) TestListRegistered() {
	s.Run("includes records without visit activity", func() {
		records := s.seedVisitSet()
		s.mockStore.EXPECT().List(gomock.Any()).Return(records, nil)

		got, err := s.service.ListRegistered(s.ctx())
		s.Require().NoError(err)
		s.Len(got, 4)
	})
}
