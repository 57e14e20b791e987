package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/visitor/models"
	id "gatehouse/pkg/domain"
)

func day(yearDay int) time.Time {
	return time.Date(2025, 6, yearDay, 0, 0, 0, 0, time.UTC)
}

func record(t *testing.T, name string, opts ...func(*models.VisitorRecord)) *models.VisitorRecord {
	t.Helper()
	r, err := models.NewVisitorRecord(
		id.NewVisitorID(),
		models.Profile{Name: name, Sex: "F"},
		"sister",
		id.NewDetaineeID(),
		"Jose Santos",
		day(1),
	)
	require.NoError(t, err)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func visited(on time.Time) func(*models.VisitorRecord) {
	return func(r *models.VisitorRecord) {
		r.ApplyCheckIn(on.Add(9 * time.Hour))
		r.ApplyCheckOut(on.Add(10 * time.Hour))
	}
}

func TestAllVisitsActivityGate(t *testing.T) {
	inFlow := record(t, "Active", func(r *models.VisitorRecord) {
		r.ApplyCheckIn(day(10).Add(9 * time.Hour))
	})
	done := record(t, "Done", visited(day(11)))
	idle := record(t, "Registered Only")

	got := AllVisits([]*models.VisitorRecord{inFlow, done, idle}, Filter{})
	require.Len(t, got, 2)
	for _, r := range got {
		assert.True(t, r.HasVisitActivity())
	}
}

func TestAllVisitsDateRange(t *testing.T) {
	early := record(t, "Early", visited(day(5)))
	mid := record(t, "Mid", visited(day(15)))
	late := record(t, "Late", visited(day(25)))
	open := record(t, "Open Window", func(r *models.VisitorRecord) {
		r.ApplyCheckIn(day(15).Add(9 * time.Hour))
	})
	all := []*models.VisitorRecord{early, mid, late, open}

	t.Run("no range passes everything", func(t *testing.T) {
		assert.Len(t, AllVisits(all, Filter{}), 4)
	})

	t.Run("range is inclusive on last visit date", func(t *testing.T) {
		from, to := day(5), day(15)
		got := AllVisits(all, Filter{From: &from, To: &to})
		require.Len(t, got, 2)
		assert.Equal(t, "Early", got[0].Profile.Name)
		assert.Equal(t, "Mid", got[1].Profile.Name)
	})

	t.Run("open windows have no last visit date and fail any range", func(t *testing.T) {
		from := day(1)
		got := AllVisits(all, Filter{From: &from})
		assert.Len(t, got, 3)
	})

	t.Run("open-ended bounds", func(t *testing.T) {
		from := day(20)
		assert.Len(t, AllVisits(all, Filter{From: &from}), 1)
		to := day(10)
		assert.Len(t, AllVisits(all, Filter{To: &to}), 1)
	})
}

func TestAllVisitsSearch(t *testing.T) {
	maria := record(t, "Maria Santos", visited(day(10)))
	maria.VisitedPersonName = "Jose Santos"
	pedro := record(t, "Pedro Reyes", visited(day(10)))
	pedro.VisitedPersonName = "Ramon Cruz"
	pedro.Relationship = "friend"
	all := []*models.VisitorRecord{maria, pedro}

	t.Run("case-insensitive substring on name", func(t *testing.T) {
		got := AllVisits(all, Filter{Query: "maRIA", Field: FieldName})
		require.Len(t, got, 1)
		assert.Equal(t, "Maria Santos", got[0].Profile.Name)
	})

	t.Run("visited person field", func(t *testing.T) {
		got := AllVisits(all, Filter{Query: "cruz", Field: FieldVisited})
		require.Len(t, got, 1)
		assert.Equal(t, "Pedro Reyes", got[0].Profile.Name)
	})

	t.Run("relationship field", func(t *testing.T) {
		got := AllVisits(all, Filter{Query: "friend", Field: FieldRelationship})
		assert.Len(t, got, 1)
	})

	t.Run("id field", func(t *testing.T) {
		got := AllVisits(all, Filter{Query: maria.ID.String(), Field: FieldID})
		require.Len(t, got, 1)
		assert.Equal(t, maria.ID, got[0].ID)
	})

	t.Run("any field matches across all", func(t *testing.T) {
		assert.Len(t, AllVisits(all, Filter{Query: "santos"}), 1)
		assert.Len(t, AllVisits(all, Filter{Query: "ramon"}), 1)
		assert.Empty(t, AllVisits(all, Filter{Query: "nobody"}))
	})

	t.Run("search and date range are ANDed", func(t *testing.T) {
		from := day(20)
		got := AllVisits(all, Filter{Query: "maria", From: &from})
		assert.Empty(t, got)
	})
}

func TestClassPartition(t *testing.T) {
	clean := record(t, "Clean", visited(day(10)))
	violator := record(t, "Violator", visited(day(10)), func(r *models.VisitorRecord) {
		r.ApplyViolation(models.ViolationContraband, "details", day(10))
	})
	banned := record(t, "Banned", visited(day(10)), func(r *models.VisitorRecord) {
		r.ApplyBan("30 days", "reason", day(10))
	})
	idleViolator := record(t, "Idle Violator", func(r *models.VisitorRecord) {
		r.ApplyViolation(models.ViolationMajor, "details", day(10))
	})
	all := []*models.VisitorRecord{clean, violator, banned, idleViolator}

	t.Run("violators view", func(t *testing.T) {
		got := Violators(all)
		require.Len(t, got, 1)
		assert.Equal(t, "Violator", got[0].Profile.Name)
	})

	t.Run("banned view", func(t *testing.T) {
		got := Banned(all)
		require.Len(t, got, 1)
		assert.Equal(t, "Banned", got[0].Profile.Name)
	})

	t.Run("the three views partition the active set", func(t *testing.T) {
		active := AllVisits(all, Filter{})
		assert.Len(t, active, 3)
		assert.Len(t, Violators(all), 1)
		assert.Len(t, Banned(all), 1)
	})
}

func TestSummarize(t *testing.T) {
	sharedDetainee := id.NewDetaineeID()
	first := record(t, "First", visited(day(10)))
	first.VisitedPersonID = sharedDetainee
	second := record(t, "Second", visited(day(12)))
	second.VisitedPersonID = sharedDetainee
	third := record(t, "Third", visited(day(14)), func(r *models.VisitorRecord) {
		r.Profile.Sex = "M"
		r.ApplyBan("permanent", "reason", day(14))
	})
	idle := record(t, "Idle")
	all := []*models.VisitorRecord{first, second, third, idle}

	t.Run("aggregates the active set", func(t *testing.T) {
		got := Summarize(all, Filter{})
		assert.Equal(t, 3, got.Total)
		assert.Equal(t, 2, got.DistinctVisited)
		assert.Equal(t, 0, got.Violators)
		assert.Equal(t, 1, got.Banned)
		assert.Equal(t, 2, got.BySex["F"])
		assert.Equal(t, 1, got.BySex["M"])
	})

	t.Run("summary respects the filter", func(t *testing.T) {
		from, to := day(11), day(15)
		got := Summarize(all, Filter{From: &from, To: &to})
		assert.Equal(t, 2, got.Total)
		assert.Equal(t, 2, got.DistinctVisited)
		assert.Equal(t, 1, got.Banned)
	})
}
