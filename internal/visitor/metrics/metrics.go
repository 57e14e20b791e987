package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the visitor module.
// Tracks lifecycle transitions, compliance actions, and critical path durations.
type Metrics struct {
	CheckIns           prometheus.Counter
	CheckOuts          prometheus.Counter
	Resets             prometheus.Counter
	ViolationsRecorded prometheus.Counter
	BansApplied        prometheus.Counter
	ComplianceCleared  prometheus.Counter

	TransitionDuration prometheus.Histogram
	ListDuration       prometheus.Histogram
}

// New creates a new Metrics instance with all visitor module metrics registered.
func New() *Metrics {
	return &Metrics{
		CheckIns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_check_ins_total",
			Help: "Total number of visitor check-ins",
		}),
		CheckOuts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_check_outs_total",
			Help: "Total number of visitor check-outs",
		}),
		Resets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_window_resets_total",
			Help: "Total number of visit window resets",
		}),
		ViolationsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_violations_recorded_total",
			Help: "Total number of violations recorded",
		}),
		BansApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_bans_applied_total",
			Help: "Total number of bans applied",
		}),
		ComplianceCleared: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_compliance_cleared_total",
			Help: "Total number of violation/ban annotations cleared",
		}),
		TransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatehouse_transition_duration_seconds",
			Help:    "Duration of visitor state transitions (dashboard critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ListDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatehouse_list_duration_seconds",
			Help:    "Duration of derived view computations over the full record set",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveTransition records the duration of a state transition.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveTransition(start time.Time) {
	m.TransitionDuration.Observe(time.Since(start).Seconds())
}

// ObserveList records the duration of a derived view computation.
func (m *Metrics) ObserveList(start time.Time) {
	m.ListDuration.Observe(time.Since(start).Seconds())
}
