package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the person module.
// Tracks registration counts and critical path durations.
type Metrics struct {
	PersonsRegistered prometheus.Counter
	PersonsRenamed    prometheus.Counter
	FormatDuration    prometheus.Histogram
	GetPersonDuration prometheus.Histogram
}

// New creates a new Metrics instance with all person module metrics registered.
func New() *Metrics {
	return &Metrics{
		PersonsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "name_combo_persons_registered_total",
			Help: "Total number of persons registered",
		}),
		PersonsRenamed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "name_combo_persons_renamed_total",
			Help: "Total number of successful renames",
		}),
		FormatDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "name_combo_format_duration_seconds",
			Help:    "Duration of FormatPerson operations (render critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		GetPersonDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "name_combo_get_person_duration_seconds",
			Help:    "Duration of GetPerson operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementPersonsRegistered records a successful registration.
func (m *Metrics) IncrementPersonsRegistered() {
	m.PersonsRegistered.Inc()
}

// IncrementPersonsRenamed records a successful rename.
func (m *Metrics) IncrementPersonsRenamed() {
	m.PersonsRenamed.Inc()
}

// ObserveFormat records the duration of a FormatPerson operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveFormat(start time.Time) {
	m.FormatDuration.Observe(time.Since(start).Seconds())
}

// ObserveGetPerson records the duration of a GetPerson operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveGetPerson(start time.Time) {
	m.GetPersonDuration.Observe(time.Since(start).Seconds())
}
