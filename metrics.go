package animalform

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes recorded in the outcome label.
const (
	OutcomeCreated    = "created"
	OutcomeEmptyField = "empty_field"
	OutcomeInvalid    = "invalid"
)

// Metrics counts form activity. A nil *Metrics records nothing.
type Metrics struct {
	submissions *prometheus.CounterVec
	inputs      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "animalform",
			Name:      "submissions_total",
			Help:      "Form submissions by outcome.",
		}, []string{"outcome"}),
		inputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "animalform",
			Name:      "input_events_total",
			Help:      "Controlled input updates by field.",
		}, []string{"field"}),
	}
	if reg != nil {
		reg.MustRegister(m.submissions, m.inputs)
	}
	return m
}

func (m *Metrics) observeSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeInput(field Field) {
	if m == nil {
		return
	}
	m.inputs.WithLabelValues(string(field)).Inc()
}

// outcomeOf maps a Submit error to its outcome label.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeCreated
	case IsEmptyField(err):
		return OutcomeEmptyField
	default:
		return OutcomeInvalid
	}
}
