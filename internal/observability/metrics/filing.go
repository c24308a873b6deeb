package metrics

import "github.com/prometheus/client_golang/prometheus"

// FilingInstruments counts filing outcomes. Both services embed it so
// uploads filed by the API and re-filings done by the hint worker land
// in the same metric families, distinguished by the service label.
type FilingInstruments struct {
	service string

	filingsTotal             *prometheus.CounterVec
	classificationFallbacks  *prometheus.CounterVec
	sequenceCollisionRetries *prometheus.CounterVec
}

func newFilingInstruments(registry *prometheus.Registry, service string) *FilingInstruments {
	filingsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asm",
			Subsystem: "filing",
			Name:      "filings_total",
			Help:      "Total documents filed by entry point and category.",
		},
		[]string{"service", "entry", "category"},
	)
	classificationFallbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asm",
			Subsystem: "filing",
			Name:      "classification_fallback_total",
			Help:      "Total classification hints that fell back to the general location.",
		},
		[]string{"service"},
	)
	sequenceCollisionRetries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asm",
			Subsystem: "filing",
			Name:      "sequence_collision_retries_total",
			Help:      "Total display-name collisions resolved by re-resolving against a fresh snapshot.",
		},
		[]string{"service"},
	)

	registry.MustRegister(filingsTotal, classificationFallbacks, sequenceCollisionRetries)

	return &FilingInstruments{
		service:                  service,
		filingsTotal:             filingsTotal,
		classificationFallbacks:  classificationFallbacks,
		sequenceCollisionRetries: sequenceCollisionRetries,
	}
}

func (m *FilingInstruments) FilingResolved(entry, category string) {
	if category == "" {
		category = "unknown"
	}
	m.filingsTotal.WithLabelValues(m.service, entry, category).Inc()
}

func (m *FilingInstruments) ClassificationFallback() {
	m.classificationFallbacks.WithLabelValues(m.service).Inc()
}

func (m *FilingInstruments) SequenceCollisionRetry() {
	m.sequenceCollisionRetries.WithLabelValues(m.service).Inc()
}
