package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Call outcomes used as the "outcome" label.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeFault   = "fault"
	OutcomeRouting = "routing"
)

// unroutedLabel replaces contract and operation labels for routing failures
// so arbitrary caller strings never become label values.
const unroutedLabel = "unknown"

type Metrics struct {
	Calls  *prometheus.CounterVec
	Resets prometheus.Counter
}

// NewMetrics registers the dispatcher metrics on reg.
// Pass a fresh prometheus.NewRegistry() per dispatcher in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Calls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chainsim_calls_total",
			Help: "Total number of contract calls by contract, operation and outcome",
		}, []string{"contract", "operation", "outcome"}),
		Resets: f.NewCounter(prometheus.CounterOpts{
			Name: "chainsim_resets_total",
			Help: "Total number of simulator resets",
		}),
	}
}

func (m *Metrics) observeCall(contract, operation, outcome string) {
	if m == nil {
		return
	}
	if outcome == OutcomeRouting {
		contract, operation = unroutedLabel, unroutedLabel
	}
	m.Calls.WithLabelValues(contract, operation, outcome).Inc()
}

func (m *Metrics) observeReset() {
	if m == nil {
		return
	}
	m.Resets.Inc()
}
