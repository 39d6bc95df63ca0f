package stats

import "github.com/prometheus/client_golang/prometheus"

// Metrics is a small set of run-level gauges/counters registered against a
// caller-supplied registry, backed by real prometheus.Counter/Gauge values.
// End-of-run reporting has no hot-path contention to justify hand-rolled
// atomics.
type Metrics struct {
	DeadlinesMet      prometheus.Counter
	DeadlinesMissed   prometheus.Counter
	TaskCompletions   prometheus.Counter
	ComponentsFailing prometheus.Gauge
}

// NewMetrics registers a fresh Metrics set on reg. Callers typically supply a
// prometheus.NewRegistry() per simulation run, or the default registry for a
// long-lived process running many simulations.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DeadlinesMet: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hss_deadlines_met_total",
			Help: "Total task job completions that met their deadline.",
		}),
		DeadlinesMissed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hss_deadlines_missed_total",
			Help: "Total task arrivals that overran the previous job's deadline.",
		}),
		TaskCompletions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hss_task_completions_total",
			Help: "Total TaskCompletion events dispatched by the simulator.",
		}),
		ComponentsFailing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hss_components_unschedulable",
			Help: "Number of components whose tasks missed at least one deadline in the last report.",
		}),
	}
	reg.MustRegister(m.DeadlinesMet, m.DeadlinesMissed, m.TaskCompletions, m.ComponentsFailing)
	return m
}

// Observe updates m from a finished Report.
func (m *Metrics) Observe(report *Report) {
	failing := 0
	for _, t := range report.Tasks {
		m.DeadlinesMet.Add(float64(t.DeadlinesMet))
		m.DeadlinesMissed.Add(float64(t.DeadlinesMissed))
		m.TaskCompletions.Add(float64(t.DeadlinesMet))
	}
	for _, c := range report.Components {
		if !c.ComponentSchedulable {
			failing++
		}
	}
	m.ComponentsFailing.Set(float64(failing))
}
