package stats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	report := &Report{
		CoreID: "c1",
		Tasks: []TaskStat{
			{TaskName: "a", DeadlinesMet: 3, DeadlinesMissed: 1},
			{TaskName: "b", DeadlinesMet: 5, DeadlinesMissed: 0},
		},
		Components: []ComponentStat{
			{ComponentID: hssmodel.ComponentID(0), ComponentSchedulable: false},
			{ComponentID: hssmodel.ComponentID(1), ComponentSchedulable: true},
		},
	}

	m.Observe(report)

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range metricFamilies {
		for _, metric := range mf.GetMetric() {
			values[mf.GetName()] = metricValue(metric)
		}
	}

	require.Equal(t, 8.0, values["hss_deadlines_met_total"])
	require.Equal(t, 1.0, values["hss_deadlines_missed_total"])
	require.Equal(t, 8.0, values["hss_task_completions_total"])
	require.Equal(t, 1.0, values["hss_components_unschedulable"])
}

func metricValue(m *dto.Metric) float64 {
	if c := m.GetCounter(); c != nil {
		return c.GetValue()
	}
	if g := m.GetGauge(); g != nil {
		return g.GetValue()
	}
	return 0
}
