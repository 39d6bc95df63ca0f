// Package stats derives the per-task and per-component statistics emitted by
// a finished simulation run and optionally exports them as Prometheus
// metrics.
package stats

import (
	"sort"

	"github.com/google/uuid"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/analyser"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/simulator"
)

// TaskStat is the per-task output row of a finished run.
type TaskStat struct {
	TaskName    string
	ComponentID hssmodel.ComponentID
	CoreID      hssmodel.CoreID

	TaskSchedulable bool
	AvgResponseTime float64
	MaxResponseTime float64
	DeadlinesMet    int
	DeadlinesMissed int
}

// ComponentStat reports whether every task of a component was schedulable
// over the run.
type ComponentStat struct {
	ComponentID          hssmodel.ComponentID
	ComponentSchedulable bool
}

// Report is the full per-run output: one TaskStat per task, one
// ComponentStat per terminal component, stamped with a RunID that is
// intentionally excluded from any equality comparison: two runs over
// identical input must produce identical TaskStats/ComponentStats even
// though their RunIDs differ.
type Report struct {
	RunID      uuid.UUID
	CoreID     hssmodel.CoreID
	Tasks      []TaskStat
	Components []ComponentStat
}

// BuildReport derives a Report from a finished Simulation, using topology to
// resolve task names and component groupings.
func BuildReport(topology *hssmodel.Topology, sim *simulator.Simulation) *Report {
	report := &Report{RunID: uuid.New(), CoreID: sim.CoreID}

	componentSchedulable := make(map[hssmodel.ComponentID]bool)
	componentSeen := make(map[hssmodel.ComponentID]bool)

	for taskID, exec := range sim.Execs() {
		task := topology.Task(taskID)
		schedulable := exec.Schedulable && exec.DeadlinesMissed == 0

		var avg, max float64
		if n := len(exec.ResponseTimes); n > 0 {
			var sum float64
			for _, rt := range exec.ResponseTimes {
				sum += rt
				if rt > max {
					max = rt
				}
			}
			avg = sum / float64(n)
		}

		report.Tasks = append(report.Tasks, TaskStat{
			TaskName:        task.Name,
			ComponentID:     task.ComponentID,
			CoreID:          sim.CoreID,
			TaskSchedulable: schedulable,
			AvgResponseTime: avg,
			MaxResponseTime: max,
			DeadlinesMet:    exec.DeadlinesMet,
			DeadlinesMissed: exec.DeadlinesMissed,
		})

		if !componentSeen[task.ComponentID] {
			componentSchedulable[task.ComponentID] = true
			componentSeen[task.ComponentID] = true
		}
		if !schedulable {
			componentSchedulable[task.ComponentID] = false
		}
	}

	for componentID, ok := range componentSchedulable {
		report.Components = append(report.Components, ComponentStat{ComponentID: componentID, ComponentSchedulable: ok})
	}

	// Map iteration order is random; sort so that two runs over identical
	// input produce byte-for-byte comparable reports.
	sort.Slice(report.Tasks, func(i, j int) bool {
		if report.Tasks[i].TaskName != report.Tasks[j].TaskName {
			return report.Tasks[i].TaskName < report.Tasks[j].TaskName
		}
		return report.Tasks[i].ComponentID < report.Tasks[j].ComponentID
	})
	sort.Slice(report.Components, func(i, j int) bool {
		return report.Components[i].ComponentID < report.Components[j].ComponentID
	})

	return report
}

// AnalysisTaskResults flattens an analyser.Report's per-component task
// vectors into the same shape the simulator side reports, for callers that
// want a single combined view of static-analysis vs. simulated outcomes.
func AnalysisTaskResults(report *analyser.Report, coreID hssmodel.CoreID) map[hssmodel.TaskID]bool {
	out := make(map[hssmodel.TaskID]bool)
	core, ok := report.Cores[coreID]
	if !ok {
		return out
	}
	for _, comp := range core.Components {
		for taskID, schedulable := range comp.TaskResults {
			out[taskID] = schedulable
		}
	}
	return out
}
