// Package analyser implements the static schedulability analysis side of the
// hierarchical scheduling system: per-component RM/EDF demand-vs-supply
// sweeps and the core-level utilisation admission test.
package analyser

import (
	"log/slog"
	"math"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/bdr"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/dbf"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// ComponentResult is the outcome of analysing one terminal component's task
// set: an overall verdict plus a per-task schedulability vector.
type ComponentResult struct {
	ComponentID   hssmodel.ComponentID
	Schedulable   bool
	TaskResults   map[hssmodel.TaskID]bool
	Analysed      bool // false when skipped due to core admission failure
}

// CoreResult aggregates the admission test and every component's result for
// one core.
type CoreResult struct {
	CoreID      hssmodel.CoreID
	Admitted    bool
	Components  map[hssmodel.ComponentID]ComponentResult
}

// Report is the full analysis output across every core in a topology.
type Report struct {
	Cores map[hssmodel.CoreID]CoreResult
}

// Component runs the RM or EDF schedulability sweep for one terminal
// component's task set against its BDR interface's supply-bound function.
// A component with no interface (P<=0, bdr.Derive's ok==false) is treated as
// having zero supply and is unschedulable for any non-empty task set.
func Component(scheduler hssmodel.Scheduler, iface hssmodel.Interface, hasIface bool, tasks []hssmodel.Task) ComponentResult {
	result := ComponentResult{TaskResults: make(map[hssmodel.TaskID]bool), Analysed: true}

	sbf := bdr.SupplyBoundZero
	if hasIface {
		bdrIface := bdr.Interface{Alpha: iface.Alpha, Delta: iface.Delta}
		sbf = func(t float64) float64 { return bdr.SupplyBound(bdrIface, t) }
	}

	switch scheduler {
	case hssmodel.RM:
		return componentRM(sbf, tasks, result)
	case hssmodel.EDF:
		return componentEDF(sbf, tasks, result)
	default:
		result.Schedulable = false
		return result
	}
}

func componentRM(sbf func(float64) float64, tasks []hssmodel.Task, result ComponentResult) ComponentResult {
	sorted := dbf.SortByPriorityRM(tasks)
	allSchedulable := true

	for _, task := range sorted {
		schedulable := false
		for t := 0.0; t <= task.Period; t += 1.0 {
			demand := dbf.RM(sorted, task, t)
			if demand <= sbf(t)+bdr.EPSILON {
				schedulable = true
				break
			}
		}
		result.TaskResults[task.ID] = schedulable
		if !schedulable {
			allSchedulable = false
		}
	}
	result.Schedulable = allSchedulable
	return result
}

func componentEDF(sbf func(float64) float64, tasks []hssmodel.Task, result ComponentResult) ComponentResult {
	if len(tasks) == 0 {
		result.Schedulable = true
		return result
	}

	periods := make([]float64, len(tasks))
	for i, tk := range tasks {
		periods[i] = tk.Period
	}
	hyper := dbf.Hyperperiod(periods)

	schedulable := true
	for t := 0.0; t <= hyper; t += 1.0 {
		demand := dbf.EDF(tasks, t)
		if demand > sbf(t)+bdr.EPSILON {
			schedulable = false
			break
		}
	}

	result.Schedulable = schedulable
	for _, tk := range tasks {
		// EDF is a whole-set test, so every task shares the set-level verdict.
		result.TaskResults[tk.ID] = schedulable
	}
	return result
}

// ChildLoad is a direct child component's (Budget, Period) treated as a
// periodic task of the parent core for the utilisation test.
type ChildLoad struct {
	ComponentID hssmodel.ComponentID
	Budget      float64
	Period      float64
}

// CoreAdmission applies the simple utilisation bound: Liu&Layland for RM,
// <=1.0 for EDF, over a core's direct child components.
func CoreAdmission(scheduler hssmodel.Scheduler, children []ChildLoad) bool {
	if len(children) == 0 {
		return true
	}

	var utilisation float64
	for _, c := range children {
		if c.Period <= bdr.EPSILON {
			return false
		}
		utilisation += c.Budget / c.Period
	}

	switch scheduler {
	case hssmodel.RM:
		n := float64(len(children))
		bound := n * (math.Pow(2, 1/n) - 1)
		return utilisation <= bound+bdr.EPSILON
	case hssmodel.EDF:
		return utilisation <= 1.0+bdr.EPSILON
	default:
		return false
	}
}

// Topology analyses every core in t, skipping component analysis entirely
// for any core that fails admission: none of its components are further
// analysed, and all are reported unschedulable.
func Topology(t *hssmodel.Topology, logger *slog.Logger) *Report {
	if logger == nil {
		logger = slog.Default()
	}
	report := &Report{Cores: make(map[hssmodel.CoreID]CoreResult)}

	for coreID, core := range t.Cores {
		root := t.Component(core.RootID)
		if root == nil {
			logger.Error("analyser: core has no root component", "core", coreID)
			continue
		}

		children := make([]ChildLoad, 0, len(root.ChildComponents))
		for _, cid := range root.ChildComponents {
			c := t.Component(cid)
			children = append(children, ChildLoad{ComponentID: cid, Budget: c.Budget, Period: c.Period})
		}

		admitted := CoreAdmission(core.Scheduler, children)
		result := CoreResult{CoreID: coreID, Admitted: admitted, Components: make(map[hssmodel.ComponentID]ComponentResult)}

		if admitted {
			walkComponents(t, core.RootID, result.Components)
		} else {
			markUnschedulable(t, core.RootID, result.Components)
		}

		report.Cores[coreID] = result
	}

	return report
}

func walkComponents(t *hssmodel.Topology, id hssmodel.ComponentID, out map[hssmodel.ComponentID]ComponentResult) {
	c := t.Component(id)
	if c == nil {
		return
	}
	if c.Kind == hssmodel.Terminal {
		var iface hssmodel.Interface
		hasIface := c.Iface != nil
		if hasIface {
			iface = *c.Iface
		}
		result := Component(c.Scheduler, iface, hasIface, t.ChildTasksOf(id))
		result.ComponentID = id
		out[id] = result
		return
	}
	for _, childID := range c.ChildComponents {
		walkComponents(t, childID, out)
	}
}

func markUnschedulable(t *hssmodel.Topology, id hssmodel.ComponentID, out map[hssmodel.ComponentID]ComponentResult) {
	c := t.Component(id)
	if c == nil {
		return
	}
	if c.Kind == hssmodel.Terminal {
		result := ComponentResult{ComponentID: id, Schedulable: false, TaskResults: make(map[hssmodel.TaskID]bool), Analysed: false}
		for _, tid := range c.ChildTasks {
			result.TaskResults[tid] = false
		}
		out[id] = result
		return
	}
	for _, childID := range c.ChildComponents {
		markUnschedulable(t, childID, out)
	}
}
