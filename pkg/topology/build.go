package topology

import (
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/bdr"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// Build validates and assembles an in-memory hssmodel.Topology from the
// three external tables: architecture rows create cores and their
// (implicit) root component, budget rows create components attached either
// to a core's root or to another component, and task rows populate terminal
// components.
func Build(arch []ArchitectureRow, budgets []BudgetRow, tasks []TaskRow) (*hssmodel.Topology, error) {
	t := hssmodel.NewTopology()

	for i, row := range arch {
		if row.SpeedFactor <= 0 {
			return nil, &ConfigError{Row: "architecture", Index: i, Message: "speed_factor must be > 0"}
		}
		scheduler, ok := hssmodel.ParseScheduler(row.Scheduler)
		if !ok {
			return nil, &ConfigError{Row: "architecture", Index: i, Message: "invalid scheduler: " + row.Scheduler}
		}
		coreID := hssmodel.CoreID(row.CoreID)
		if _, exists := t.Cores[coreID]; exists {
			return nil, &ConfigError{Row: "architecture", Index: i, Message: "duplicate core_id: " + row.CoreID}
		}

		rootID := t.AddComponent(hssmodel.Component{
			ParentID:  hssmodel.NoComponent,
			CoreID:    coreID,
			Scheduler: scheduler,
			Kind:      hssmodel.NonTerminal,
		})
		t.Cores[coreID] = &hssmodel.Core{ID: coreID, SpeedFactor: row.SpeedFactor, Scheduler: scheduler, RootID: rootID}
	}

	componentIndex := make(map[string]hssmodel.ComponentID, len(budgets))
	parentOf := make(map[string]string, len(budgets))

	for i, row := range budgets {
		if row.Budget < 0 {
			return nil, &ConfigError{Row: "budgets", Index: i, Message: "budget must be >= 0"}
		}
		if row.Period < 0 {
			return nil, &ConfigError{Row: "budgets", Index: i, Message: "period must be >= 0"}
		}
		if row.Budget > row.Period {
			return nil, &ConfigError{Row: "budgets", Index: i, Message: "budget (Q) must not exceed period (P)"}
		}
		scheduler, ok := hssmodel.ParseScheduler(row.Scheduler)
		if !ok {
			return nil, &ConfigError{Row: "budgets", Index: i, Message: "invalid scheduler: " + row.Scheduler}
		}
		coreID := hssmodel.CoreID(row.CoreID)
		if _, exists := t.Cores[coreID]; !exists {
			return nil, &ConfigError{Row: "budgets", Index: i, Message: "unknown core_id: " + row.CoreID}
		}
		if _, dup := componentIndex[row.ComponentID]; dup {
			return nil, &ConfigError{Row: "budgets", Index: i, Message: "duplicate component_id: " + row.ComponentID}
		}

		var iface *hssmodel.Interface
		if alpha, delta, ok := deriveInterface(row.Budget, row.Period); ok {
			iface = &hssmodel.Interface{Alpha: alpha, Delta: delta}
		}

		id := t.AddComponent(hssmodel.Component{
			CoreID:    coreID,
			Scheduler: scheduler,
			Kind:      hssmodel.NonTerminal,
			Budget:    row.Budget,
			Period:    row.Period,
			Priority:  row.Priority,
			Iface:     iface,
		})
		componentIndex[row.ComponentID] = id
		parentOf[row.ComponentID] = row.ParentComponentID
	}

	for i, row := range budgets {
		id := componentIndex[row.ComponentID]
		parentExternal := parentOf[row.ComponentID]

		var parentID hssmodel.ComponentID
		if parentExternal == "" {
			core := t.Cores[hssmodel.CoreID(row.CoreID)]
			parentID = core.RootID
		} else {
			pid, ok := componentIndex[parentExternal]
			if !ok {
				return nil, &ConfigError{Row: "budgets", Index: i, Message: "unknown parent component_id: " + parentExternal}
			}
			parentID = pid
		}

		t.Component(id).ParentID = parentID
		parent := t.Component(parentID)
		parent.ChildComponents = append(parent.ChildComponents, id)
	}

	for i, row := range tasks {
		if row.WCET <= 0 {
			return nil, &ConfigError{Row: "tasks", Index: i, Message: "wcet must be > 0"}
		}
		if row.Period <= 0 {
			return nil, &ConfigError{Row: "tasks", Index: i, Message: "period must be > 0"}
		}
		componentID, ok := componentIndex[row.ComponentID]
		if !ok {
			return nil, &ConfigError{Row: "tasks", Index: i, Message: "unknown component_id: " + row.ComponentID}
		}

		// WCET (and BCET, the same kind of quantity) is stored already
		// divided by the owning core's speed factor, per spec §3/§6: the
		// core's actual cycles-per-time-unit rate is folded in once here
		// rather than carried separately through the analyser/simulator.
		core := t.Cores[t.Component(componentID).CoreID]
		wcet := row.WCET / core.SpeedFactor
		bcet := row.BCET / core.SpeedFactor

		taskID := t.AddTask(hssmodel.Task{
			Name:        row.TaskName,
			WCET:        wcet,
			BCET:        bcet,
			Period:      float64(row.Period),
			ComponentID: componentID,
			Priority:    row.Priority,
		})

		component := t.Component(componentID)
		component.Kind = hssmodel.Terminal
		component.ChildTasks = append(component.ChildTasks, taskID)
	}

	return t, nil
}

func deriveInterface(budget, period float64) (alpha, delta float64, ok bool) {
	iface, ok := bdr.Derive(budget, period)
	if !ok {
		return 0, 0, false
	}
	return iface.Alpha, iface.Delta, true
}
