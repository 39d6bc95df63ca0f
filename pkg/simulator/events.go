package simulator

import (
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/bdr"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// dispatch handles one event, mutating simulation state per its kind. Stale
// TaskCompletion events for an already-aborted job are filtered at dispatch
// time by checking that the task is still Running with remaining_exec_time
// within tolerance of zero.
func (s *Simulation) dispatch(e hssmodel.Event) {
	switch e.Kind {
	case hssmodel.TaskArrival:
		s.handleTaskArrival(e)
	case hssmodel.TaskCompletion:
		s.handleTaskCompletion(e)
	case hssmodel.BudgetReplenish:
		s.handleBudgetReplenish(e)
	}
}

// handleTaskArrival aborts an overrunning previous job (counting a deadline
// miss), then activates a new job with a fresh deadline and enqueues the
// next arrival.
func (s *Simulation) handleTaskArrival(e hssmodel.Event) {
	exec := s.execs[e.TaskID]
	if exec == nil {
		s.logger.Error("simulator: task arrival for unknown task", "task", e.TaskID)
		return
	}
	component := s.Topology.Component(exec.ComponentID)

	if exec.State != hssmodel.Idle {
		exec.DeadlinesMissed++
		exec.Schedulable = false

		switch exec.State {
		case hssmodel.Running:
			if s.runningTask != nil && *s.runningTask == e.TaskID {
				s.runningTask = nil
			}
		case hssmodel.Ready:
			s.readyQueues[exec.ComponentID].Remove(e.TaskID)
		}
	}

	exec.State = hssmodel.Ready
	exec.ArrivalTime = e.Time
	exec.RemainingExecTime = s.execTimeFunc(exec, s.rng)
	exec.AbsoluteDeadline = e.Time + exec.Period
	exec.ExecCount++
	exec.PriorityKey = priorityKeyFor(component.Scheduler, exec)

	s.readyQueues[exec.ComponentID].Insert(e.TaskID, exec.PriorityKey)
	s.events.Push(hssmodel.Event{Time: e.Time + exec.Period, Kind: hssmodel.TaskArrival, TaskID: e.TaskID})

	s.reschedule()
}

// priorityKeyFor returns a task's own priority key within its component:
// period for RM, absolute deadline for EDF.
func priorityKeyFor(scheduler hssmodel.Scheduler, exec *hssmodel.TaskExecution) float64 {
	if scheduler == hssmodel.RM {
		return exec.Period
	}
	return exec.AbsoluteDeadline
}

// handleTaskCompletion applies a completion. A stale completion (already
// aborted by a later arrival) is filtered: it can only apply if the task is
// still Running with ~zero remaining time.
func (s *Simulation) handleTaskCompletion(e hssmodel.Event) {
	exec := s.execs[e.TaskID]
	if exec == nil {
		s.logger.Error("simulator: completion for unknown task", "task", e.TaskID)
		return
	}
	if exec.State != hssmodel.Running || !bdr.CloseToZero(exec.RemainingExecTime) {
		return // stale completion for an aborted/overwritten job
	}

	exec.State = hssmodel.Idle
	responseTime := e.Time - exec.ArrivalTime
	exec.ResponseTimes = append(exec.ResponseTimes, responseTime)
	exec.CompletionTimes = append(exec.CompletionTimes, e.Time)
	exec.DeadlinesMet++

	if s.runningTask != nil && *s.runningTask == e.TaskID {
		s.runningTask = nil
	}

	s.reschedule()
}

// handleBudgetReplenish resets a component's budget to full and schedules
// its next replenishment. Replenishments are never scheduled for the root
// (it has no budget), so a replenish event always targets a real component.
func (s *Simulation) handleBudgetReplenish(e hssmodel.Event) {
	c := s.Topology.Component(e.ComponentID)
	if c == nil {
		s.logger.Error("simulator: replenish for unknown component", "component", e.ComponentID)
		return
	}

	c.CurrentBudget = c.Budget
	c.NextReplenishTime = e.Time + c.Period
	s.events.Push(hssmodel.Event{Time: c.NextReplenishTime, Kind: hssmodel.BudgetReplenish, ComponentID: c.ID})

	s.reschedule()
}
