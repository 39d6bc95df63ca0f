package simulator

import (
	"context"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/bdr"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// Run advances the simulation to MaxSimTime or until the event queue
// drains. It returns only on context cancellation or an internal invariant
// violation; a normal end-of-horizon or empty-queue exit is not an error.
func (s *Simulation) Run(ctx context.Context) error {
	for s.events.Len() > 0 && s.CurrentTime < s.MaxSimTime {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		next, ok := s.events.Peek()
		if !ok {
			break
		}
		if next.Time > s.CurrentTime {
			if err := s.processIdleTime(next.Time - s.CurrentTime); err != nil {
				return err
			}
			// Idle-time processing may have pushed a TaskCompletion ahead of
			// `next`; re-peek rather than assuming `next` is still the
			// earliest event.
			next, ok = s.events.Peek()
			if !ok {
				break
			}
		}

		event, _ := s.events.Pop()
		s.CurrentTime = event.Time
		s.dispatch(event)
	}

	if s.CurrentTime > s.MaxSimTime {
		s.CurrentTime = s.MaxSimTime
	}
	return nil
}

// processIdleTime charges the running task and its ancestor components
// (root excluded) for min(remaining_exec_time, path_available_budget,
// elapsed), completing or budget-preempting as the limiting factor
// dictates, and recursing on any leftover elapsed time.
func (s *Simulation) processIdleTime(elapsed float64) error {
	if s.runningTask == nil {
		s.CurrentTime += elapsed
		return nil
	}

	runningID := *s.runningTask
	exec := s.execs[runningID]
	pathBudget := s.pathAvailableBudget(exec.ComponentID)

	slice := elapsed
	if exec.RemainingExecTime < slice {
		slice = exec.RemainingExecTime
	}
	if pathBudget < slice {
		slice = pathBudget
	}
	if slice < 0 {
		slice = 0
	}

	if err := s.chargeSlice(exec, slice); err != nil {
		return err
	}
	s.CurrentTime += slice

	switch {
	case bdr.CloseToZero(exec.RemainingExecTime) || exec.RemainingExecTime < 0:
		s.events.PushBefore(hssmodel.Event{Time: s.CurrentTime, Kind: hssmodel.TaskCompletion, TaskID: runningID})
		return nil
	case pathBudget-slice <= bdr.EPSILON:
		exec.State = hssmodel.Ready
		s.readyQueues[exec.ComponentID].Insert(runningID, exec.PriorityKey)
		s.runningTask = nil
		s.reschedule()
		remaining := elapsed - slice
		if remaining > bdr.EPSILON {
			return s.processIdleTime(remaining)
		}
		return nil
	default:
		return nil
	}
}

// chargeSlice deducts slice from the running task's remaining exec time and
// from every ancestor component's current_budget, the component itself
// included and the root excluded (see DESIGN.md's Open Question resolution
// on root charging).
func (s *Simulation) chargeSlice(exec *hssmodel.TaskExecution, slice float64) error {
	exec.RemainingExecTime -= slice

	path := s.Topology.PathFromRoot(exec.ComponentID)
	for _, cid := range path {
		c := s.Topology.Component(cid)
		if c.IsRoot() {
			continue
		}
		c.CurrentBudget -= slice
		if c.CurrentBudget < -bdr.EPSILON {
			return &InvariantError{Message: "component current_budget went negative after charge"}
		}
		if c.CurrentBudget < 0 {
			c.CurrentBudget = 0
		}
	}
	return nil
}
