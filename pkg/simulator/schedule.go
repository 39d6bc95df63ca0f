package simulator

import (
	"sort"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/bdr"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// priorityKey returns a component's selection key as seen by its parent:
// period under an RM parent, next-replenish-time (a proxy for its implicit
// deadline) under an EDF parent. The PARENT's scheduler always decides the
// key, regardless of the child's own scheduler (see DESIGN.md).
func priorityKey(parent, child *hssmodel.Component) float64 {
	if parent.Scheduler == hssmodel.RM {
		return child.Period
	}
	return child.NextReplenishTime
}

// selectComponent walks down from the core's root, at each non-leaf
// choosing the child with the smallest priority key, accepting a leaf only
// if its ready queue is non-empty (or it hosts the running task) and the
// available budget along its path from root is positive. If the first
// depth-first candidate is rejected it retries sibling subtrees in priority
// order before giving up.
func (s *Simulation) selectComponent() (hssmodel.ComponentID, bool) {
	root := s.Topology.Component(s.core.RootID)
	if root == nil {
		return 0, false
	}
	return s.selectComponentFrom(root.ID)
}

func (s *Simulation) selectComponentFrom(id hssmodel.ComponentID) (hssmodel.ComponentID, bool) {
	c := s.Topology.Component(id)
	if c == nil {
		return 0, false
	}

	if c.Kind == hssmodel.Terminal {
		if s.leafEligible(c) {
			return c.ID, true
		}
		return 0, false
	}

	children := append([]hssmodel.ComponentID(nil), c.ChildComponents...)
	sort.Slice(children, func(i, j int) bool {
		ci, cj := s.Topology.Component(children[i]), s.Topology.Component(children[j])
		ki, kj := priorityKey(c, ci), priorityKey(c, cj)
		if ki != kj {
			return ki < kj
		}
		return children[i] < children[j]
	})

	for _, childID := range children {
		if found, ok := s.selectComponentFrom(childID); ok {
			return found, true
		}
	}
	return 0, false
}

// leafEligible reports whether a terminal component is a valid scheduling
// target: non-empty ready queue (or currently hosting the running task) and
// a strictly positive minimum current_budget over its path from root,
// root excluded.
func (s *Simulation) leafEligible(c *hssmodel.Component) bool {
	rq := s.readyQueues[c.ID]
	hasReady := rq != nil && !rq.Empty()
	hostsRunning := false
	if s.runningTask != nil {
		if exec := s.execs[*s.runningTask]; exec != nil && exec.ComponentID == c.ID {
			hostsRunning = true
		}
	}
	if !hasReady && !hostsRunning {
		return false
	}
	return s.pathAvailableBudget(c.ID) > bdr.EPSILON
}

// pathAvailableBudget is min(current_budget) over the path from (excluding)
// root down to id, inclusive of id itself.
func (s *Simulation) pathAvailableBudget(id hssmodel.ComponentID) float64 {
	path := s.Topology.PathFromRoot(id)
	min := -1.0
	for _, cid := range path {
		c := s.Topology.Component(cid)
		if c.IsRoot() {
			continue
		}
		if min < 0 || c.CurrentBudget < min {
			min = c.CurrentBudget
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// selectTask returns the highest-priority ready task in component id's
// ready queue, keyed by period under RM or absolute deadline under EDF, ties
// broken by TaskID, per ReadyQueue's ordering.
func (s *Simulation) selectTask(id hssmodel.ComponentID) (hssmodel.TaskID, bool) {
	rq := s.readyQueues[id]
	if rq == nil {
		return 0, false
	}
	return rq.Peek()
}

// reschedule is the scheduling decision run after any event or budget
// change: select the current best (component, task) and preempt the
// running task if the new choice differs — either a different component,
// or the same component with a strictly higher-priority ready task. A
// running task is never in its own ready queue, so the ready-queue
// candidate must be compared against the running task's own priority key,
// not merely against its identity.
func (s *Simulation) reschedule() {
	componentID, ok := s.selectComponent()
	if !ok {
		return
	}

	if s.runningTask == nil {
		if taskID, ok := s.selectTask(componentID); ok {
			s.startRunning(componentID, taskID)
		}
		return
	}

	runningID := *s.runningTask
	runningExec := s.execs[runningID]
	differentComponent := runningExec.ComponentID != componentID

	candidateID, hasCandidate := s.selectTask(componentID)
	if !differentComponent && !hasCandidate {
		return
	}

	preempt := differentComponent
	if !preempt && hasCandidate {
		candidateExec := s.execs[candidateID]
		preempt = higherPriority(candidateExec.PriorityKey, candidateID, runningExec.PriorityKey, runningID)
	}
	if !preempt {
		return
	}

	s.preemptRunning()
	if taskID, ok := s.selectTask(componentID); ok {
		s.startRunning(componentID, taskID)
	}
}

// higherPriority reports whether (aKey, aID) sorts ahead of (bKey, bID)
// under the ready queue's ordering rule: smaller key wins, ties broken by
// smaller TaskID.
func higherPriority(aKey float64, aID hssmodel.TaskID, bKey float64, bID hssmodel.TaskID) bool {
	if aKey != bKey {
		return aKey < bKey
	}
	return aID < bID
}

func (s *Simulation) preemptRunning() {
	prevID := *s.runningTask
	prev := s.execs[prevID]
	prev.State = hssmodel.Ready
	rq := s.readyQueues[prev.ComponentID]
	rq.Insert(prevID, prev.PriorityKey)
	s.runningTask = nil
}

func (s *Simulation) startRunning(componentID hssmodel.ComponentID, taskID hssmodel.TaskID) {
	rq := s.readyQueues[componentID]
	rq.Remove(taskID)
	exec := s.execs[taskID]
	exec.State = hssmodel.Running
	id := taskID
	s.runningTask = &id
}
