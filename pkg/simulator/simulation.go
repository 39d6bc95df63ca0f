// Package simulator implements the discrete-event hierarchical simulator: a
// single mutable Simulation context per core, advanced strictly through
// events, charging execution against a running task and its ancestor
// components' budgets, and reselecting the (component, task) pair to run
// after every state change.
package simulator

import (
	"log/slog"
	"math/rand"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/queue"
)

// ExecutionTimeFunc computes a job's actual per-job execution time. The
// default always returns WCET (deterministic); a BCET/WCET range can be
// exercised by supplying a func that samples between task.BCET and
// task.WCET.
type ExecutionTimeFunc func(task *hssmodel.TaskExecution, rng *rand.Rand) float64

// DeterministicExecution always runs a job for its full WCET.
func DeterministicExecution(task *hssmodel.TaskExecution, _ *rand.Rand) float64 {
	return task.WCET
}

// RandomBCETWCETExecution samples uniformly between BCET and WCET in whole
// time units.
func RandomBCETWCETExecution(task *hssmodel.TaskExecution, rng *rand.Rand) float64 {
	if task.WCET <= task.BCET {
		return task.WCET
	}
	steps := int(task.WCET-task.BCET) + 1
	return task.BCET + float64(rng.Intn(steps))
}

// Simulation is the single mutable context for one core's run. Apart from
// the CurrentBudget/NextReplenishTime fields of its own core's components in
// the shared Topology, nothing outside this struct is touched by the main
// loop, event handlers, or idle time processing, so two Simulations over two
// different cores share no mutable state and can run concurrently.
type Simulation struct {
	Topology *hssmodel.Topology
	CoreID   hssmodel.CoreID
	core     *hssmodel.Core

	MaxSimTime  float64
	CurrentTime float64

	execTimeFunc ExecutionTimeFunc
	rng          *rand.Rand

	events      *queue.EventQueue
	readyQueues map[hssmodel.ComponentID]*queue.ReadyQueue
	execs       map[hssmodel.TaskID]*hssmodel.TaskExecution
	runningTask *hssmodel.TaskID

	logger *slog.Logger
}

// Option configures a Simulation at construction time.
type Option func(*Simulation)

// WithExecutionTimeFunc overrides the default deterministic-WCET execution
// model.
func WithExecutionTimeFunc(f ExecutionTimeFunc) Option {
	return func(s *Simulation) { s.execTimeFunc = f }
}

// WithRand supplies the random source used by a non-deterministic
// ExecutionTimeFunc. Ignored by the default deterministic model.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) { s.rng = rng }
}

// WithLogger attaches a logger; defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) { s.logger = logger }
}

// New constructs a Simulation for one core and runs its initialisation
// sequence: every terminal component gets a TaskExecution per task and a
// t=0 TaskArrival; every non-root component gets its initial budget and a
// BudgetReplenish at t=P.
func New(topology *hssmodel.Topology, coreID hssmodel.CoreID, maxSimTime float64, opts ...Option) (*Simulation, error) {
	core, ok := topology.Cores[coreID]
	if !ok {
		return nil, &UnknownCoreError{CoreID: coreID}
	}

	s := &Simulation{
		Topology:     topology,
		CoreID:       coreID,
		core:         core,
		MaxSimTime:   maxSimTime,
		execTimeFunc: DeterministicExecution,
		rng:          rand.New(rand.NewSource(1)),
		events:       queue.NewEventQueue(),
		readyQueues:  make(map[hssmodel.ComponentID]*queue.ReadyQueue),
		execs:        make(map[hssmodel.TaskID]*hssmodel.TaskExecution),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.initialise()
	return s, nil
}

func (s *Simulation) initialise() {
	s.walk(s.core.RootID, func(c *hssmodel.Component) {
		if c.Kind == hssmodel.Terminal {
			s.readyQueues[c.ID] = queue.NewReadyQueue()
			for _, taskID := range c.ChildTasks {
				task := s.Topology.Task(taskID)
				exec := hssmodel.NewTaskExecution(*task)
				s.execs[taskID] = exec
				s.events.Push(hssmodel.Event{Time: 0, Kind: hssmodel.TaskArrival, TaskID: taskID})
			}
		}
		if !c.IsRoot() {
			c.CurrentBudget = c.Budget
			c.NextReplenishTime = c.Period
			s.events.Push(hssmodel.Event{Time: c.Period, Kind: hssmodel.BudgetReplenish, ComponentID: c.ID})
		}
	})
}

func (s *Simulation) walk(id hssmodel.ComponentID, visit func(*hssmodel.Component)) {
	c := s.Topology.Component(id)
	if c == nil {
		return
	}
	visit(c)
	for _, childID := range c.ChildComponents {
		s.walk(childID, visit)
	}
}

// Exec returns the TaskExecution for taskID, or nil if unknown.
func (s *Simulation) Exec(taskID hssmodel.TaskID) *hssmodel.TaskExecution {
	return s.execs[taskID]
}

// Execs returns every TaskExecution tracked by this simulation.
func (s *Simulation) Execs() map[hssmodel.TaskID]*hssmodel.TaskExecution {
	return s.execs
}

// RunningTask reports the currently running task, if any.
func (s *Simulation) RunningTask() (hssmodel.TaskID, bool) {
	if s.runningTask == nil {
		return 0, false
	}
	return *s.runningTask, true
}

