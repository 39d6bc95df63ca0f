package simulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/bdr"
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// twoComponentTopology builds one RM core with two RM terminal components,
// each owning a single periodic task.
func twoComponentTopology(t *testing.T) *hssmodel.Topology {
	t.Helper()
	topo := hssmodel.NewTopology()
	root := topo.AddComponent(hssmodel.Component{ParentID: hssmodel.NoComponent})
	topo.Cores["c1"] = &hssmodel.Core{ID: "c1", SpeedFactor: 1, Scheduler: hssmodel.RM, RootID: root}

	compA := topo.AddComponent(hssmodel.Component{ParentID: root, CoreID: "c1", Scheduler: hssmodel.RM, Kind: hssmodel.Terminal, Budget: 4, Period: 10, Priority: 1})
	compB := topo.AddComponent(hssmodel.Component{ParentID: root, CoreID: "c1", Scheduler: hssmodel.RM, Kind: hssmodel.Terminal, Budget: 3, Period: 10, Priority: 2})
	topo.Component(root).ChildComponents = append(topo.Component(root).ChildComponents, compA, compB)

	taskA := topo.AddTask(hssmodel.Task{Name: "a", WCET: 2, Period: 10, ComponentID: compA, Priority: 1})
	topo.Component(compA).ChildTasks = append(topo.Component(compA).ChildTasks, taskA)

	taskB := topo.AddTask(hssmodel.Task{Name: "b", WCET: 2, Period: 10, ComponentID: compB, Priority: 1})
	topo.Component(compB).ChildTasks = append(topo.Component(compB).ChildTasks, taskB)

	return topo
}

func TestSimulationRunsToHorizonDeterministically(t *testing.T) {
	topo := twoComponentTopology(t)
	sim, err := New(topo, "c1", 100, WithExecutionTimeFunc(DeterministicExecution))
	require.NoError(t, err)

	require.NoError(t, sim.Run(context.Background()))
	assert.Equal(t, 100.0, sim.CurrentTime)

	for _, exec := range sim.Execs() {
		assert.Equal(t, exec.ExecCount, exec.DeadlinesMet+exec.DeadlinesMissed)
	}
}

func TestSimulationNeverNegativeBudget(t *testing.T) {
	topo := twoComponentTopology(t)
	sim, err := New(topo, "c1", 50, WithExecutionTimeFunc(DeterministicExecution))
	require.NoError(t, err)
	require.NoError(t, sim.Run(context.Background()))

	for _, c := range topo.Components() {
		if c.IsRoot() {
			continue
		}
		assert.GreaterOrEqual(t, c.CurrentBudget, -bdr.EPSILON)
	}
}

func TestSimulationAtMostOneRunningTask(t *testing.T) {
	topo := twoComponentTopology(t)
	sim, err := New(topo, "c1", 20, WithExecutionTimeFunc(DeterministicExecution))
	require.NoError(t, err)
	require.NoError(t, sim.Run(context.Background()))

	running := 0
	for _, exec := range sim.Execs() {
		if exec.State == hssmodel.Running {
			running++
		}
	}
	assert.LessOrEqual(t, running, 1)
}

func TestSimulationIsIdempotent(t *testing.T) {
	topoA := twoComponentTopology(t)
	simA, err := New(topoA, "c1", 50, WithExecutionTimeFunc(DeterministicExecution))
	require.NoError(t, err)
	require.NoError(t, simA.Run(context.Background()))

	topoB := twoComponentTopology(t)
	simB, err := New(topoB, "c1", 50, WithExecutionTimeFunc(DeterministicExecution))
	require.NoError(t, err)
	require.NoError(t, simB.Run(context.Background()))

	for taskID, execA := range simA.Execs() {
		execB := simB.Execs()[taskID]
		require.NotNil(t, execB)
		assert.Equal(t, execA.DeadlinesMet, execB.DeadlinesMet)
		assert.Equal(t, execA.DeadlinesMissed, execB.DeadlinesMissed)
		assert.Equal(t, execA.ResponseTimes, execB.ResponseTimes)
	}
}

func TestSimulationUnknownCore(t *testing.T) {
	topo := twoComponentTopology(t)
	_, err := New(topo, "missing", 10)
	require.Error(t, err)
	var unknown *UnknownCoreError
	require.ErrorAs(t, err, &unknown)
}

func TestSimulationHigherPriorityComponentPreemptsSameInstant(t *testing.T) {
	// compA (priority/period 10, budget 4) is its core root's higher-priority
	// child relative to compB (period 10, budget 3); both tasks arrive at
	// t=0, so A's task should complete before B's task starts.
	topo := twoComponentTopology(t)
	sim, err := New(topo, "c1", 10, WithExecutionTimeFunc(DeterministicExecution))
	require.NoError(t, err)
	require.NoError(t, sim.Run(context.Background()))

	var aExec, bExec *hssmodel.TaskExecution
	for _, exec := range sim.Execs() {
		task := topo.Task(exec.TaskID)
		if task.Name == "a" {
			aExec = exec
		} else {
			bExec = exec
		}
	}
	require.NotNil(t, aExec)
	require.NotNil(t, bExec)
	require.NotEmpty(t, aExec.CompletionTimes)
	require.NotEmpty(t, bExec.CompletionTimes)
	assert.Less(t, aExec.CompletionTimes[0], bExec.CompletionTimes[0])
}
