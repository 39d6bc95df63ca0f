package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

func validFixture() ([]ArchitectureRow, []BudgetRow, []TaskRow) {
	arch := []ArchitectureRow{{CoreID: "c1", SpeedFactor: 1, Scheduler: "RM"}}
	budgets := []BudgetRow{
		{ComponentID: "comp1", Scheduler: "RM", Budget: 5, Period: 10, CoreID: "c1", Priority: 1},
	}
	tasks := []TaskRow{
		{TaskName: "t1", WCET: 2, BCET: 1, Period: 10, ComponentID: "comp1", Priority: 1},
	}
	return arch, budgets, tasks
}

func TestBuildValidFixture(t *testing.T) {
	arch, budgets, tasks := validFixture()
	topo, err := Build(arch, budgets, tasks)
	require.NoError(t, err)

	core, ok := topo.Cores["c1"]
	require.True(t, ok)

	root := topo.Component(core.RootID)
	require.Len(t, root.ChildComponents, 1)

	comp := topo.Component(root.ChildComponents[0])
	assert.Equal(t, hssmodel.Terminal, comp.Kind)
	assert.Equal(t, 5.0, comp.Budget)
	assert.Equal(t, 10.0, comp.Period)
	require.NotNil(t, comp.Iface)
	assert.InDelta(t, 0.5, comp.Iface.Alpha, 1e-9)

	require.Len(t, comp.ChildTasks, 1)
	task := topo.Task(comp.ChildTasks[0])
	assert.Equal(t, "t1", task.Name)
}

func TestBuildNestedComponent(t *testing.T) {
	arch := []ArchitectureRow{{CoreID: "c1", SpeedFactor: 1, Scheduler: "RM"}}
	budgets := []BudgetRow{
		{ComponentID: "parent", Scheduler: "RM", Budget: 8, Period: 10, CoreID: "c1"},
		{ComponentID: "child", Scheduler: "RM", Budget: 4, Period: 8, CoreID: "c1", ParentComponentID: "parent"},
	}

	topo, err := Build(arch, budgets, nil)
	require.NoError(t, err)

	core := topo.Cores["c1"]
	root := topo.Component(core.RootID)
	require.Len(t, root.ChildComponents, 1)

	parentID := root.ChildComponents[0]
	parent := topo.Component(parentID)
	require.Len(t, parent.ChildComponents, 1)
	child := topo.Component(parent.ChildComponents[0])
	assert.Equal(t, parentID, child.ParentID)
}

func TestBuildRejectsBudgetExceedingPeriod(t *testing.T) {
	arch := []ArchitectureRow{{CoreID: "c1", SpeedFactor: 1, Scheduler: "RM"}}
	budgets := []BudgetRow{{ComponentID: "c", Scheduler: "RM", Budget: 11, Period: 10, CoreID: "c1"}}

	_, err := Build(arch, budgets, nil)
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestBuildRejectsUnknownCore(t *testing.T) {
	budgets := []BudgetRow{{ComponentID: "c", Scheduler: "RM", Budget: 1, Period: 10, CoreID: "missing"}}
	_, err := Build(nil, budgets, nil)
	require.Error(t, err)
}

func TestBuildRejectsUnknownParent(t *testing.T) {
	arch := []ArchitectureRow{{CoreID: "c1", SpeedFactor: 1, Scheduler: "RM"}}
	budgets := []BudgetRow{{ComponentID: "c", Scheduler: "RM", Budget: 1, Period: 10, CoreID: "c1", ParentComponentID: "ghost"}}
	_, err := Build(arch, budgets, nil)
	require.Error(t, err)
}

func TestBuildRejectsInvalidTaskWCET(t *testing.T) {
	arch, budgets, _ := validFixture()
	tasks := []TaskRow{{TaskName: "bad", WCET: 0, Period: 10, ComponentID: "comp1"}}
	_, err := Build(arch, budgets, tasks)
	require.Error(t, err)
}

func TestBuildRejectsTaskWithUnknownComponent(t *testing.T) {
	arch, budgets, _ := validFixture()
	tasks := []TaskRow{{TaskName: "t", WCET: 1, Period: 10, ComponentID: "ghost"}}
	_, err := Build(arch, budgets, tasks)
	require.Error(t, err)
}

func TestBuildDividesTaskExecutionTimesBySpeedFactor(t *testing.T) {
	arch := []ArchitectureRow{{CoreID: "c1", SpeedFactor: 2, Scheduler: "RM"}}
	budgets := []BudgetRow{
		{ComponentID: "comp1", Scheduler: "RM", Budget: 5, Period: 10, CoreID: "c1"},
	}
	tasks := []TaskRow{
		{TaskName: "t1", WCET: 4, BCET: 2, Period: 10, ComponentID: "comp1"},
	}

	topo, err := Build(arch, budgets, tasks)
	require.NoError(t, err)

	core := topo.Cores["c1"]
	root := topo.Component(core.RootID)
	comp := topo.Component(root.ChildComponents[0])
	task := topo.Task(comp.ChildTasks[0])

	assert.Equal(t, 2.0, task.WCET)
	assert.Equal(t, 1.0, task.BCET)
}

func TestBuildZeroPeriodComponentHasNoInterface(t *testing.T) {
	arch := []ArchitectureRow{{CoreID: "c1", SpeedFactor: 1, Scheduler: "RM"}}
	budgets := []BudgetRow{{ComponentID: "c", Scheduler: "RM", Budget: 0, Period: 0, CoreID: "c1"}}
	topo, err := Build(arch, budgets, nil)
	require.NoError(t, err)

	core := topo.Cores["c1"]
	root := topo.Component(core.RootID)
	comp := topo.Component(root.ChildComponents[0])
	assert.Nil(t, comp.Iface)
}
