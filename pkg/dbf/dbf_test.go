package dbf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

func TestSortByPriorityRM(t *testing.T) {
	tasks := []hssmodel.Task{
		{ID: 2, Priority: 3},
		{ID: 0, Priority: 1},
		{ID: 1, Priority: 1},
	}
	sorted := SortByPriorityRM(tasks)
	assert.Equal(t, []hssmodel.TaskID{0, 1, 2}, []hssmodel.TaskID{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestRM(t *testing.T) {
	hp := hssmodel.Task{ID: 0, Priority: 1, WCET: 2, Period: 5}
	lp := hssmodel.Task{ID: 1, Priority: 2, WCET: 3, Period: 10}
	sorted := []hssmodel.Task{hp, lp}

	demand := RM(sorted, lp, 5)
	assert.InDelta(t, 3+2, demand, 1e-9)

	demand = RM(sorted, hp, 5)
	assert.InDelta(t, 2, demand, 1e-9)
}

func TestEDF(t *testing.T) {
	tasks := []hssmodel.Task{
		{ID: 0, WCET: 2, Period: 5},
		{ID: 1, WCET: 1, Period: 10},
	}
	assert.InDelta(t, 3, EDF(tasks, 0), 1e-9)
	assert.InDelta(t, 4, EDF(tasks, 5), 1e-9)
}

func TestHyperperiod(t *testing.T) {
	assert.Equal(t, 0.0, Hyperperiod(nil))
	assert.Equal(t, 20.0, Hyperperiod([]float64{4, 5, 20}))
	assert.Equal(t, 0.0, Hyperperiod([]float64{0, 5}))
}
