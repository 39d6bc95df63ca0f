// Package dbf implements the Demand-Bound Function primitives for
// Rate-Monotonic and Earliest-Deadline-First task sets.
package dbf

import (
	"math"
	"sort"

	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// SortByPriorityRM returns tasks sorted ascending by priority value (smaller
// is higher priority), ties broken by TaskID for a strict total order.
func SortByPriorityRM(tasks []hssmodel.Task) []hssmodel.Task {
	sorted := make([]hssmodel.Task, len(tasks))
	copy(sorted, tasks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// RM evaluates DBF_RM(target, t): target's own WCET plus, for every task
// strictly higher priority (smaller priority value) than target within
// sortedTasks, ceil(t/period)*wcet.
func RM(sortedTasks []hssmodel.Task, target hssmodel.Task, t float64) float64 {
	demand := target.WCET
	for _, hp := range sortedTasks {
		if hp.Priority < target.Priority {
			demand += math.Ceil(t/hp.Period) * hp.WCET
		}
	}
	return demand
}

// EDF evaluates DBF_EDF(t) = sum over tasks of floor((t+P-D)/P)*WCET; since
// D == P here this reduces to floor(t/P)*WCET for t >= 0.
func EDF(tasks []hssmodel.Task, t float64) float64 {
	var demand float64
	for _, tk := range tasks {
		deadline := tk.Period // relative deadline == period
		demand += math.Floor((t+tk.Period-deadline)/tk.Period) * tk.WCET
	}
	return demand
}

// Hyperperiod returns the LCM of the given periods, truncated to integers,
// with LCM(0, x) = 0.
func Hyperperiod(periods []float64) float64 {
	if len(periods) == 0 {
		return 0
	}
	h := int64(periods[0])
	for _, p := range periods[1:] {
		h = lcm(h, int64(p))
	}
	return float64(h)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

func lcm(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	g := gcd(a, b)
	v := a / g * b
	if v < 0 {
		return -v
	}
	return v
}
