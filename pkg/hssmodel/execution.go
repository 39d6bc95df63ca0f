package hssmodel

// State is the lifecycle state of a TaskExecution's current job.
type State int

const (
	Idle State = iota
	Ready
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// TaskExecution is the single mutable record reused across every job of a
// Task; no per-job object is ever allocated. Its static fields are a
// snapshot of the owning Task taken at simulation start; state, deadline
// and counters mutate across events.
type TaskExecution struct {
	TaskID      TaskID
	ComponentID ComponentID
	WCET        float64
	BCET        float64
	Period      float64

	State             State
	AbsoluteDeadline  float64
	RemainingExecTime float64
	ArrivalTime       float64
	ExecCount         int

	CompletionTimes []float64
	ResponseTimes   []float64
	DeadlinesMet    int
	DeadlinesMissed int

	// Schedulable starts true and is latched false forever on the first
	// deadline miss.
	Schedulable bool

	// Priority key used by the owning component's ready queue: task Period
	// under RM, AbsoluteDeadline under EDF. Recomputed on every arrival.
	PriorityKey float64
}

// NewTaskExecution snapshots a Task into its initial (pre-arrival) state.
func NewTaskExecution(t Task) *TaskExecution {
	bcet := t.BCET
	if bcet <= 0 {
		bcet = t.WCET
	}
	return &TaskExecution{
		TaskID:      t.ID,
		ComponentID: t.ComponentID,
		WCET:        t.WCET,
		BCET:        bcet,
		Period:      t.Period,
		State:       Idle,
		Schedulable: true,
	}
}

// EventKind enumerates the three event types the simulator dispatches.
type EventKind int

const (
	TaskArrival EventKind = iota
	TaskCompletion
	BudgetReplenish
)

func (k EventKind) String() string {
	switch k {
	case TaskArrival:
		return "task_arrival"
	case TaskCompletion:
		return "task_completion"
	case BudgetReplenish:
		return "budget_replenish"
	default:
		return "unknown"
	}
}

// Event is a single scheduled occurrence. Exactly one of TaskID/ComponentID
// is meaningful, depending on Kind: task events carry TaskID, budget-replenish
// events carry ComponentID.
type Event struct {
	Time        float64
	Kind        EventKind
	TaskID      TaskID
	ComponentID ComponentID

	// Seq is assigned by the event queue at insertion time and breaks ties
	// between events at identical Time in FIFO order.
	Seq uint64
}
