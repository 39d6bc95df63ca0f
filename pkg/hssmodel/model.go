package hssmodel

// Core is a single independent scheduling unit: a speed factor, a top-level
// scheduler, and exactly one root component. Cores never interact with one
// another.
type Core struct {
	ID          CoreID
	SpeedFactor float64
	Scheduler   Scheduler
	RootID      ComponentID
}

// Interface is the Bounded-Delay Resource abstraction derived from a
// component's (Budget, Period): after Delta, supply accrues at rate Alpha.
// The root component has no Interface (Budget = Period = 0).
type Interface struct {
	Alpha float64
	Delta float64
}

// Component is a node in the hierarchy: either terminal (its children are
// Tasks) or non-terminal (its children are Components). Static fields are
// set once at topology construction; CurrentBudget and NextReplenishTime are
// mutated during simulation only.
type Component struct {
	ID       ComponentID
	ParentID ComponentID // NoComponent for a core's root
	CoreID   CoreID

	Scheduler Scheduler
	Kind      ComponentKind

	Budget   float64
	Period   float64
	Priority int // carried from the budgets table; component selection keys on Period under an RM parent and does not read it
	Iface    *Interface

	ChildComponents []ComponentID
	ChildTasks      []TaskID

	// Dynamic simulation state, present in the record from construction.
	CurrentBudget     float64
	NextReplenishTime float64
}

// IsRoot reports whether c has no parent component.
func (c *Component) IsRoot() bool { return c.ParentID == NoComponent }

// Task is a periodic task definition; it is never mutated once constructed.
// WCET has already been divided by the owning core's speed factor.
type Task struct {
	ID          TaskID
	Name        string
	WCET        float64
	BCET        float64 // optional; defaults to WCET when unset
	Period      float64 // relative deadline == period
	ComponentID ComponentID
	Priority    int // meaningful only when the owning component is RM
}

// Topology is the arena owning every Core/Component/Task in a loaded model.
// It is built once (by pkg/topology) and never mutated by the analyser; the
// simulator writes only the dynamic CurrentBudget/NextReplenishTime fields
// of its own core's components and keeps the rest of its mutable state
// alongside.
type Topology struct {
	Cores      map[CoreID]*Core
	components []Component
	tasks      []Task
}

// NewTopology returns an empty, ready-to-populate Topology.
func NewTopology() *Topology {
	return &Topology{Cores: make(map[CoreID]*Core)}
}

// AddComponent appends c to the arena and returns its assigned ID.
func (t *Topology) AddComponent(c Component) ComponentID {
	id := ComponentID(len(t.components))
	c.ID = id
	t.components = append(t.components, c)
	return id
}

// AddTask appends tk to the arena and returns its assigned ID.
func (t *Topology) AddTask(tk Task) TaskID {
	id := TaskID(len(t.tasks))
	tk.ID = id
	t.tasks = append(t.tasks, tk)
	return id
}

// Component returns a mutable pointer to the component with the given ID.
func (t *Topology) Component(id ComponentID) *Component {
	if id == NoComponent || int(id) >= len(t.components) {
		return nil
	}
	return &t.components[id]
}

// Task returns the task with the given ID.
func (t *Topology) Task(id TaskID) *Task {
	if int(id) >= len(t.tasks) {
		return nil
	}
	return &t.tasks[id]
}

// Components returns every component in arena order.
func (t *Topology) Components() []Component { return t.components }

// Tasks returns every task in arena order.
func (t *Topology) Tasks() []Task { return t.tasks }

// ChildTasksOf returns the Task values owned by a terminal component.
func (t *Topology) ChildTasksOf(id ComponentID) []Task {
	c := t.Component(id)
	if c == nil {
		return nil
	}
	out := make([]Task, 0, len(c.ChildTasks))
	for _, tid := range c.ChildTasks {
		out = append(out, *t.Task(tid))
	}
	return out
}

// PathFromRoot returns the component chain from a core's root down to id,
// inclusive of both ends.
func (t *Topology) PathFromRoot(id ComponentID) []ComponentID {
	var rev []ComponentID
	cur := t.Component(id)
	for cur != nil {
		rev = append(rev, cur.ID)
		if cur.IsRoot() {
			break
		}
		cur = t.Component(cur.ParentID)
	}
	out := make([]ComponentID, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}
	return out
}
