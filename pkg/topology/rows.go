// Package topology builds an hssmodel.Topology from pre-parsed row data,
// validating cross-references and numeric constraints between cores,
// components and tasks. It does not read CSV or any other file format
// itself — that ingestion step is an external concern; FromYAML exists
// only as a demo/test fixture loader, not a substitute for it.
package topology

import (
	"github.com/JoaoAAnjos/rt-distributed-systems/pkg/hssmodel"
)

// ArchitectureRow mirrors one row of the external architecture table.
type ArchitectureRow struct {
	CoreID      string  `yaml:"core_id"`
	SpeedFactor float64 `yaml:"speed_factor"`
	Scheduler   string  `yaml:"scheduler"`
}

// BudgetRow mirrors one row of the external budgets table.
type BudgetRow struct {
	ComponentID string  `yaml:"component_id"`
	Scheduler   string  `yaml:"scheduler"`
	Budget      float64 `yaml:"budget"`
	Period      float64 `yaml:"period"`
	CoreID      string  `yaml:"core_id"`
	Priority    int     `yaml:"priority"`
	// ParentComponentID is empty for a component that is a direct child of
	// its core's root; the external tables are flat, so nesting beyond one
	// level of components is expressed by ParentComponentID referencing
	// another budgets row rather than a core.
	ParentComponentID string `yaml:"parent_component_id"`
}

// TaskRow mirrors one row of the external tasks table. WCET and BCET are
// given undivided; Build divides both by the owning core's speed factor
// before storing the task.
type TaskRow struct {
	TaskName    string  `yaml:"task_name"`
	WCET        float64 `yaml:"wcet"`
	BCET        float64 `yaml:"bcet"`
	Period      int64   `yaml:"period"`
	ComponentID string  `yaml:"component_id"`
	Priority    int     `yaml:"priority"`
}
